package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"seatwise/config"
	"seatwise/infras/otel"
	"seatwise/infras/s3"
	attendanceModel "seatwise/internal/domains/attendance/model"
	attendanceRepo "seatwise/internal/domains/attendance/repository"
	bookingModel "seatwise/internal/domains/booking/model"
	bookingRepo "seatwise/internal/domains/booking/repository"
	financialRepo "seatwise/internal/domains/financial/repository"
	operationRepo "seatwise/internal/domains/operation/repository"
	"seatwise/internal/domains/report/docgen"
	"seatwise/internal/domains/report/model"
	"seatwise/internal/domains/report/model/dto"
	"seatwise/internal/domains/report/repository"
	"seatwise/shared"
	"seatwise/shared/constant"
	gDto "seatwise/shared/dto"
	"seatwise/shared/failure"
	"seatwise/shared/timezone"

	"github.com/rs/zerolog/log"
)

const reportDirectory = "reports"

type Report interface {
	Generate(ctx context.Context, req dto.GenerateReportRequest) (dto.ReportResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReportsResponse, error)
	Get(ctx context.Context, id string) (dto.ReportResponse, error)
}

type serviceImpl struct {
	repo           repository.Report
	financialRepo  financialRepo.Financial
	attendanceRepo attendanceRepo.Attendance
	bookingRepo    bookingRepo.Booking
	operationRepo  operationRepo.Operation
	cfg            *config.Config
	s3             s3.S3
	otel           otel.Otel
}

func New(
	repo repository.Report,
	financialRepo financialRepo.Financial,
	attendanceRepo attendanceRepo.Attendance,
	bookingRepo bookingRepo.Booking,
	operationRepo operationRepo.Operation,
	cfg *config.Config,
	s3 s3.S3,
	otel otel.Otel,
) Report {
	return &serviceImpl{
		repo:           repo,
		financialRepo:  financialRepo,
		attendanceRepo: attendanceRepo,
		bookingRepo:    bookingRepo,
		operationRepo:  operationRepo,
		cfg:            cfg,
		s3:             s3,
		otel:           otel,
	}
}

// Generate aggregates the requested period into a report row. The payload is
// always stored as jsonb; csv, excel and pdf formats are additionally
// rendered and uploaded, and the object URL stored on the row. Aggregation
// failures are recorded on the row as status failed rather than lost.
func (s *serviceImpl) Generate(ctx context.Context, req dto.GenerateReportRequest) (res dto.ReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Generate")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	start, err := time.Parse(constant.DateOnlyFormat, req.Period.Start)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid period start: %v", err))
	}

	end, err := time.Parse(constant.DateOnlyFormat, req.Period.End)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid period end: %v", err))
	}

	if !start.Before(end) {
		return res, failure.BadRequestFromString("period start must be before period end")
	}

	report := req.ToModel(user, start, end)

	if err = s.repo.Insert(ctx, report); err != nil {
		log.Error().Err(err).Msg("failed to create report")

		return res, fmt.Errorf("failed to create report: %w", err)
	}

	doc, buildErr := s.buildDocument(ctx, req.Type, start, end)
	if buildErr != nil {
		s.markFailed(ctx, &report, user, buildErr)
		res.FromModel(report)

		return res, fmt.Errorf("failed to build report: %w", buildErr)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		s.markFailed(ctx, &report, user, err)
		res.FromModel(report)

		return res, fmt.Errorf("failed to marshal report data: %w", err)
	}

	report.Data = data

	if report.Format != model.FormatJSON {
		url, renderErr := s.renderAndUpload(ctx, report, doc)
		if renderErr != nil {
			s.markFailed(ctx, &report, user, renderErr)
			res.FromModel(report)

			return res, fmt.Errorf("failed to render report: %w", renderErr)
		}

		report.DownloadURL = &url
	}

	report.Status = model.StatusCompleted

	fields := map[string]any{
		model.FieldStatus:        report.Status,
		model.FieldData:          report.Data,
		model.FieldDownloadURL:   report.DownloadURL,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(report.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to finalize report")

		return res, fmt.Errorf("failed to finalize report: %w", err)
	}

	res.FromModel(report)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReportsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reports")

		return res, fmt.Errorf("failed to count reports: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reports")

		return res, fmt.Errorf("failed to get reports: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	report, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get report")

		return res, fmt.Errorf("failed to get report: %w", err)
	}

	if report.ID == constant.Empty {
		return res, failure.NotFound("report not found")
	}

	res.FromModel(report)

	return res, nil
}

func (s *serviceImpl) buildDocument(ctx context.Context, reportType string, start, end time.Time) (docgen.Document, error) {
	doc := docgen.Document{
		Period: fmt.Sprintf("%s to %s",
			timezone.Format(start, constant.DateOnlyFormat),
			timezone.Format(end, constant.DateOnlyFormat)),
	}

	switch reportType {
	case model.TypeAttendance:
		doc.Title = "Attendance Report"

		section, err := s.attendanceSection(ctx, start, end)
		if err != nil {
			return doc, err
		}

		doc.Sections = append(doc.Sections, section)
	case model.TypeRevenue:
		doc.Title = "Revenue Report"

		section, err := s.revenueSection(ctx, start, end)
		if err != nil {
			return doc, err
		}

		doc.Sections = append(doc.Sections, section)
	case model.TypeUtilization:
		doc.Title = "Seat Utilization Report"

		section, err := s.utilizationSection(ctx, start, end)
		if err != nil {
			return doc, err
		}

		doc.Sections = append(doc.Sections, section)
	case model.TypeActivity:
		doc.Title = "Operations Activity Report"

		section, err := s.activitySection(ctx, start, end)
		if err != nil {
			return doc, err
		}

		doc.Sections = append(doc.Sections, section)
	case model.TypeTrends:
		doc.Title = "Trends Report"

		revenue, err := s.revenueSection(ctx, start, end)
		if err != nil {
			return doc, err
		}

		utilization, err := s.utilizationSection(ctx, start, end)
		if err != nil {
			return doc, err
		}

		doc.Sections = append(doc.Sections, revenue, utilization)
	case model.TypePerformance:
		doc.Title = "Staff Performance Report"

		section, err := s.performanceSection(ctx, start, end)
		if err != nil {
			return doc, err
		}

		doc.Sections = append(doc.Sections, section)
	default:
		return doc, failure.BadRequestFromString("unknown report type")
	}

	return doc, nil
}

func (s *serviceImpl) attendanceSection(ctx context.Context, start, end time.Time) (docgen.Section, error) {
	section := docgen.Section{
		Title:   "Attendance by status",
		Headers: []string{"Status", "Days"},
	}

	statuses := []string{attendanceModel.StatusPresent, attendanceModel.StatusAbsent, attendanceModel.StatusLate}

	for _, status := range statuses {
		count, err := s.attendanceRepo.Count(ctx, periodFilter(
			attendanceModel.TableName, attendanceModel.FieldDate, start, end,
			gDto.Filter{
				Field:    attendanceModel.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    status,
				Table:    attendanceModel.TableName,
			}))
		if err != nil {
			return section, err
		}

		section.Rows = append(section.Rows, []string{status, strconv.Itoa(count)})
	}

	return section, nil
}

func (s *serviceImpl) revenueSection(ctx context.Context, start, end time.Time) (docgen.Section, error) {
	section := docgen.Section{
		Title:   "Daily revenue",
		Headers: []string{"Day", "Revenue", "Transactions"},
	}

	days, err := s.financialRepo.SumRevenueByDay(ctx, start, end)
	if err != nil {
		return section, err
	}

	var total float64

	for _, d := range days {
		section.Rows = append(section.Rows, []string{
			timezone.Format(d.Day, constant.DateOnlyFormat),
			strconv.FormatFloat(d.Revenue, 'f', 2, 64),
			strconv.Itoa(d.Count),
		})
		total += d.Revenue
	}

	section.Rows = append(section.Rows, []string{"Total", strconv.FormatFloat(total, 'f', 2, 64), ""})

	return section, nil
}

func (s *serviceImpl) utilizationSection(ctx context.Context, start, end time.Time) (docgen.Section, error) {
	section := docgen.Section{
		Title:   "Bookings by status",
		Headers: []string{"Status", "Bookings"},
	}

	statuses := []string{
		bookingModel.StatusPending,
		bookingModel.StatusConfirmed,
		bookingModel.StatusCompleted,
		bookingModel.StatusCancelled,
	}

	for _, status := range statuses {
		count, err := s.bookingRepo.Count(ctx, periodFilter(
			bookingModel.TableName, bookingModel.FieldStartTime, start, end,
			gDto.Filter{
				Field:    bookingModel.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    status,
				Table:    bookingModel.TableName,
			}))
		if err != nil {
			return section, err
		}

		section.Rows = append(section.Rows, []string{status, strconv.Itoa(count)})
	}

	return section, nil
}

func (s *serviceImpl) activitySection(ctx context.Context, start, end time.Time) (docgen.Section, error) {
	section := docgen.Section{
		Title:   "Operations by type and status",
		Headers: []string{"Type", "Status", "Count"},
	}

	counts, err := s.operationRepo.CountsByTypeStatus(ctx, start, end)
	if err != nil {
		return section, err
	}

	for _, c := range counts {
		section.Rows = append(section.Rows, []string{c.Type, c.Status, strconv.Itoa(c.Count)})
	}

	return section, nil
}

func (s *serviceImpl) performanceSection(ctx context.Context, start, end time.Time) (docgen.Section, error) {
	section := docgen.Section{
		Title:   "Completion by assignee",
		Headers: []string{"Assignee", "Total", "Completed", "Completion %"},
	}

	completions, err := s.operationRepo.CompletionByAssignee(ctx, start, end)
	if err != nil {
		return section, err
	}

	for _, c := range completions {
		rate := 0.0
		if c.Total > 0 {
			rate = float64(c.Completed) / float64(c.Total) * 100
		}

		section.Rows = append(section.Rows, []string{
			c.AssignedTo,
			strconv.Itoa(c.Total),
			strconv.Itoa(c.Completed),
			strconv.FormatFloat(rate, 'f', 1, 64),
		})
	}

	return section, nil
}

func (s *serviceImpl) renderAndUpload(ctx context.Context, report model.Report, doc docgen.Document) (string, error) {
	var (
		data        []byte
		contentType string
		extension   string
		err         error
	)

	switch report.Format {
	case model.FormatCSV:
		data, err = docgen.RenderCSV(doc)
		contentType, extension = docgen.ContentTypeCSV, docgen.ExtensionCSV
	case model.FormatExcel:
		data, err = docgen.RenderExcel(doc)
		contentType, extension = docgen.ContentTypeExcel, docgen.ExtensionExcel
	case model.FormatPDF:
		data, err = docgen.RenderPDF(doc)
		contentType, extension = docgen.ContentTypePDF, docgen.ExtensionPDF
	default:
		return "", failure.BadRequestFromString("unknown report format")
	}

	if err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("%s-%s.%s", report.Type, report.ID, extension)

	return s.s3.UploadFileBytes(ctx, constant.Empty, reportDirectory, fileName, contentType, data)
}

func (s *serviceImpl) markFailed(ctx context.Context, report *model.Report, user string, cause error) {
	report.Status = model.StatusFailed
	message := cause.Error()
	report.Error = &message

	fields := map[string]any{
		model.FieldStatus:        model.StatusFailed,
		model.FieldError:         message,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, fields, shared.FilterByID(report.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to mark report as failed")
	}
}

func periodFilter(table, field string, start, end time.Time, extra ...gDto.Filter) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    field,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    start,
			Table:    table,
		},
		gDto.Filter{
			Field:    field,
			Operator: gDto.FilterOperatorLess,
			Value:    end,
			Table:    table,
		},
	}

	for _, f := range extra {
		filters = append(filters, f)
	}

	return gDto.FilterGroup{Filters: filters}
}
