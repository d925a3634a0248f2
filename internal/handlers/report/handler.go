package report

import (
	"net/http"

	"seatwise/infras/otel"
	"seatwise/internal/domains/report/model"
	"seatwise/internal/domains/report/model/dto"
	"seatwise/internal/domains/report/service"
	"seatwise/shared/constant"
	gDto "seatwise/shared/dto"
	"seatwise/shared/validator"
	"seatwise/transport/http/middleware"
	"seatwise/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Report
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Report, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Post("/generate", handler.GenerateReport)
		routerGroup.Get("/", handler.GetReports)
		routerGroup.Get("/{id}", handler.GetReportByID)
	})
}

// GenerateReport aggregates a period into a stored report.
// @Summary Generate a report
// @Description Aggregate the requested period into a report. Non-JSON formats are rendered and uploaded, with the download URL stored on the report.
// @Tags Report
// @Accept json
// @Produce json
// @Param request body dto.GenerateReportRequest true "Generate Report Request"
// @Success 201 {object} dto.ReportResponse "Generated report"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/generate [post]
// @Security BearerAuth
func (handler *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GenerateReport")
	defer scope.End()

	req := dto.GenerateReportRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	report, err := handler.service.Generate(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to generate report")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Report generated successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, report)
}

// GetReports retrieves all reports based on query parameters.
// @Summary Get all reports
// @Description Retrieve all reports with optional filtering and pagination.
// @Tags Report
// @Accept json
// @Produce json
// @Param type query string false "Filter by report type"
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.GetReportsResponse "List of reports"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports [get]
// @Security BearerAuth
func (handler *Handler) GetReports(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReports")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	for _, field := range []string{model.FieldType, model.FieldStatus} {
		if value := r.URL.Query().Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	reports, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reports")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reports retrieved successfully")

	response.WithJSON(w, http.StatusOK, reports)
}

// GetReportByID retrieves a report by its ID.
// @Summary Get a report by ID
// @Description Retrieve a report, including its payload and download URL, by its unique identifier.
// @Tags Report
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} dto.ReportResponse "Report details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReportByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReportByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	report, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get report by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Report retrieved successfully")

	response.WithJSON(w, http.StatusOK, report)
}
