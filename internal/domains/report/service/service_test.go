package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"seatwise/config"
	"seatwise/infras/otel/mocks"
	s3Mocks "seatwise/infras/s3/mocks"
	attendanceMocks "seatwise/internal/domains/attendance/mocks"
	bookingMocks "seatwise/internal/domains/booking/mocks"
	financialMocks "seatwise/internal/domains/financial/mocks"
	financialRepo "seatwise/internal/domains/financial/repository"
	operationMocks "seatwise/internal/domains/operation/mocks"
	operationRepo "seatwise/internal/domains/operation/repository"
	reportMocks "seatwise/internal/domains/report/mocks"
	"seatwise/internal/domains/report/model"
	"seatwise/internal/domains/report/model/dto"
	"seatwise/internal/domains/report/service"
	"seatwise/shared/constant"
	gDto "seatwise/shared/dto"
	"seatwise/shared/failure"
	gModel "seatwise/shared/model"
	"seatwise/shared/timezone"
)

type reportMockSet struct {
	repo       *reportMocks.MockReport
	financial  *financialMocks.MockFinancial
	attendance *attendanceMocks.MockAttendance
	booking    *bookingMocks.MockBooking
	operation  *operationMocks.MockOperation
	s3         *s3Mocks.MockS3
}

func newReportService(ctrl *gomock.Controller) (service.Report, reportMockSet) {
	set := reportMockSet{
		repo:       reportMocks.NewMockReport(ctrl),
		financial:  financialMocks.NewMockFinancial(ctrl),
		attendance: attendanceMocks.NewMockAttendance(ctrl),
		booking:    bookingMocks.NewMockBooking(ctrl),
		operation:  operationMocks.NewMockOperation(ctrl),
		s3:         s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}

	svc := service.New(set.repo, set.financial, set.attendance, set.booking, set.operation, cfg, set.s3, mocks.NewOtel())

	return svc, set
}

func TestReportService_Generate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newReportService(ctrl)

	period := dto.Period{Start: "2026-09-01", End: "2026-09-30"}
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		req       dto.GenerateReportRequest
		setupMock func()
		wantErr   bool
		wantCode  int
		check     func(t *testing.T, res dto.ReportResponse)
	}{
		{
			name: "json revenue report",
			req: dto.GenerateReportRequest{
				Type:   model.TypeRevenue,
				Period: period,
			},
			setupMock: func() {
				set.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				set.financial.EXPECT().
					SumRevenueByDay(gomock.Any(), start, end).
					Return([]financialRepo.RevenueByDay{{Day: start, Revenue: 100, Count: 4}}, nil)

				set.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
			check: func(t *testing.T, res dto.ReportResponse) {
				assert.Equal(t, model.StatusCompleted, res.Status)
				assert.Equal(t, model.FormatJSON, res.Format)
				assert.NotEmpty(t, res.Data)
				assert.Nil(t, res.DownloadURL)
			},
		},
		{
			name: "csv attendance report uploads document",
			req: dto.GenerateReportRequest{
				Type:   model.TypeAttendance,
				Format: model.FormatCSV,
				Period: period,
			},
			setupMock: func() {
				set.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				set.attendance.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(5, nil).
					Times(3)

				set.s3.EXPECT().
					UploadFileBytes(gomock.Any(), gomock.Any(), "reports", gomock.Any(), "text/csv", gomock.Any()).
					Return("https://bucket/reports/file.csv", nil)

				set.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
			check: func(t *testing.T, res dto.ReportResponse) {
				assert.Equal(t, model.StatusCompleted, res.Status)
				assert.NotNil(t, res.DownloadURL)
				assert.Equal(t, "https://bucket/reports/file.csv", *res.DownloadURL)
			},
		},
		{
			name: "trends report aggregates revenue and utilization",
			req: dto.GenerateReportRequest{
				Type:   model.TypeTrends,
				Period: period,
			},
			setupMock: func() {
				set.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				set.financial.EXPECT().
					SumRevenueByDay(gomock.Any(), start, end).
					Return([]financialRepo.RevenueByDay{}, nil)

				set.booking.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(2, nil).
					Times(4)

				set.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "performance report",
			req: dto.GenerateReportRequest{
				Type:   model.TypePerformance,
				Period: period,
			},
			setupMock: func() {
				set.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				set.operation.EXPECT().
					CompletionByAssignee(gomock.Any(), start, end).
					Return([]operationRepo.AssigneeCompletion{
						{AssignedTo: "staff-id", Total: 10, Completed: 8},
					}, nil)

				set.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "invalid period start",
			req: dto.GenerateReportRequest{
				Type:   model.TypeRevenue,
				Period: dto.Period{Start: "yesterday", End: "2026-09-30"},
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "period start after end",
			req: dto.GenerateReportRequest{
				Type:   model.TypeRevenue,
				Period: dto.Period{Start: "2026-09-30", End: "2026-09-01"},
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "aggregation failure marks report failed",
			req: dto.GenerateReportRequest{
				Type:   model.TypeRevenue,
				Period: period,
			},
			setupMock: func() {
				set.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				set.financial.EXPECT().
					SumRevenueByDay(gomock.Any(), start, end).
					Return(nil, errors.New("query error"))

				set.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, model.StatusFailed, fields[model.FieldStatus])

						return nil
					})
			},
			wantErr: true,
			check: func(t *testing.T, res dto.ReportResponse) {
				assert.Equal(t, model.StatusFailed, res.Status)
				assert.NotNil(t, res.Error)
			},
		},
		{
			name: "upload failure marks report failed",
			req: dto.GenerateReportRequest{
				Type:   model.TypeAttendance,
				Format: model.FormatCSV,
				Period: period,
			},
			setupMock: func() {
				set.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				set.attendance.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(5, nil).
					Times(3)

				set.s3.EXPECT().
					UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", errors.New("upload error"))

				set.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: true,
		},
		{
			name: "insert error",
			req: dto.GenerateReportRequest{
				Type:   model.TypeRevenue,
				Period: period,
			},
			setupMock: func() {
				set.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("insert error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user")
			res, err := svc.Generate(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}

			if tt.check != nil {
				tt.check(t, res)
			}
		})
	}
}

func TestReportService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newReportService(ctrl)

	t.Run("found", func(t *testing.T) {
		set.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Report{
				ID:          "report-id",
				Type:        model.TypeRevenue,
				Format:      model.FormatJSON,
				Status:      model.StatusCompleted,
				PeriodStart: timezone.Now(),
				PeriodEnd:   timezone.Now(),
				GeneratedBy: "test-user",
				Metadata: gModel.Metadata{
					CreatedAt:  timezone.Now(),
					ModifiedAt: timezone.Now(),
					CreatedBy:  "test-user",
					ModifiedBy: "test-user",
				},
			}, nil)

		res, err := svc.Get(context.Background(), "report-id")

		assert.NoError(t, err)
		assert.Equal(t, "report-id", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		set.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Report{}, nil)

		_, err := svc.Get(context.Background(), "report-id")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestReportService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newReportService(ctrl)

	t.Run("success", func(t *testing.T) {
		set.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)

		set.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Report{{ID: "report-id"}}, nil)

		res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Len(t, res.Reports, 1)
		assert.Equal(t, 1, res.TotalData)
	})

	t.Run("count error", func(t *testing.T) {
		set.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(0, errors.New("count error"))

		_, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

		assert.Error(t, err)
	})
}
