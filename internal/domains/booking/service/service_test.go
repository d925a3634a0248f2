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
	kafkaMocks "seatwise/infras/kafka/mocks"
	"seatwise/infras/otel/mocks"
	bookingMocks "seatwise/internal/domains/booking/mocks"
	"seatwise/internal/domains/booking/model"
	"seatwise/internal/domains/booking/model/dto"
	"seatwise/internal/domains/booking/repository"
	"seatwise/internal/domains/booking/service"
	financialMocks "seatwise/internal/domains/financial/mocks"
	seatMocks "seatwise/internal/domains/seat/mocks"
	cacheMocks "seatwise/shared/cache/mocks"
	"seatwise/shared/constant"
	gDto "seatwise/shared/dto"
	"seatwise/shared/failure"
	gModel "seatwise/shared/model"
	"seatwise/shared/timezone"
)

type bookingMockSet struct {
	repo      *bookingMocks.MockBooking
	seatRepo  *seatMocks.MockSeat
	financial *financialMocks.MockFinancial
	cache     *cacheMocks.MockRedisCache
	kafka     *kafkaMocks.MockClient
}

func newBookingService(ctrl *gomock.Controller) (service.Booking, bookingMockSet) {
	set := bookingMockSet{
		repo:      bookingMocks.NewMockBooking(ctrl),
		seatRepo:  seatMocks.NewMockSeat(ctrl),
		financial: financialMocks.NewMockFinancial(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		kafka:     kafkaMocks.NewMockClient(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Enable = false

	svc := service.New(set.repo, set.seatRepo, set.financial, cfg, set.cache, mocks.NewOtel(), set.kafka)

	return svc, set
}

func pendingBooking(userID string) model.Booking {
	return model.Booking{
		ID:            "booking-id",
		UserID:        userID,
		SeatID:        "seat-id",
		StartTime:     time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
		Status:        model.StatusPending,
		BookingType:   model.TypeHourly,
		PriceAmount:   10,
		PriceCurrency: "USD",
		PaymentStatus: model.PaymentPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

func userContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBookingService(ctrl)

	validReq := dto.CreateBookingRequest{
		SeatID:    "550e8400-e29b-41d4-a716-446655440000",
		StartTime: "2026-09-01T09:00:00Z",
		EndTime:   "2026-09-01T11:00:00Z",
	}

	allowCacheInvalidation := func() {
		set.cache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		set.cache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()
	}

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful reservation",
			req:  validReq,
			setupMock: func() {
				set.seatRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				set.repo.EXPECT().
					Reserve(gomock.Any(), gomock.Any()).
					Return(nil)

				allowCacheInvalidation()
			},
			wantErr: false,
		},
		{
			name: "seat not found",
			req:  validReq,
			setupMock: func() {
				set.seatRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "invalid time format",
			req: dto.CreateBookingRequest{
				SeatID:    validReq.SeatID,
				StartTime: "not-a-time",
				EndTime:   validReq.EndTime,
			},
			setupMock: func() {
				set.seatRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "start time not before end time",
			req: dto.CreateBookingRequest{
				SeatID:    validReq.SeatID,
				StartTime: "2026-09-01T11:00:00Z",
				EndTime:   "2026-09-01T09:00:00Z",
			},
			setupMock: func() {
				set.seatRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "seat unavailable",
			req:  validReq,
			setupMock: func() {
				set.seatRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				set.repo.EXPECT().
					Reserve(gomock.Any(), gomock.Any()).
					Return(repository.ErrSeatUnavailable)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "overlapping booking",
			req:  validReq,
			setupMock: func() {
				set.seatRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				set.repo.EXPECT().
					Reserve(gomock.Any(), gomock.Any()).
					Return(repository.ErrBookingConflict)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "reservation error",
			req:  validReq,
			setupMock: func() {
				set.seatRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				set.repo.EXPECT().
					Reserve(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := userContext("test-user", constant.RoleUser)
			result, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, result.ID)
				assert.Equal(t, model.StatusPending, result.Status)
			}
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBookingService(ctrl)

	booking := pendingBooking("test-user")

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "cache hit",
			id:   "booking-id",
			setupMock: func() {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, found in db",
			id:   "booking-id",
			setupMock: func() {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				set.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "booking not found",
			id:   "nonexistent-id",
			setupMock: func() {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			id:   "booking-id",
			setupMock: func() {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			_, err := svc.Get(ctx, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBookingService(ctrl)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantTotal int
	}{
		{
			name: "successful get all",
			setupMock: func() {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				set.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				set.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{pendingBooking("test-user")}, nil)

				set.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:   false,
			wantTotal: 1,
		},
		{
			name: "count error",
			setupMock: func() {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				set.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("count error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			result, err := svc.GetAll(ctx, gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantTotal, result.TotalData)
			}
		})
	}
}

func TestBookingService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBookingService(ctrl)

	allowCacheInvalidation := func() {
		set.cache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		set.cache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()
	}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.UpdateBookingStatusRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "owner confirms pending booking",
			ctx:  userContext("test-user", constant.RoleUser),
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed},
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking("test-user"), nil)

				set.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				set.financial.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				allowCacheInvalidation()
			},
			wantErr: false,
		},
		{
			name: "staff completes confirmed booking",
			ctx:  userContext("staff-user", constant.RoleStaff),
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusCompleted},
			setupMock: func() {
				confirmed := pendingBooking("test-user")
				confirmed.Status = model.StatusConfirmed

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmed, nil)

				set.repo.EXPECT().
					Release(gomock.Any(), confirmed.ID, confirmed.SeatID, gomock.Any(), false).
					Return(nil)

				allowCacheInvalidation()
			},
			wantErr: false,
		},
		{
			name: "illegal transition",
			ctx:  userContext("test-user", constant.RoleUser),
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusCompleted},
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking("test-user"), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "not the owner and not privileged",
			ctx:  userContext("someone-else", constant.RoleUser),
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed},
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking("test-user"), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "booking not found",
			ctx:  userContext("test-user", constant.RoleUser),
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed},
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "payment record error rolls up",
			ctx:  userContext("test-user", constant.RoleUser),
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed},
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking("test-user"), nil)

				set.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				set.financial.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("insert error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.UpdateStatus(tt.ctx, tt.req, "booking-id")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBookingService(ctrl)

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "owner cancels pending booking",
			ctx:  userContext("test-user", constant.RoleUser),
			setupMock: func() {
				booking := pendingBooking("test-user")

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				set.repo.EXPECT().
					Release(gomock.Any(), booking.ID, booking.SeatID, gomock.Any(), true).
					Return(nil)

				set.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				set.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "completed booking cannot be cancelled",
			ctx:  userContext("test-user", constant.RoleUser),
			setupMock: func() {
				completed := pendingBooking("test-user")
				completed.Status = model.StatusCompleted

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(completed, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Cancel(tt.ctx, "booking-id")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
