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
	bookingMocks "seatwise/internal/domains/booking/mocks"
	bookingModel "seatwise/internal/domains/booking/model"
	seatMocks "seatwise/internal/domains/seat/mocks"
	"seatwise/internal/domains/seat/model/dto"
	"seatwise/internal/domains/seat/service"
	cacheMocks "seatwise/shared/cache/mocks"
	"seatwise/shared/constant"
	"seatwise/shared/failure"
)

func newSeatService(ctrl *gomock.Controller) (service.Seat, *seatMocks.MockSeat, *bookingMocks.MockBooking, *cacheMocks.MockRedisCache) {
	mockRepo := seatMocks.NewMockSeat(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockBookingRepo, cfg, mockCache, mocks.NewOtel())

	return svc, mockRepo, mockBookingRepo, mockCache
}

func TestSeatService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, mockCache := newSeatService(ctrl)

	req := dto.CreateSeatRequest{
		SeatNumber: "A-12",
		Section:    "reading-room",
		Floor:      1,
		Type:       "standard",
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful create",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "duplicate seat number in section",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "insert error",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
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
			err := svc.Create(ctx, req)

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

func TestSeatService_Availability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockBookingRepo, _ := newSeatService(ctrl)

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		setupMock func()
		wantErr   bool
		wantCode  int
		check     func(t *testing.T, res dto.AvailabilityResponse)
	}{
		{
			name:  "seat is free",
			start: start,
			end:   end,
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockBookingRepo.EXPECT().
					FindConflict(gomock.Any(), "seat-id", start, end).
					Return(bookingModel.Booking{}, nil)
			},
			wantErr: false,
			check: func(t *testing.T, res dto.AvailabilityResponse) {
				assert.True(t, res.Available)
				assert.Nil(t, res.ConflictingBooking)
			},
		},
		{
			name:  "overlapping booking reported",
			start: start,
			end:   end,
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockBookingRepo.EXPECT().
					FindConflict(gomock.Any(), "seat-id", start, end).
					Return(bookingModel.Booking{
						ID:        "other-booking",
						SeatID:    "seat-id",
						Status:    bookingModel.StatusConfirmed,
						StartTime: start.Add(30 * time.Minute),
						EndTime:   end.Add(time.Hour),
					}, nil)
			},
			wantErr: false,
			check: func(t *testing.T, res dto.AvailabilityResponse) {
				assert.False(t, res.Available)

				if assert.NotNil(t, res.ConflictingBooking) {
					assert.Equal(t, "other-booking", res.ConflictingBooking.ID)
					assert.Equal(t, bookingModel.StatusConfirmed, res.ConflictingBooking.Status)
				}
			},
		},
		{
			name:  "seat not found",
			start: start,
			end:   end,
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:  "start after end",
			start: end,
			end:   start,
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:  "conflict lookup error",
			start: start,
			end:   end,
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockBookingRepo.EXPECT().
					FindConflict(gomock.Any(), "seat-id", start, end).
					Return(bookingModel.Booking{}, errors.New("query error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Availability(context.Background(), "seat-id", tt.start, tt.end)

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
