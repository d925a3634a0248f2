package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"seatwise/config"
	"seatwise/infras/otel/mocks"
	operationMocks "seatwise/internal/domains/operation/mocks"
	"seatwise/internal/domains/operation/model"
	"seatwise/internal/domains/operation/model/dto"
	"seatwise/internal/domains/operation/service"
	seatMocks "seatwise/internal/domains/seat/mocks"
	cacheMocks "seatwise/shared/cache/mocks"
	"seatwise/shared/constant"
	"seatwise/shared/failure"
	gModel "seatwise/shared/model"
	"seatwise/shared/timezone"
)

func newOperationService(ctrl *gomock.Controller) (service.Operation, *operationMocks.MockOperation, *seatMocks.MockSeat, *cacheMocks.MockRedisCache) {
	mockRepo := operationMocks.NewMockOperation(ctrl)
	mockSeatRepo := seatMocks.NewMockSeat(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockSeatRepo, cfg, mockCache, mocks.NewOtel())

	return svc, mockRepo, mockSeatRepo, mockCache
}

func pendingOperation(id string) model.Operation {
	return model.Operation{
		ID:        id,
		Type:      model.TypeShift,
		Status:    model.StatusPending,
		Priority:  model.PriorityMedium,
		StartTime: timezone.Now(),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "test-user",
			ModifiedBy: "test-user",
		},
	}
}

func TestOperationService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockSeatRepo, mockCache := newOperationService(ctrl)

	seatID := "550e8400-e29b-41d4-a716-446655440000"
	endTime := "2026-09-01T12:00:00Z"
	badEndTime := "2026-09-01T08:00:00Z"

	tests := []struct {
		name      string
		req       dto.CreateOperationRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful create without seat",
			req: dto.CreateOperationRequest{
				Type:      model.TypeShift,
				StartTime: "2026-09-01T09:00:00Z",
			},
			setupMock: func() {
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
			name: "successful create with seat",
			req: dto.CreateOperationRequest{
				Type:      model.TypeMaintenance,
				SeatID:    &seatID,
				StartTime: "2026-09-01T09:00:00Z",
				EndTime:   &endTime,
			},
			setupMock: func() {
				mockSeatRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

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
			name: "invalid start time",
			req: dto.CreateOperationRequest{
				Type:      model.TypeShift,
				StartTime: "not-a-time",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "start after end",
			req: dto.CreateOperationRequest{
				Type:      model.TypeShift,
				StartTime: "2026-09-01T09:00:00Z",
				EndTime:   &badEndTime,
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "seat not found",
			req: dto.CreateOperationRequest{
				Type:      model.TypeMaintenance,
				SeatID:    &seatID,
				StartTime: "2026-09-01T09:00:00Z",
			},
			setupMock: func() {
				mockSeatRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "insert error",
			req: dto.CreateOperationRequest{
				Type:      model.TypeShift,
				StartTime: "2026-09-01T09:00:00Z",
			},
			setupMock: func() {
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
			err := svc.Create(ctx, tt.req)

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

func TestOperationService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockSeatRepo, mockCache := newOperationService(ctrl)

	seatID := "550e8400-e29b-41d4-a716-446655440000"

	allowInvalidation := func() {
		mockCache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()
	}

	tests := []struct {
		name      string
		req       dto.UpdateOperationRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful update",
			req:  dto.UpdateOperationRequest{Status: model.StatusInProgress},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingOperation("operation-id"), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				allowInvalidation()
			},
			wantErr: false,
		},
		{
			name: "completing stamps end time",
			req:  dto.UpdateOperationRequest{Status: model.StatusCompleted},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingOperation("operation-id"), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Contains(t, fields, model.FieldEndTime)

						return nil
					})

				allowInvalidation()
			},
			wantErr: false,
		},
		{
			name: "completing maintenance stamps the seat",
			req:  dto.UpdateOperationRequest{Status: model.StatusCompleted},
			setupMock: func() {
				operation := pendingOperation("operation-id")
				operation.Type = model.TypeMaintenance
				operation.SeatID = &seatID

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(operation, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockSeatRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				allowInvalidation()
			},
			wantErr: false,
		},
		{
			name: "not found",
			req:  dto.UpdateOperationRequest{Status: model.StatusInProgress},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Operation{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "update error",
			req:  dto.UpdateOperationRequest{Status: model.StatusInProgress},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingOperation("operation-id"), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("update error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user")
			err := svc.Update(ctx, tt.req, "operation-id")

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

func TestOperationService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, mockCache := newOperationService(ctrl)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful delete",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "not found",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "delete error",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(errors.New("delete error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(context.Background(), "operation-id")

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
