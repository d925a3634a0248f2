package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"seatwise/config"
	"seatwise/infras/otel/mocks"
	systemMocks "seatwise/internal/domains/system/mocks"
	"seatwise/internal/domains/system/model"
	"seatwise/internal/domains/system/model/dto"
	"seatwise/internal/domains/system/service"
	cacheMocks "seatwise/shared/cache/mocks"
	"seatwise/shared/constant"
	gModel "seatwise/shared/model"
	"seatwise/shared/timezone"
)

func newSystemService(ctrl *gomock.Controller) (service.System, *systemMocks.MockSystem, *cacheMocks.MockRedisCache) {
	mockRepo := systemMocks.NewMockSystem(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel())

	return svc, mockRepo, mockCache
}

func storedSettings() model.Settings {
	return model.Settings{
		ID:                model.SingletonID,
		MaintenanceMode:   false,
		MinBookingMinutes: 30,
		MaxBookingMinutes: 480,
		Currency:          "USD",
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "test-user",
			ModifiedBy: "test-user",
		},
	}
}

func TestSystemService_GetSettings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _ := newSystemService(ctrl)

	t.Run("returns existing settings", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(storedSettings(), nil)

		res, err := svc.GetSettings(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, "USD", res.Currency)
		assert.Equal(t, 30, res.MinBookingMinutes)
	})

	t.Run("seeds defaults on first use", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Settings{}, nil)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, settings model.Settings) error {
				assert.Equal(t, model.SingletonID, settings.ID)
				assert.False(t, settings.MaintenanceMode)
				assert.Equal(t, 8, settings.PasswordMinLength)

				return nil
			})

		res, err := svc.GetSettings(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, "USD", res.Currency)
	})

	t.Run("get error", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Settings{}, errors.New("db error"))

		_, err := svc.GetSettings(context.Background())

		assert.Error(t, err)
	})
}

func TestSystemService_UpdateSettings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockCache := newSystemService(ctrl)

	maintenanceOn := true
	req := dto.UpdateSettingsRequest{MaintenanceMode: &maintenanceOn}

	t.Run("successful update mirrors maintenance flag to cache", func(t *testing.T) {
		updated := storedSettings()
		updated.MaintenanceMode = true

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(storedSettings(), nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(updated, nil)

		mockCache.EXPECT().
			Save(gomock.Any(), "system:maintenance", true, 0).
			Return(nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user")
		res, err := svc.UpdateSettings(ctx, req)

		assert.NoError(t, err)
		assert.True(t, res.MaintenanceMode)
	})

	t.Run("update error", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(storedSettings(), nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("update error"))

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user")
		_, err := svc.UpdateSettings(ctx, req)

		assert.Error(t, err)
	})

	t.Run("cache save error", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(storedSettings(), nil).
			Times(2)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache error"))

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user")
		_, err := svc.UpdateSettings(ctx, req)

		assert.Error(t, err)
	})
}
