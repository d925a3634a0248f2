package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"seatwise/config"
	"seatwise/infras/otel/mocks"
	systemMocks "seatwise/internal/domains/system/mocks"
	"seatwise/internal/domains/system/model"
	cacheMocks "seatwise/shared/cache/mocks"
	"seatwise/transport/http/middleware"
)

const maintenanceCacheKey = "system:maintenance"

func newMaintenanceHandler(ctrl *gomock.Controller) (http.Handler, *cacheMocks.MockRedisCache, *systemMocks.MockSystem) {
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockRepo := systemMocks.NewMockSystem(ctrl)

	app := middleware.NewAppMiddleware(mocks.NewOtel(), &config.Config{}, mockCache, mockRepo)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return app.Maintenance(next), mockCache, mockRepo
}

func TestMaintenance(t *testing.T) {
	t.Run("cached flag on blocks the request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		handler, mockCache, _ := newMaintenanceHandler(ctrl)

		mockCache.EXPECT().
			Get(gomock.Any(), maintenanceCacheKey, gomock.Any()).
			DoAndReturn(func(_ any, _ string, value any) error {
				*(value.(*bool)) = true

				return nil
			})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/bookings", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("cached flag off lets the request through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		handler, mockCache, _ := newMaintenanceHandler(ctrl)

		mockCache.EXPECT().
			Get(gomock.Any(), maintenanceCacheKey, gomock.Any()).
			DoAndReturn(func(_ any, _ string, value any) error {
				*(value.(*bool)) = false

				return nil
			})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/seats", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("cache miss falls back to the settings row and re-primes the key", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		handler, mockCache, mockRepo := newMaintenanceHandler(ctrl)

		mockCache.EXPECT().
			Get(gomock.Any(), maintenanceCacheKey, gomock.Any()).
			Return(errors.New("cache miss"))
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Settings{ID: model.SingletonID, MaintenanceMode: true}, nil)
		mockCache.EXPECT().
			Save(gomock.Any(), maintenanceCacheKey, true, 0).
			Return(nil)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/bookings", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("cache miss with maintenance off stays open", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		handler, mockCache, mockRepo := newMaintenanceHandler(ctrl)

		mockCache.EXPECT().
			Get(gomock.Any(), maintenanceCacheKey, gomock.Any()).
			Return(errors.New("cache miss"))
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Settings{ID: model.SingletonID}, nil)
		mockCache.EXPECT().
			Save(gomock.Any(), maintenanceCacheKey, false, 0).
			Return(nil)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/students", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("settings lookup error fails open", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		handler, mockCache, mockRepo := newMaintenanceHandler(ctrl)

		mockCache.EXPECT().
			Get(gomock.Any(), maintenanceCacheKey, gomock.Any()).
			Return(errors.New("cache miss"))
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Settings{}, errors.New("connection refused"))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/bookings", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("auth and system endpoints bypass the gate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		handler, _, _ := newMaintenanceHandler(ctrl)

		for _, path := range []string{"/v1/auth/login", "/v1/system/settings", "/health"} {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})
}
