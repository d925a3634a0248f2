package system

import (
	"net/http"

	"seatwise/infras/otel"
	"seatwise/internal/domains/system/model/dto"
	"seatwise/internal/domains/system/service"
	"seatwise/shared/constant"
	"seatwise/shared/validator"
	"seatwise/transport/http/middleware"
	"seatwise/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.System
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.System, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/system", func(routerGroup chi.Router) {
		routerGroup.Get("/settings", handler.GetSettings)
		routerGroup.Put("/settings", handler.UpdateSettings)
		routerGroup.Post("/backup", handler.Backup)
	})
}

// GetSettings retrieves the system settings.
// @Summary Get system settings
// @Description Retrieve the singleton system settings row, seeding defaults on first use.
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} dto.SettingsResponse "System settings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/system/settings [get]
// @Security BearerAuth
func (handler *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSettings")
	defer scope.End()

	settings, err := handler.service.GetSettings(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get system settings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("System settings retrieved successfully")

	response.WithJSON(w, http.StatusOK, settings)
}

// UpdateSettings updates the system settings.
// @Summary Update system settings
// @Description Update system settings fields. Toggling maintenance mode takes effect immediately through the maintenance middleware.
// @Tags System
// @Accept json
// @Produce json
// @Param request body dto.UpdateSettingsRequest true "Update Settings Request"
// @Success 200 {object} dto.SettingsResponse "Updated system settings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/system/settings [put]
// @Security BearerAuth
func (handler *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSettings")
	defer scope.End()

	req := dto.UpdateSettingsRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	settings, err := handler.service.UpdateSettings(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update system settings")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("System settings updated successfully by user " + user)

	response.WithJSON(w, http.StatusOK, settings)
}

// Backup runs a database backup.
// @Summary Run a database backup
// @Description Shell out to pg_dump and write a timestamped dump into the configured backup directory.
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} dto.BackupResponse "Backup result"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/system/backup [post]
// @Security BearerAuth
func (handler *Handler) Backup(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Backup")
	defer scope.End()

	result, err := handler.service.Backup(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to run database backup")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Database backup completed successfully by user " + user)

	response.WithJSON(w, http.StatusOK, result)
}
