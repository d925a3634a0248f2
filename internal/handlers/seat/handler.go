package seat

import (
	"net/http"
	"time"

	"seatwise/infras/otel"
	"seatwise/internal/domains/seat/model"
	"seatwise/internal/domains/seat/model/dto"
	"seatwise/internal/domains/seat/service"
	"seatwise/shared/constant"
	gDto "seatwise/shared/dto"
	"seatwise/shared/failure"
	"seatwise/shared/validator"
	"seatwise/transport/http/middleware"
	"seatwise/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

const (
	requestParamStartTime = "start_time"
	requestParamEndTime   = "end_time"
)

type Handler struct {
	service    service.Seat
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Seat, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/seats", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateSeat)
		routerGroup.Get("/", handler.GetSeats)
		routerGroup.Get("/{id}", handler.GetSeatByID)
		routerGroup.Get("/{id}/availability", handler.GetSeatAvailability)
		routerGroup.Patch("/{id}", handler.UpdateSeat)
		routerGroup.Delete("/{id}", handler.DeleteSeat)
	})
}

// CreateSeat adds a new seat to the floor plan.
// @Summary Create a new seat
// @Description Create a seat with its section, floor, position and features.
// @Tags Seat
// @Accept json
// @Produce json
// @Param request body dto.CreateSeatRequest true "Create Seat Request"
// @Success 201 {object} response.Message "Seat created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/seats [post]
// @Security BearerAuth
func (handler *Handler) CreateSeat(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSeat")
	defer scope.End()

	req := dto.CreateSeatRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create seat")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Seat created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Seat created successfully")
}

// GetSeats retrieves all seats based on query parameters.
// @Summary Get all seats
// @Description Retrieve all seats with optional filtering and pagination.
// @Tags Seat
// @Accept json
// @Produce json
// @Param section query string false "Filter by section"
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by seat type"
// @Success 200 {object} dto.GetSeatsResponse "List of seats"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/seats [get]
func (handler *Handler) GetSeats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSeats")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	for _, field := range []string{model.FieldSection, model.FieldStatus, model.FieldType} {
		if value := r.URL.Query().Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	seats, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get seats")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Seats retrieved successfully")

	response.WithJSON(w, http.StatusOK, seats)
}

// GetSeatByID retrieves a seat by its ID.
// @Summary Get a seat by ID
// @Description Retrieve a seat by its unique identifier.
// @Tags Seat
// @Accept json
// @Produce json
// @Param id path string true "Seat ID"
// @Success 200 {object} dto.SeatResponse "Seat details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/seats/{id} [get]
func (handler *Handler) GetSeatByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSeatByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	seat, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get seat by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Seat retrieved successfully")

	response.WithJSON(w, http.StatusOK, seat)
}

// GetSeatAvailability checks a seat for booking conflicts in an interval.
// @Summary Check seat availability
// @Description Check whether a seat is free for the given interval, reporting any conflicting booking.
// @Tags Seat
// @Accept json
// @Produce json
// @Param id path string true "Seat ID"
// @Param start_time query string true "Interval start (RFC3339)"
// @Param end_time query string true "Interval end (RFC3339)"
// @Success 200 {object} dto.AvailabilityResponse "Availability result"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/seats/{id}/availability [get]
func (handler *Handler) GetSeatAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSeatAvailability")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	startTime, err := time.Parse(time.RFC3339, r.URL.Query().Get(requestParamStartTime))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse start_time")

		response.WithError(w, failure.BadRequestFromString("start_time must be a valid RFC3339 timestamp"))

		return
	}

	endTime, err := time.Parse(time.RFC3339, r.URL.Query().Get(requestParamEndTime))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse end_time")

		response.WithError(w, failure.BadRequestFromString("end_time must be a valid RFC3339 timestamp"))

		return
	}

	availability, err := handler.service.Availability(ctx, id, startTime, endTime)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check seat availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Seat availability checked successfully")

	response.WithJSON(w, http.StatusOK, availability)
}

// UpdateSeat updates an existing seat by its ID.
// @Summary Update a seat by ID
// @Description Update the details or status of an existing seat.
// @Tags Seat
// @Accept json
// @Produce json
// @Param id path string true "Seat ID"
// @Param request body dto.UpdateSeatRequest true "Update Seat Request"
// @Success 200 {object} response.Message "Seat updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/seats/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateSeat(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSeat")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateSeatRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update seat")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Seat updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Seat updated successfully")
}

// DeleteSeat deletes a seat by its ID.
// @Summary Delete a seat by ID
// @Description Delete a seat that has no active booking.
// @Tags Seat
// @Accept json
// @Produce json
// @Param id path string true "Seat ID"
// @Success 200 {object} response.Message "Seat deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/seats/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteSeat(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSeat")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete seat")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Seat deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Seat deleted successfully")
}
