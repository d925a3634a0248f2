package operation

import (
	"net/http"

	"seatwise/infras/otel"
	"seatwise/internal/domains/operation/model"
	"seatwise/internal/domains/operation/model/dto"
	"seatwise/internal/domains/operation/service"
	"seatwise/shared/constant"
	gDto "seatwise/shared/dto"
	"seatwise/shared/validator"
	"seatwise/transport/http/middleware"
	"seatwise/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Operation
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Operation, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/operations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateOperation)
		routerGroup.Get("/", handler.GetOperations)
		routerGroup.Get("/{id}", handler.GetOperationByID)
		routerGroup.Patch("/{id}", handler.UpdateOperation)
		routerGroup.Delete("/{id}", handler.DeleteOperation)
	})
}

// CreateOperation records a shift, maintenance task, alert or log entry.
// @Summary Create a new operation
// @Description Create an operation with its type, priority, assignee and interval.
// @Tags Operation
// @Accept json
// @Produce json
// @Param request body dto.CreateOperationRequest true "Create Operation Request"
// @Success 201 {object} response.Message "Operation created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/operations [post]
// @Security BearerAuth
func (handler *Handler) CreateOperation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateOperation")
	defer scope.End()

	req := dto.CreateOperationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create operation")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Operation created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Operation created successfully")
}

// GetOperations retrieves all operations based on query parameters.
// @Summary Get all operations
// @Description Retrieve all operations with optional filtering and pagination.
// @Tags Operation
// @Accept json
// @Produce json
// @Param type query string false "Filter by type"
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param assigned_to query string false "Filter by assignee"
// @Success 200 {object} dto.GetOperationsResponse "List of operations"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/operations [get]
// @Security BearerAuth
func (handler *Handler) GetOperations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOperations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	for _, field := range []string{model.FieldType, model.FieldStatus, model.FieldPriority, model.FieldAssignedTo} {
		if value := r.URL.Query().Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	operations, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get operations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Operations retrieved successfully")

	response.WithJSON(w, http.StatusOK, operations)
}

// GetOperationByID retrieves an operation by its ID.
// @Summary Get an operation by ID
// @Description Retrieve an operation by its unique identifier.
// @Tags Operation
// @Accept json
// @Produce json
// @Param id path string true "Operation ID"
// @Success 200 {object} dto.OperationResponse "Operation details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/operations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetOperationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOperationByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	operation, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get operation by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Operation retrieved successfully")

	response.WithJSON(w, http.StatusOK, operation)
}

// UpdateOperation updates an existing operation by its ID.
// @Summary Update an operation by ID
// @Description Update the status, priority or assignee of an operation. Completing a maintenance operation stamps the target seat's last maintenance time.
// @Tags Operation
// @Accept json
// @Produce json
// @Param id path string true "Operation ID"
// @Param request body dto.UpdateOperationRequest true "Update Operation Request"
// @Success 200 {object} response.Message "Operation updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/operations/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateOperation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateOperation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateOperationRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update operation")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Operation updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Operation updated successfully")
}

// DeleteOperation deletes an operation by its ID.
// @Summary Delete an operation by ID
// @Description Delete an operation using its unique identifier.
// @Tags Operation
// @Accept json
// @Produce json
// @Param id path string true "Operation ID"
// @Success 200 {object} response.Message "Operation deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/operations/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteOperation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteOperation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete operation")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Operation deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Operation deleted successfully")
}
