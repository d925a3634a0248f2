package financial

import (
	"net/http"
	"time"

	"seatwise/infras/otel"
	"seatwise/internal/domains/financial/model"
	"seatwise/internal/domains/financial/model/dto"
	"seatwise/internal/domains/financial/service"
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
	requestParamStart = "start"
	requestParamEnd   = "end"
)

type Handler struct {
	service    service.Financial
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Financial, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/financials", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateFinancialRecord)
		routerGroup.Get("/", handler.GetFinancialRecords)
		routerGroup.Get("/revenue", handler.GetRevenueSummary)
		routerGroup.Get("/{id}", handler.GetFinancialRecordByID)
		routerGroup.Patch("/{id}", handler.UpdateFinancialRecord)
		routerGroup.Delete("/{id}", handler.DeleteFinancialRecord)
	})
}

// CreateFinancialRecord records a payment, refund or adjustment.
// @Summary Create a new financial record
// @Description Create a financial record with a unique reference.
// @Tags Financial
// @Accept json
// @Produce json
// @Param request body dto.CreateFinancialRecordRequest true "Create Financial Record Request"
// @Success 201 {object} response.Message "Financial record created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/financials [post]
// @Security BearerAuth
func (handler *Handler) CreateFinancialRecord(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateFinancialRecord")
	defer scope.End()

	req := dto.CreateFinancialRecordRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create financial record")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Financial record created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Financial record created successfully")
}

// GetFinancialRecords retrieves all financial records based on query parameters.
// @Summary Get all financial records
// @Description Retrieve all financial records with optional filtering and pagination.
// @Tags Financial
// @Accept json
// @Produce json
// @Param type query string false "Filter by record type"
// @Param status query string false "Filter by status"
// @Param student_id query string false "Filter by student"
// @Success 200 {object} dto.GetFinancialRecordsResponse "List of financial records"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/financials [get]
// @Security BearerAuth
func (handler *Handler) GetFinancialRecords(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFinancialRecords")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	for _, field := range []string{model.FieldType, model.FieldStatus, model.FieldStudentID} {
		if value := r.URL.Query().Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	records, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get financial records")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Financial records retrieved successfully")

	response.WithJSON(w, http.StatusOK, records)
}

// GetRevenueSummary aggregates completed payments into daily buckets.
// @Summary Get a revenue summary
// @Description Aggregate completed payments into daily revenue buckets over a period.
// @Tags Financial
// @Accept json
// @Produce json
// @Param start query string true "Period start (YYYY-MM-DD)"
// @Param end query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.RevenueSummaryResponse "Revenue summary"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/financials/revenue [get]
// @Security BearerAuth
func (handler *Handler) GetRevenueSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRevenueSummary")
	defer scope.End()

	start, err := time.Parse(constant.DateOnlyFormat, r.URL.Query().Get(requestParamStart))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse start date")

		response.WithError(w, failure.BadRequestFromString("start must be a valid date (YYYY-MM-DD)"))

		return
	}

	end, err := time.Parse(constant.DateOnlyFormat, r.URL.Query().Get(requestParamEnd))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse end date")

		response.WithError(w, failure.BadRequestFromString("end must be a valid date (YYYY-MM-DD)"))

		return
	}

	summary, err := handler.service.RevenueSummary(ctx, start, end)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get revenue summary")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Revenue summary retrieved successfully")

	response.WithJSON(w, http.StatusOK, summary)
}

// GetFinancialRecordByID retrieves a financial record by its ID.
// @Summary Get a financial record by ID
// @Description Retrieve a financial record by its unique identifier.
// @Tags Financial
// @Accept json
// @Produce json
// @Param id path string true "Financial Record ID"
// @Success 200 {object} dto.FinancialRecordResponse "Financial record details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/financials/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetFinancialRecordByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFinancialRecordByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	record, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get financial record by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Financial record retrieved successfully")

	response.WithJSON(w, http.StatusOK, record)
}

// UpdateFinancialRecord updates an unsettled financial record by its ID.
// @Summary Update a financial record by ID
// @Description Update the status, payment method or description of an unsettled financial record.
// @Tags Financial
// @Accept json
// @Produce json
// @Param id path string true "Financial Record ID"
// @Param request body dto.UpdateFinancialRecordRequest true "Update Financial Record Request"
// @Success 200 {object} response.Message "Financial record updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/financials/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateFinancialRecord(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateFinancialRecord")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateFinancialRecordRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update financial record")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Financial record updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Financial record updated successfully")
}

// DeleteFinancialRecord deletes a financial record by its ID.
// @Summary Delete a financial record by ID
// @Description Delete a financial record that has not been completed.
// @Tags Financial
// @Accept json
// @Produce json
// @Param id path string true "Financial Record ID"
// @Success 200 {object} response.Message "Financial record deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/financials/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteFinancialRecord(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteFinancialRecord")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete financial record")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Financial record deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Financial record deleted successfully")
}
