package attendance

import (
	"net/http"
	"time"

	"seatwise/infras/otel"
	"seatwise/internal/domains/attendance/model/dto"
	"seatwise/internal/domains/attendance/service"
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
	service    service.Attendance
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Attendance, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/attendance", func(routerGroup chi.Router) {
		routerGroup.Post("/record", handler.RecordAttendance)
		routerGroup.Post("/activity", handler.RecordActivity)
		routerGroup.Get("/students/{id}", handler.GetStudentHistory)
		routerGroup.Get("/students/{id}/stats", handler.GetStudentStats)
	})
}

// RecordAttendance records a student's attendance for a date.
// @Summary Record attendance
// @Description Record a student's attendance status for a date. Only one row per student and date is allowed.
// @Tags Attendance
// @Accept json
// @Produce json
// @Param request body dto.RecordAttendanceRequest true "Record Attendance Request"
// @Success 201 {object} response.Message "Attendance recorded successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/attendance/record [post]
// @Security BearerAuth
func (handler *Handler) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RecordAttendance")
	defer scope.End()

	req := dto.RecordAttendanceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Record(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to record attendance")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Attendance recorded successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Attendance recorded successfully")
}

// RecordActivity appends a check-in or check-out event for a student.
// @Summary Record a check-in or check-out
// @Description Append a check-in or check-out event to today's attendance row, creating it when missing.
// @Tags Attendance
// @Accept json
// @Produce json
// @Param request body dto.RecordActivityRequest true "Record Activity Request"
// @Success 200 {object} dto.AttendanceResponse "Updated attendance with activities"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/attendance/activity [post]
// @Security BearerAuth
func (handler *Handler) RecordActivity(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RecordActivity")
	defer scope.End()

	req := dto.RecordActivityRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	attendance, err := handler.service.RecordActivity(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to record activity")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Activity recorded successfully")

	response.WithJSON(w, http.StatusOK, attendance)
}

// GetStudentHistory retrieves a student's attendance history.
// @Summary Get a student's attendance history
// @Description Retrieve a student's attendance rows with pagination.
// @Tags Attendance
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} dto.GetAttendancesResponse "Attendance history"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/attendance/students/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetStudentHistory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStudentHistory")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	history, err := handler.service.History(ctx, id, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get attendance history")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Attendance history retrieved successfully")

	response.WithJSON(w, http.StatusOK, history)
}

// GetStudentStats aggregates a student's attendance over a period.
// @Summary Get a student's attendance stats
// @Description Aggregate a student's present, absent and late counts plus attendance rate over a period.
// @Tags Attendance
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param start query string true "Period start (YYYY-MM-DD)"
// @Param end query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.StatsResponse "Attendance stats"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/attendance/students/{id}/stats [get]
// @Security BearerAuth
func (handler *Handler) GetStudentStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStudentStats")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

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

	stats, err := handler.service.Stats(ctx, id, start, end)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get attendance stats")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Attendance stats retrieved successfully")

	response.WithJSON(w, http.StatusOK, stats)
}
