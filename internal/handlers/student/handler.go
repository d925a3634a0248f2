package student

import (
	"net/http"

	"seatwise/infras/otel"
	"seatwise/internal/domains/student/model"
	"seatwise/internal/domains/student/model/dto"
	"seatwise/internal/domains/student/service"
	"seatwise/shared"
	"seatwise/shared/constant"
	gDto "seatwise/shared/dto"
	"seatwise/shared/validator"
	"seatwise/transport/http/middleware"
	"seatwise/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Student
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Student, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/students", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateStudent)
		routerGroup.Get("/", handler.GetStudents)
		routerGroup.Get("/{id}", handler.GetStudentByID)
		routerGroup.Patch("/{id}", handler.UpdateStudent)
		routerGroup.Delete("/{id}", handler.DeleteStudent)
	})
}

// CreateStudent registers a new student profile.
// @Summary Create a new student
// @Description Create a student profile, optionally uploading a base64-encoded ID proof document.
// @Tags Student
// @Accept json
// @Produce json
// @Param request body dto.CreateStudentRequest true "Create Student Request"
// @Success 201 {object} response.Message "Student created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/students [post]
// @Security BearerAuth
func (handler *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateStudent")
	defer scope.End()

	req := dto.CreateStudentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create student")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Student created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Student created successfully")
}

// GetStudents retrieves all students based on query parameters.
// @Summary Get all students
// @Description Retrieve all students with optional filtering and pagination.
// @Tags Student
// @Accept json
// @Produce json
// @Param name query string false "Filter by name"
// @Param membership_type query string false "Filter by membership type"
// @Param active query boolean false "Filter by active flag"
// @Success 200 {object} dto.GetStudentsResponse "List of students"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/students [get]
// @Security BearerAuth
func (handler *Handler) GetStudents(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStudents")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorLike,
				Value:    r.URL.Query().Get(model.FieldName),
				Table:    model.TableName,
			},
		},
	}

	if membership := r.URL.Query().Get(model.FieldMembershipType); membership != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldMembershipType,
			Operator: gDto.FilterOperatorEq,
			Value:    membership,
			Table:    model.TableName,
		})
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	students, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get students")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Students retrieved successfully")

	response.WithJSON(w, http.StatusOK, students)
}

// GetStudentByID retrieves a student by their ID.
// @Summary Get a student by ID
// @Description Retrieve a student profile by its unique identifier.
// @Tags Student
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} dto.StudentResponse "Student details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/students/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetStudentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStudentByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	student, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get student by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Student retrieved successfully")

	response.WithJSON(w, http.StatusOK, student)
}

// UpdateStudent updates an existing student by their ID.
// @Summary Update a student by ID
// @Description Update the details of an existing student profile.
// @Tags Student
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Update Student Request"
// @Success 200 {object} response.Message "Student updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/students/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateStudent")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateStudentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update student")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Student updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Student updated successfully")
}

// DeleteStudent deletes a student by their ID.
// @Summary Delete a student by ID
// @Description Delete a student profile and its stored ID proof document.
// @Tags Student
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Message "Student deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/students/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteStudent")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete student")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Student deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Student deleted successfully")
}
