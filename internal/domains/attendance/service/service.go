package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"seatwise/config"
	"seatwise/infras/otel"
	"seatwise/internal/domains/attendance/model"
	"seatwise/internal/domains/attendance/model/dto"
	"seatwise/internal/domains/attendance/repository"
	studentModel "seatwise/internal/domains/student/model"
	studentRepo "seatwise/internal/domains/student/repository"
	"seatwise/shared"
	"seatwise/shared/cache"
	"seatwise/shared/constant"
	gDto "seatwise/shared/dto"
	"seatwise/shared/failure"
	gModel "seatwise/shared/model"
	"seatwise/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheHistory         = "attendance:history"
	cacheStatsAttendance = "attendance:stats"
)

type Attendance interface {
	Record(ctx context.Context, req dto.RecordAttendanceRequest) error
	RecordActivity(ctx context.Context, req dto.RecordActivityRequest) (dto.AttendanceResponse, error)
	History(ctx context.Context, studentID string, params gDto.QueryParams) (dto.GetAttendancesResponse, error)
	Stats(ctx context.Context, studentID string, start, end time.Time) (dto.StatsResponse, error)
}

type serviceImpl struct {
	repo        repository.Attendance
	studentRepo studentRepo.Student
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Attendance, studentRepo studentRepo.Student, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Attendance {
	return &serviceImpl{
		repo:        repo,
		studentRepo: studentRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Record(ctx context.Context, req dto.RecordAttendanceRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Record")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.requireStudent(ctx, req.StudentID); err != nil {
		return err
	}

	attendance, err := req.ToModel(user)
	if err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err))
	}

	exists, err := s.repo.Exist(ctx, studentDateFilter(req.StudentID, attendance.Date))
	if err != nil {
		log.Error().Err(err).Msg("failed to check existing attendance")

		return fmt.Errorf("failed to check existing attendance: %w", err)
	}

	if exists {
		return failure.BadRequestFromString("attendance already recorded for this student and date")
	}

	if err = s.repo.Insert(ctx, attendance); err != nil {
		log.Error().Err(err).Msg("failed to record attendance")

		return fmt.Errorf("failed to record attendance: %w", err)
	}

	s.invalidate(ctx, req.StudentID)

	return nil
}

// RecordActivity appends a check-in or check-out event to today's
// attendance row, creating the row when missing. A second check-in without
// an intervening check-out is rejected, as is a check-out with no check-in.
// Checking in again after a check-out reopens the day: the check-in time is
// restamped and the check-out cleared, while the activity log keeps every
// event.
func (s *serviceImpl) RecordActivity(ctx context.Context, req dto.RecordActivityRequest) (res dto.AttendanceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RecordActivity")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.requireStudent(ctx, req.StudentID); err != nil {
		return res, err
	}

	now := timezone.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	attendance, err := s.repo.Get(ctx, studentDateFilter(req.StudentID, today))
	if err != nil {
		log.Error().Err(err).Msg("failed to get attendance")

		return res, fmt.Errorf("failed to get attendance: %w", err)
	}

	if attendance.ID == constant.Empty {
		attendance = model.Attendance{
			ID:        uuid.NewString(),
			StudentID: req.StudentID,
			Date:      today,
			Status:    model.StatusPresent,
			Metadata: gModel.Metadata{
				CreatedAt:  now,
				ModifiedAt: now,
				CreatedBy:  user,
				ModifiedBy: user,
			},
		}

		if err = s.repo.Insert(ctx, attendance); err != nil {
			log.Error().Err(err).Msg("failed to create attendance")

			return res, fmt.Errorf("failed to create attendance: %w", err)
		}
	}

	fields := map[string]any{
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	switch req.Type {
	case model.ActivityCheckIn:
		if attendance.CheckInTime != nil && attendance.CheckOutTime == nil {
			return res, failure.BadRequestFromString("student is already checked in")
		}

		fields[model.FieldCheckInTime] = now
		fields[model.FieldCheckOutTime] = nil
		attendance.CheckInTime = &now
		attendance.CheckOutTime = nil
	case model.ActivityCheckOut:
		if attendance.CheckInTime == nil {
			return res, failure.BadRequestFromString("student has not checked in")
		}

		if attendance.CheckOutTime != nil {
			return res, failure.BadRequestFromString("student is already checked out")
		}

		fields[model.FieldCheckOutTime] = now
		attendance.CheckOutTime = &now
	}

	activity := model.Activity{
		ID:           uuid.NewString(),
		AttendanceID: attendance.ID,
		Type:         req.Type,
		Timestamp:    now,
		Location:     req.Location,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if err = s.repo.InsertActivity(ctx, activity); err != nil {
		log.Error().Err(err).Msg("failed to record activity")

		return res, fmt.Errorf("failed to record activity: %w", err)
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(attendance.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update attendance times")

		return res, fmt.Errorf("failed to update attendance times: %w", err)
	}

	s.invalidate(ctx, req.StudentID)

	activities, err := s.repo.GetActivities(ctx, attendance.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get activities")

		return res, fmt.Errorf("failed to get activities: %w", err)
	}

	res.FromModel(attendance)
	res.WithActivities(activities)

	return res, nil
}

func (s *serviceImpl) History(ctx context.Context, studentID string, params gDto.QueryParams) (res dto.GetAttendancesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".History")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.requireStudent(ctx, studentID); err != nil {
		return res, err
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStudentID,
				Operator: gDto.FilterOperatorEq,
				Value:    studentID,
				Table:    model.TableName,
			},
		},
	}

	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheHistory, studentID), params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for attendance history")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count attendances")

		return res, fmt.Errorf("failed to count attendances: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get attendance history")

		return res, fmt.Errorf("failed to get attendance history: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save attendance history to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Stats(ctx context.Context, studentID string, start, end time.Time) (res dto.StatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stats")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.requireStudent(ctx, studentID); err != nil {
		return res, err
	}

	if !start.Before(end) {
		return res, failure.BadRequestFromString("period start must be before period end")
	}

	stats, err := s.repo.GetStats(ctx, studentID, start, end)
	if err != nil {
		log.Error().Err(err).Msg("failed to get attendance stats")

		return res, fmt.Errorf("failed to get attendance stats: %w", err)
	}

	res.FromStats(studentID, start, end, stats)

	return res, nil
}

func (s *serviceImpl) requireStudent(ctx context.Context, studentID string) error {
	exists, err := s.studentRepo.Exist(ctx, shared.FilterByID(studentID, studentModel.FieldID, studentModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if student exists")

		return fmt.Errorf("failed to check if student exists: %w", err)
	}

	if !exists {
		return failure.NotFound("student not found")
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, studentID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheHistory, studentID))
		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheStatsAttendance, studentID))
	}()
}

func studentDateFilter(studentID string, date time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStudentID,
				Operator: gDto.FilterOperatorEq,
				Value:    studentID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldDate,
				Operator: gDto.FilterOperatorEq,
				Value:    date,
				Table:    model.TableName,
			},
		},
	}
}
