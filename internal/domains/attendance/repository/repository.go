package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"seatwise/infras/otel"
	"seatwise/infras/postgres"
	"seatwise/internal/domains/attendance/model"
	"seatwise/shared/constant"
	gDto "seatwise/shared/dto"
	"seatwise/shared/logger"
	gRepo "seatwise/shared/repository"
)

type Stats struct {
	TotalDays   int `db:"total_days"`
	PresentDays int `db:"present_days"`
	AbsentDays  int `db:"absent_days"`
	LateDays    int `db:"late_days"`
}

type Attendance interface {
	Insert(ctx context.Context, model model.Attendance) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Attendance, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Attendance, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	InsertActivity(ctx context.Context, activity model.Activity) error
	GetActivities(ctx context.Context, attendanceID string) ([]model.Activity, error)
	GetStats(ctx context.Context, studentID string, start, end time.Time) (Stats, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Attendance]
	activities gRepo.Repository[model.Activity]
	db         *postgres.Connection
	otel       otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Attendance {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Attendance](model.EntityName, model.TableName, model.FieldID, db, otel),
		activities: gRepo.NewRepository[model.Activity](model.ActivityEntityName, model.ActivityTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) InsertActivity(ctx context.Context, activity model.Activity) error {
	return repo.activities.Insert(ctx, activity)
}

func (repo *repositoryImpl) GetActivities(ctx context.Context, attendanceID string) ([]model.Activity, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldAttendanceID,
				Operator: gDto.FilterOperatorEq,
				Value:    attendanceID,
				Table:    model.ActivityTableName,
			},
		},
	}

	params := gDto.QueryParams{
		SortBy:  model.FieldTimestamp,
		SortDir: gDto.SortDirAsc,
	}

	return repo.activities.GetAll(ctx, params, filter)
}

const statsQuery = `SELECT COUNT(id) AS total_days,
		COUNT(id) FILTER (WHERE status = $1) AS present_days,
		COUNT(id) FILTER (WHERE status = $2) AS absent_days,
		COUNT(id) FILTER (WHERE status = $3) AS late_days
	FROM attendances
	WHERE student_id = $4 AND date >= $5 AND date < $6`

// GetStats aggregates a student's attendance over the half-open period
// [start, end).
func (repo *repositoryImpl) GetStats(ctx context.Context, studentID string, start, end time.Time) (stats Stats, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".attendance.GetStats")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, statsQuery)

	err = repo.db.Read.GetContext(ctx, &stats, statsQuery,
		model.StatusPresent, model.StatusAbsent, model.StatusLate, studentID, start, end)
	if errors.Is(err, sql.ErrNoRows) {
		return Stats{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return Stats{}, fmt.Errorf("failed to get attendance stats: %w", err)
	}

	return stats, nil
}
