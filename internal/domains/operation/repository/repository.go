package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"seatwise/infras/otel"
	"seatwise/infras/postgres"
	"seatwise/internal/domains/operation/model"
	"seatwise/shared/constant"
	gDto "seatwise/shared/dto"
	"seatwise/shared/logger"
	gRepo "seatwise/shared/repository"
)

type TypeStatusCount struct {
	Type   string `db:"type"`
	Status string `db:"status"`
	Count  int    `db:"count"`
}

type AssigneeCompletion struct {
	AssignedTo string `db:"assigned_to"`
	Total      int    `db:"total"`
	Completed  int    `db:"completed"`
}

type Operation interface {
	Insert(ctx context.Context, model model.Operation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Operation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Operation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	CountsByTypeStatus(ctx context.Context, start, end time.Time) ([]TypeStatusCount, error)
	CompletionByAssignee(ctx context.Context, start, end time.Time) ([]AssigneeCompletion, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Operation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Operation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Operation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const countsByTypeStatusQuery = `SELECT type, status, COUNT(id) AS count
	FROM operations
	WHERE start_time >= $1 AND start_time < $2
	GROUP BY type, status
	ORDER BY type, status`

func (repo *repositoryImpl) CountsByTypeStatus(ctx context.Context, start, end time.Time) (res []TypeStatusCount, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".operation.CountsByTypeStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, countsByTypeStatusQuery)

	err = repo.db.Read.SelectContext(ctx, &res, countsByTypeStatusQuery, start, end)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to count operations by type and status: %w", err)
	}

	return res, nil
}

const completionByAssigneeQuery = `SELECT assigned_to,
		COUNT(id) AS total,
		COUNT(id) FILTER (WHERE status = $1) AS completed
	FROM operations
	WHERE assigned_to IS NOT NULL
	AND start_time >= $2 AND start_time < $3
	GROUP BY assigned_to
	ORDER BY assigned_to`

func (repo *repositoryImpl) CompletionByAssignee(ctx context.Context, start, end time.Time) (res []AssigneeCompletion, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".operation.CompletionByAssignee")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, completionByAssigneeQuery)

	err = repo.db.Read.SelectContext(ctx, &res, completionByAssigneeQuery, model.StatusCompleted, start, end)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get completion by assignee: %w", err)
	}

	return res, nil
}
