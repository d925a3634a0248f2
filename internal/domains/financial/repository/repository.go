package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"seatwise/infras/otel"
	"seatwise/infras/postgres"
	"seatwise/internal/domains/financial/model"
	"seatwise/shared/constant"
	gDto "seatwise/shared/dto"
	"seatwise/shared/logger"
	gRepo "seatwise/shared/repository"
)

type RevenueByDay struct {
	Day     time.Time `db:"day"`
	Revenue float64   `db:"revenue"`
	Count   int       `db:"count"`
}

type Financial interface {
	Insert(ctx context.Context, model model.FinancialRecord) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.FinancialRecord, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.FinancialRecord, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	SumRevenueByDay(ctx context.Context, start, end time.Time) ([]RevenueByDay, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.FinancialRecord]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Financial {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.FinancialRecord](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const sumRevenueByDayQuery = `SELECT date_trunc('day', created_at) AS day,
		COALESCE(SUM(amount), 0) AS revenue,
		COUNT(id) AS count
	FROM financial_records
	WHERE type = $1 AND status = $2
	AND created_at >= $3 AND created_at < $4
	GROUP BY day
	ORDER BY day`

// SumRevenueByDay aggregates completed payments into daily revenue buckets
// over the half-open period [start, end).
func (repo *repositoryImpl) SumRevenueByDay(ctx context.Context, start, end time.Time) (res []RevenueByDay, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".financial_record.SumRevenueByDay")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, sumRevenueByDayQuery)

	err = repo.db.Read.SelectContext(ctx, &res, sumRevenueByDayQuery,
		model.TypePayment, model.StatusCompleted, start, end)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to sum revenue by day: %w", err)
	}

	return res, nil
}
