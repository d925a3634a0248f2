package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"seatwise/config"
	"seatwise/infras/otel"
	"seatwise/internal/domains/financial/model"
	"seatwise/internal/domains/financial/model/dto"
	"seatwise/internal/domains/financial/repository"
	"seatwise/shared"
	"seatwise/shared/cache"
	"seatwise/shared/constant"
	gDto "seatwise/shared/dto"
	"seatwise/shared/failure"
	"seatwise/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetFinancial    = "financial:get"
	cacheGetAllFinancial = "financial:gets"
	cacheCountFinancial  = "financial:count"
)

type Financial interface {
	Create(ctx context.Context, req dto.CreateFinancialRecordRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetFinancialRecordsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.FinancialRecordResponse, error)
	Update(ctx context.Context, req dto.UpdateFinancialRecordRequest, id string) error
	Delete(ctx context.Context, id string) error
	RevenueSummary(ctx context.Context, start, end time.Time) (dto.RevenueSummaryResponse, error)
}

type serviceImpl struct {
	repo  repository.Financial
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Financial, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Financial {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateFinancialRecordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	referenceFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldReference,
				Operator: gDto.FilterOperatorEq,
				Value:    req.Reference,
				Table:    model.TableName,
			},
		},
	}

	exists, err := s.repo.Exist(ctx, referenceFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if reference exists")

		return fmt.Errorf("failed to check if reference exists: %w", err)
	}

	if exists {
		return failure.BadRequestFromString("reference already exists")
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create financial record")

		return fmt.Errorf("failed to create financial record: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllFinancial)
		shared.InvalidateCaches(c, s.cache, cacheCountFinancial)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetFinancialRecordsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllFinancial, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for financial records")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count financial records")

		return res, fmt.Errorf("failed to count financial records: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get financial records")

		return res, fmt.Errorf("failed to get financial records: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save financial records to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountFinancial, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for financial record count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count financial records")

		return res, fmt.Errorf("failed to count financial records: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save financial record count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.FinancialRecordResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetFinancial, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for financial record")

		return res, nil
	}

	record, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get financial record")

		return res, fmt.Errorf("failed to get financial record: %w", err)
	}

	if record.ID == constant.Empty {
		return res, failure.NotFound("financial record not found")
	}

	res.FromModel(record)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save financial record to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateFinancialRecordRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	record, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get financial record")

		return fmt.Errorf("failed to get financial record: %w", err)
	}

	if record.ID == constant.Empty {
		return failure.NotFound("financial record not found")
	}

	// Completed and refunded records are immutable audit entries.
	if record.Status == model.StatusCompleted || record.Status == model.StatusRefunded {
		return failure.BadRequestFromString("cannot update a settled financial record")
	}

	if err := s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update financial record")

		return fmt.Errorf("failed to update financial record: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	record, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get financial record")

		return fmt.Errorf("failed to get financial record: %w", err)
	}

	if record.ID == constant.Empty {
		return failure.NotFound("financial record not found")
	}

	if record.Status == model.StatusCompleted {
		return failure.BadRequestFromString("cannot delete a completed financial record")
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete financial record")

		return fmt.Errorf("failed to delete financial record: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// RevenueSummary aggregates completed payments into daily buckets over the
// half-open period [start, end).
func (s *serviceImpl) RevenueSummary(ctx context.Context, start, end time.Time) (res dto.RevenueSummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RevenueSummary")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !start.Before(end) {
		return res, failure.BadRequestFromString("period start must be before period end")
	}

	days, err := s.repo.SumRevenueByDay(ctx, start, end)
	if err != nil {
		log.Error().Err(err).Msg("failed to get revenue summary")

		return res, fmt.Errorf("failed to get revenue summary: %w", err)
	}

	res.PeriodStart = timezone.Format(start, constant.DateOnlyFormat)
	res.PeriodEnd = timezone.Format(end, constant.DateOnlyFormat)
	res.Days = make([]dto.DailyRevenue, len(days))

	for i, d := range days {
		res.Days[i] = dto.DailyRevenue{
			Day:     timezone.Format(d.Day, constant.DateOnlyFormat),
			Revenue: d.Revenue,
			Count:   d.Count,
		}
		res.TotalRevenue += d.Revenue
	}

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetFinancial, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete financial record from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllFinancial)
		shared.InvalidateCaches(c, s.cache, cacheCountFinancial)
	}()
}
