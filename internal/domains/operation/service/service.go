package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"seatwise/config"
	"seatwise/infras/otel"
	"seatwise/internal/domains/operation/model"
	"seatwise/internal/domains/operation/model/dto"
	"seatwise/internal/domains/operation/repository"
	seatModel "seatwise/internal/domains/seat/model"
	seatRepo "seatwise/internal/domains/seat/repository"
	"seatwise/shared"
	"seatwise/shared/cache"
	"seatwise/shared/constant"
	gDto "seatwise/shared/dto"
	"seatwise/shared/failure"
	"seatwise/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetOperation    = "operation:get"
	cacheGetAllOperation = "operation:gets"
	cacheCountOperation  = "operation:count"
)

type Operation interface {
	Create(ctx context.Context, req dto.CreateOperationRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetOperationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.OperationResponse, error)
	Update(ctx context.Context, req dto.UpdateOperationRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Operation
	seatRepo seatRepo.Seat
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Operation, seatRepo seatRepo.Seat, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Operation {
	return &serviceImpl{
		repo:     repo,
		seatRepo: seatRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateOperationRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	operation, err := req.ToModel(user)
	if err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("invalid time format: %v", err))
	}

	if operation.EndTime != nil && !operation.StartTime.Before(*operation.EndTime) {
		return failure.BadRequestFromString("start_time must be before end_time")
	}

	if req.SeatID != nil {
		exists, err := s.seatRepo.Exist(ctx, shared.FilterByID(*req.SeatID, seatModel.FieldID, seatModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if seat exists")

			return fmt.Errorf("failed to check if seat exists: %w", err)
		}

		if !exists {
			return failure.NotFound("seat not found")
		}
	}

	if err = s.repo.Insert(ctx, operation); err != nil {
		log.Error().Err(err).Msg("failed to create operation")

		return fmt.Errorf("failed to create operation: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllOperation)
		shared.InvalidateCaches(c, s.cache, cacheCountOperation)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetOperationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllOperation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for operations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count operations")

		return res, fmt.Errorf("failed to count operations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get operations")

		return res, fmt.Errorf("failed to get operations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save operations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountOperation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for operation count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count operations")

		return res, fmt.Errorf("failed to count operations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save operation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.OperationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetOperation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for operation")

		return res, nil
	}

	operation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get operation")

		return res, fmt.Errorf("failed to get operation: %w", err)
	}

	if operation.ID == constant.Empty {
		return res, failure.NotFound("operation not found")
	}

	res.FromModel(operation)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save operation to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateOperationRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	operation, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get operation")

		return fmt.Errorf("failed to get operation: %w", err)
	}

	if operation.ID == constant.Empty {
		return failure.NotFound("operation not found")
	}

	completing := req.Status == model.StatusCompleted && operation.Status != model.StatusCompleted
	updatedFields := shared.TransformFields(req, user)

	// Completing an operation closes its interval when still open.
	if completing && operation.EndTime == nil {
		now := timezone.Now()
		updatedFields[model.FieldEndTime] = now
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update operation")

		return fmt.Errorf("failed to update operation: %w", err)
	}

	if completing && operation.Type == model.TypeMaintenance && operation.SeatID != nil {
		if err := s.stampSeatMaintenance(ctx, *operation.SeatID, user); err != nil {
			return err
		}
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if operation exists")

		return fmt.Errorf("failed to check if operation exists: %w", err)
	}

	if !exist {
		return failure.NotFound("operation not found")
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete operation")

		return fmt.Errorf("failed to delete operation: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// stampSeatMaintenance records the completion time of a maintenance
// operation on the seat it targeted.
func (s *serviceImpl) stampSeatMaintenance(ctx context.Context, seatID, user string) error {
	fields := map[string]any{
		seatModel.FieldLastMaintenance: timezone.Now(),
		constant.FieldModifiedAt:       timezone.Now(),
		constant.FieldModifiedBy:       user,
	}

	if err := s.seatRepo.Update(ctx, fields, shared.FilterByID(seatID, seatModel.FieldID, seatModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to stamp seat last maintenance")

		return fmt.Errorf("failed to stamp seat last maintenance: %w", err)
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetOperation, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete operation from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllOperation)
		shared.InvalidateCaches(c, s.cache, cacheCountOperation)
	}()
}
