package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"seatwise/config"
	"seatwise/infras/otel"
	bookingRepo "seatwise/internal/domains/booking/repository"
	"seatwise/internal/domains/seat/model"
	"seatwise/internal/domains/seat/model/dto"
	"seatwise/internal/domains/seat/repository"
	"seatwise/shared"
	"seatwise/shared/cache"
	"seatwise/shared/constant"
	gDto "seatwise/shared/dto"
	"seatwise/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetSeat    = "seat:get"
	cacheGetAllSeat = "seat:gets"
	cacheCountSeat  = "seat:count"
)

type Seat interface {
	Create(ctx context.Context, req dto.CreateSeatRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSeatsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.SeatResponse, error)
	Update(ctx context.Context, req dto.UpdateSeatRequest, id string) error
	Delete(ctx context.Context, id string) error
	Availability(ctx context.Context, id string, startTime, endTime time.Time) (dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	repo        repository.Seat
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Seat, bookingRepo bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Seat {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateSeatRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	identityFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldSeatNumber,
				Operator: gDto.FilterOperatorEq,
				Value:    req.SeatNumber,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldSection,
				Operator: gDto.FilterOperatorEq,
				Value:    req.Section,
				Table:    model.TableName,
			},
		},
	}

	exists, err := s.repo.Exist(ctx, identityFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if seat exists")

		return fmt.Errorf("failed to check if seat exists: %w", err)
	}

	if exists {
		return failure.BadRequestFromString("seat number already exists in this section")
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create seat")

		return fmt.Errorf("failed to create seat: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllSeat)
		shared.InvalidateCaches(c, s.cache, cacheCountSeat)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSeatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllSeat, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for seats")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count seats")

		return res, fmt.Errorf("failed to count seats: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get seats")

		return res, fmt.Errorf("failed to get seats: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save seats to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountSeat, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for seat count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count seats")

		return res, fmt.Errorf("failed to count seats: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save seat count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.SeatResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetSeat, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for seat")

		return res, nil
	}

	seat, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get seat")

		return res, fmt.Errorf("failed to get seat: %w", err)
	}

	if seat.ID == constant.Empty {
		return res, failure.NotFound("seat not found")
	}

	res.FromModel(seat)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save seat to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateSeatRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if seat exists")

		return fmt.Errorf("failed to check if seat exists: %w", err)
	}

	if !exist {
		return failure.NotFound("seat not found")
	}

	updatedFields := shared.TransformFields(req, user)

	// Returning a seat to available always clears the stale booking pointer.
	if req.Status == model.StatusAvailable {
		updatedFields[model.FieldCurrentBookingID] = nil
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update seat")

		return fmt.Errorf("failed to update seat: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetSeat, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete seat from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllSeat)
		shared.InvalidateCaches(c, s.cache, cacheCountSeat)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	seat, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get seat")

		return fmt.Errorf("failed to get seat: %w", err)
	}

	if seat.ID == constant.Empty {
		return failure.NotFound("seat not found")
	}

	if seat.CurrentBookingID != nil {
		return failure.BadRequestFromString("cannot delete a seat with an active booking")
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete seat")

		return fmt.Errorf("failed to delete seat: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetSeat, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete seat from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllSeat)
		shared.InvalidateCaches(c, s.cache, cacheCountSeat)
	}()

	return nil
}

// Availability runs the read-only overlap check for a seat and interval.
func (s *serviceImpl) Availability(ctx context.Context, id string, startTime, endTime time.Time) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if seat exists")

		return res, fmt.Errorf("failed to check if seat exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("seat not found")
	}

	if !startTime.Before(endTime) {
		return res, failure.BadRequestFromString("start_time must be before end_time")
	}

	conflict, err := s.bookingRepo.FindConflict(ctx, id, startTime, endTime)
	if err != nil {
		log.Error().Err(err).Msg("failed to check seat availability")

		return res, fmt.Errorf("failed to check seat availability: %w", err)
	}

	res.FromConflict(id, startTime, endTime, conflict.ID, conflict.Status, conflict.StartTime, conflict.EndTime)

	return res, nil
}
