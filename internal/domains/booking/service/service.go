package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"seatwise/config"
	"seatwise/infras/kafka"
	"seatwise/infras/otel"
	"seatwise/internal/domains/booking/model"
	"seatwise/internal/domains/booking/model/dto"
	"seatwise/internal/domains/booking/repository"
	financialModel "seatwise/internal/domains/financial/model"
	financialRepo "seatwise/internal/domains/financial/repository"
	seatModel "seatwise/internal/domains/seat/model"
	seatRepo "seatwise/internal/domains/seat/repository"
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
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

// privilegedRoles may manage bookings they do not own.
var privilegedRoles = []string{constant.RoleStaff, constant.RoleAdmin, constant.RoleSuperAdmin}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetMyBookings(ctx context.Context, userID string, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) error
	Cancel(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo          repository.Booking
	seatRepo      seatRepo.Seat
	financialRepo financialRepo.Financial
	cfg           *config.Config
	cache         cache.RedisCache
	otel          otel.Otel
	kafkaClient   kafka.Client
}

func New(repo repository.Booking, seatRepo seatRepo.Seat, financialRepo financialRepo.Financial, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, kafkaClient kafka.Client) Booking {
	return &serviceImpl{
		repo:          repo,
		seatRepo:      seatRepo,
		financialRepo: financialRepo,
		cfg:           cfg,
		cache:         cache,
		otel:          otel,
		kafkaClient:   kafkaClient,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	seatExists, err := s.seatRepo.Exist(ctx, shared.FilterByID(req.SeatID, seatModel.FieldID, seatModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if seat exists")

		return res, fmt.Errorf("failed to check if seat exists: %w", err)
	}

	if !seatExists {
		return res, failure.NotFound("seat not found")
	}

	booking, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err))
	}

	if !booking.StartTime.Before(booking.EndTime) {
		return res, failure.BadRequestFromString("start_time must be before end_time")
	}

	if err = s.repo.Reserve(ctx, booking); err != nil {
		switch {
		case errors.Is(err, repository.ErrSeatUnavailable):
			return res, failure.Conflict("seat is not available")
		case errors.Is(err, repository.ErrBookingConflict):
			return res, failure.Conflict("seat already booked for the requested time")
		default:
			log.Error().Err(err).Msg("failed to reserve booking")

			return res, fmt.Errorf("failed to reserve booking: %w", err)
		}
	}

	s.afterLifecycleChange(ctx, booking, model.StatusPending)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found")
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetMyBookings(ctx context.Context, userID string, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMyBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
		},
	}

	return s.GetAll(ctx, req, filter)
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.authorizedBooking(ctx, id)
	if err != nil {
		return err
	}

	if !model.CanTransition(booking.Status, req.Status) {
		return failure.BadRequestFromString(fmt.Sprintf("cannot transition booking from %s to %s", booking.Status, req.Status))
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	switch req.Status {
	case model.StatusConfirmed:
		err = s.confirm(ctx, booking, user)
	case model.StatusCancelled:
		err = s.release(ctx, booking, user, model.StatusCancelled)
	case model.StatusCompleted:
		err = s.release(ctx, booking, user, model.StatusCompleted)
	default:
		return failure.BadRequestFromString(fmt.Sprintf("unsupported target status: %s", req.Status))
	}

	if err != nil {
		return err
	}

	s.afterLifecycleChange(ctx, booking, req.Status)

	return nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.UpdateStatus(ctx, dto.UpdateBookingStatusRequest{Status: model.StatusCancelled}, id)
}

// authorizedBooking loads the booking and enforces the owner-or-staff rule.
func (s *serviceImpl) authorizedBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found")
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if booking.UserID != userID && !slices.Contains(privilegedRoles, role) {
		return booking, failure.Forbidden("not allowed to manage this booking")
	}

	return booking, nil
}

// confirm moves the booking to confirmed, marks it paid, and records the
// payment as a completed financial record.
func (s *serviceImpl) confirm(ctx context.Context, booking model.Booking, user string) error {
	fields := map[string]any{
		model.FieldStatus:        model.StatusConfirmed,
		model.FieldPaymentStatus: model.PaymentPaid,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, fields, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to confirm booking")

		return fmt.Errorf("failed to confirm booking: %w", err)
	}

	description := fmt.Sprintf("booking payment for seat %s", booking.SeatID)
	record := financialModel.FinancialRecord{
		ID:          uuid.NewString(),
		Type:        financialModel.TypePayment,
		Amount:      booking.PriceAmount,
		Currency:    booking.PriceCurrency,
		Status:      financialModel.StatusCompleted,
		Reference:   fmt.Sprintf("BOOKING-%s", booking.ID),
		Description: &description,
		BookingID:   &booking.ID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if err := s.financialRepo.Insert(ctx, record); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to record booking payment")

		return fmt.Errorf("failed to record booking payment: %w", err)
	}

	return nil
}

// release ends the booking and returns its seat. Cancellation touches the
// seat only while it still points at this booking; completion releases it
// unconditionally and stamps the checkout time.
func (s *serviceImpl) release(ctx context.Context, booking model.Booking, user, status string) error {
	fields := map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	onlyIfCurrent := status == model.StatusCancelled

	if status == model.StatusCompleted {
		fields[model.FieldCheckoutAt] = timezone.Now()
	}

	if err := s.repo.Release(ctx, booking.ID, booking.SeatID, fields, onlyIfCurrent); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to release booking")

		return fmt.Errorf("failed to release booking: %w", err)
	}

	return nil
}

// afterLifecycleChange invalidates caches and publishes the lifecycle event.
func (s *serviceImpl) afterLifecycleChange(ctx context.Context, booking model.Booking, status string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, booking.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)

		if !s.cfg.Kafka.Enable {
			return
		}

		event := dto.NewBookingEvent(booking, status)
		message := kafka.Message{Key: booking.ID, Value: event}

		if err := s.kafkaClient.SendMessages(c, s.cfg.Kafka.BookingTopic, message); err != nil {
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to publish booking event")
		}
	}()
}
