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
	"seatwise/internal/domains/booking/model"
	seatModel "seatwise/internal/domains/seat/model"
	"seatwise/shared/constant"
	gDto "seatwise/shared/dto"
	"seatwise/shared/logger"
	gRepo "seatwise/shared/repository"
	"seatwise/shared/timezone"

	"github.com/rs/zerolog/log"
)

var (
	// ErrSeatUnavailable reports that the seat is not in the available state
	// at reservation time, including when a concurrent request won the seat.
	ErrSeatUnavailable = errors.New("seat is not available")

	// ErrBookingConflict reports an overlapping pending or confirmed booking
	// on the same seat.
	ErrBookingConflict = errors.New("conflicting booking exists for this seat and time")
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	Reserve(ctx context.Context, booking model.Booking) error
	FindConflict(ctx context.Context, seatID string, startTime, endTime time.Time) (model.Booking, error)
	Release(ctx context.Context, bookingID, seatID string, fields map[string]any, onlyIfCurrent bool) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const (
	lockSeatQuery = `SELECT status FROM seats WHERE id = $1 FOR UPDATE`

	conflictQuery = `SELECT id FROM bookings
		WHERE seat_id = $1
		AND status IN ($2, $3)
		AND start_time < $5
		AND end_time > $4
		LIMIT 1`

	reserveSeatQuery = `UPDATE seats
		SET status = $1, current_booking_id = $2, modified_at = $3, modified_by = $4
		WHERE id = $5 AND status = $6`

	findConflictQuery = `SELECT * FROM bookings
		WHERE seat_id = $1
		AND status IN ($2, $3)
		AND start_time < $5
		AND end_time > $4
		ORDER BY start_time
		LIMIT 1`
)

// Reserve inserts a booking and flips its seat to reserved in one
// transaction. The seat row is locked first so the overlap check and the
// conditional seat update cannot interleave with a concurrent reservation.
func (repo *repositoryImpl) Reserve(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Reserve")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin reservation transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Error().Err(rbErr).Msg("failed to roll back reservation transaction")
			}
		}
	}()

	var seatStatus string

	err = tx.GetContext(ctx, &seatStatus, lockSeatQuery, booking.SeatID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSeatUnavailable
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to lock seat: %w", err)
	}

	if seatStatus != seatModel.StatusAvailable {
		return ErrSeatUnavailable
	}

	var conflictID string

	err = tx.GetContext(ctx, &conflictID, conflictQuery,
		booking.SeatID, model.StatusPending, model.StatusConfirmed, booking.StartTime, booking.EndTime)
	if err == nil {
		return ErrBookingConflict
	}

	if !errors.Is(err, sql.ErrNoRows) {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to check booking conflict: %w", err)
	}

	if err = repo.InsertTx(ctx, tx, booking); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, reserveSeatQuery,
		seatModel.StatusReserved, booking.ID, timezone.Now(), booking.CreatedBy,
		booking.SeatID, seatModel.StatusAvailable)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to reserve seat: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to read reserved rows: %w", err)
	}

	if affected == 0 {
		return ErrSeatUnavailable
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit reservation: %w", err)
	}

	return nil
}

// FindConflict returns the first pending or confirmed booking on the seat
// overlapping the half-open interval [startTime, endTime), if any.
func (repo *repositoryImpl) FindConflict(ctx context.Context, seatID string, startTime, endTime time.Time) (conflict model.Booking, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindConflict")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, findConflictQuery)

	err = repo.db.Read.GetContext(ctx, &conflict, findConflictQuery,
		seatID, model.StatusPending, model.StatusConfirmed, startTime, endTime)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return model.Booking{}, fmt.Errorf("failed to find conflicting booking: %w", err)
	}

	return conflict, nil
}

// Release updates a booking and returns its seat to available in one
// transaction. With onlyIfCurrent the seat is touched only while its
// current_booking_id still points at this booking.
func (repo *repositoryImpl) Release(ctx context.Context, bookingID, seatID string, fields map[string]any, onlyIfCurrent bool) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Release")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin release transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Error().Err(rbErr).Msg("failed to roll back release transaction")
			}
		}
	}()

	bookingFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    bookingID,
				Table:    model.TableName,
			},
		},
	}

	if err = repo.UpdateTx(ctx, tx, fields, bookingFilter); err != nil {
		return err
	}

	modifiedBy, _ := fields[constant.FieldModifiedBy].(string)

	releaseQuery := `UPDATE seats
		SET status = $1, current_booking_id = NULL, modified_at = $2, modified_by = $3
		WHERE id = $4`
	args := []any{seatModel.StatusAvailable, timezone.Now(), modifiedBy, seatID}

	if onlyIfCurrent {
		releaseQuery += ` AND current_booking_id = $5`
		args = append(args, bookingID)
	}

	if _, err = tx.ExecContext(ctx, releaseQuery, args...); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to release seat: %w", err)
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit release: %w", err)
	}

	return nil
}
