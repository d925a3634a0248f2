package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatwise/infras/otel/mocks"
	"seatwise/infras/postgres"
	"seatwise/internal/domains/booking/model"
	"seatwise/internal/domains/booking/repository"
	seatModel "seatwise/internal/domains/seat/model"
	"seatwise/shared/constant"
	gModel "seatwise/shared/model"
	"seatwise/shared/timezone"
)

func newBookingRepository(t *testing.T) (repository.Booking, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	conn := &postgres.Connection{
		Read:  sqlx.NewDb(db, "postgres"),
		Write: sqlx.NewDb(db, "postgres"),
	}

	return repository.New(conn, mocks.NewOtel()), mock
}

func reservation() model.Booking {
	now := timezone.Now()

	return model.Booking{
		ID:            "booking-id",
		UserID:        "user-id",
		SeatID:        "seat-id",
		StartTime:     now,
		EndTime:       now.Add(2 * time.Hour),
		Status:        model.StatusPending,
		BookingType:   model.TypeHourly,
		PriceCurrency: "USD",
		PaymentStatus: model.PaymentPending,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "user-id",
			ModifiedBy: "user-id",
		},
	}
}

func TestBookingRepository_Reserve(t *testing.T) {
	t.Run("successful reservation", func(t *testing.T) {
		repo, mock := newBookingRepository(t)
		booking := reservation()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM seats`).
			WithArgs(booking.SeatID).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(seatModel.StatusAvailable))
		mock.ExpectQuery(`SELECT id FROM bookings`).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectExec(`INSERT INTO bookings`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE seats`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Reserve(context.Background(), booking)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("seat does not exist", func(t *testing.T) {
		repo, mock := newBookingRepository(t)
		booking := reservation()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM seats`).
			WithArgs(booking.SeatID).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		err := repo.Reserve(context.Background(), booking)

		assert.ErrorIs(t, err, repository.ErrSeatUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("seat is not available", func(t *testing.T) {
		repo, mock := newBookingRepository(t)
		booking := reservation()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM seats`).
			WithArgs(booking.SeatID).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(seatModel.StatusMaintenance))
		mock.ExpectRollback()

		err := repo.Reserve(context.Background(), booking)

		assert.ErrorIs(t, err, repository.ErrSeatUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("overlapping booking", func(t *testing.T) {
		repo, mock := newBookingRepository(t)
		booking := reservation()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM seats`).
			WithArgs(booking.SeatID).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(seatModel.StatusAvailable))
		mock.ExpectQuery(`SELECT id FROM bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("other-booking"))
		mock.ExpectRollback()

		err := repo.Reserve(context.Background(), booking)

		assert.ErrorIs(t, err, repository.ErrBookingConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("seat grabbed by concurrent reservation", func(t *testing.T) {
		repo, mock := newBookingRepository(t)
		booking := reservation()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM seats`).
			WithArgs(booking.SeatID).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(seatModel.StatusAvailable))
		mock.ExpectQuery(`SELECT id FROM bookings`).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectExec(`INSERT INTO bookings`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE seats`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Reserve(context.Background(), booking)

		assert.ErrorIs(t, err, repository.ErrSeatUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin error", func(t *testing.T) {
		repo, mock := newBookingRepository(t)

		mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

		err := repo.Reserve(context.Background(), reservation())

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// The overlap checks compare with strict inequalities so that a booking
// ending exactly when another starts is not a conflict. The expectations
// below match the full query text, so loosening either comparison to <= or
// >= fails them.
func TestBookingRepository_ConflictWindowIsHalfOpen(t *testing.T) {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	t.Run("reserve overlap check", func(t *testing.T) {
		repo, mock := newBookingRepository(t)
		booking := reservation()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM seats`).
			WithArgs(booking.SeatID).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(seatModel.StatusAvailable))
		mock.ExpectQuery(`^SELECT id FROM bookings WHERE seat_id = \$1 AND status IN \(\$2, \$3\) AND start_time < \$5 AND end_time > \$4 LIMIT 1$`).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectExec(`INSERT INTO bookings`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE seats`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Reserve(context.Background(), booking)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("availability overlap check", func(t *testing.T) {
		repo, mock := newBookingRepository(t)

		mock.ExpectQuery(`^SELECT \* FROM bookings WHERE seat_id = \$1 AND status IN \(\$2, \$3\) AND start_time < \$5 AND end_time > \$4 ORDER BY start_time LIMIT 1$`).
			WithArgs("seat-id", model.StatusPending, model.StatusConfirmed, start, end).
			WillReturnError(sql.ErrNoRows)

		conflict, err := repo.FindConflict(context.Background(), "seat-id", start, end)

		assert.NoError(t, err)
		assert.Empty(t, conflict.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_FindConflict(t *testing.T) {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	t.Run("conflict found", func(t *testing.T) {
		repo, mock := newBookingRepository(t)

		mock.ExpectQuery(`SELECT \* FROM bookings`).
			WithArgs("seat-id", model.StatusPending, model.StatusConfirmed, start, end).
			WillReturnRows(sqlmock.NewRows([]string{"id", "seat_id", "status"}).
				AddRow("other-booking", "seat-id", model.StatusConfirmed))

		conflict, err := repo.FindConflict(context.Background(), "seat-id", start, end)

		assert.NoError(t, err)
		assert.Equal(t, "other-booking", conflict.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no conflict", func(t *testing.T) {
		repo, mock := newBookingRepository(t)

		mock.ExpectQuery(`SELECT \* FROM bookings`).
			WillReturnError(sql.ErrNoRows)

		conflict, err := repo.FindConflict(context.Background(), "seat-id", start, end)

		assert.NoError(t, err)
		assert.Empty(t, conflict.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newBookingRepository(t)

		mock.ExpectQuery(`SELECT \* FROM bookings`).
			WillReturnError(errors.New("query error"))

		_, err := repo.FindConflict(context.Background(), "seat-id", start, end)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_Release(t *testing.T) {
	fields := map[string]any{
		model.FieldStatus:        model.StatusCancelled,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: "user-id",
	}

	t.Run("release with current booking guard", func(t *testing.T) {
		repo, mock := newBookingRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE bookings`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE seats`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Release(context.Background(), "booking-id", "seat-id", fields, true)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("seat release error rolls back", func(t *testing.T) {
		repo, mock := newBookingRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE bookings`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE seats`).
			WillReturnError(errors.New("exec error"))
		mock.ExpectRollback()

		err := repo.Release(context.Background(), "booking-id", "seat-id", fields, false)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
