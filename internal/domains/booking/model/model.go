package model

import (
	"slices"
	"time"

	"seatwise/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldUserID        = "user_id"
	FieldSeatID        = "seat_id"
	FieldStartTime     = "start_time"
	FieldEndTime       = "end_time"
	FieldStatus        = "status"
	FieldBookingType   = "booking_type"
	FieldPriceAmount   = "price_amount"
	FieldPriceCurrency = "price_currency"
	FieldPaymentStatus = "payment_status"
	FieldCheckinAt     = "checkin_at"
	FieldCheckoutAt    = "checkout_at"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"

	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"

	TypeHourly  = "hourly"
	TypeDaily   = "daily"
	TypeWeekly  = "weekly"
	TypeMonthly = "monthly"
)

// transitions is the closed state table: pending and confirmed are the only
// states with outgoing edges; completed and cancelled are terminal.
var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether moving a booking from one status to another
// is a legal lifecycle step.
func CanTransition(from, to string) bool {
	return slices.Contains(transitions[from], to)
}

// Cancellable reports whether a booking in the given status may be cancelled.
func Cancellable(status string) bool {
	return CanTransition(status, StatusCancelled)
}

type Booking struct {
	ID            string     `db:"id"`
	UserID        string     `db:"user_id"`
	SeatID        string     `db:"seat_id"`
	StartTime     time.Time  `db:"start_time"`
	EndTime       time.Time  `db:"end_time"`
	Status        string     `db:"status"`
	BookingType   string     `db:"booking_type"`
	PriceAmount   float64    `db:"price_amount"`
	PriceCurrency string     `db:"price_currency"`
	PaymentStatus string     `db:"payment_status"`
	CheckinAt     *time.Time `db:"checkin_at"`
	CheckoutAt    *time.Time `db:"checkout_at"`
	model.Metadata
}
