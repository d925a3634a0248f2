package dto

import (
	"time"

	"seatwise/internal/domains/booking/model"
	"seatwise/shared"
	"seatwise/shared/constant"
	gDto "seatwise/shared/dto"
	gModel "seatwise/shared/model"
	"seatwise/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	SeatID      string  `json:"seat_id"        validate:"required,uuid4"`
	StartTime   string  `json:"start_time"     validate:"required"`
	EndTime     string  `json:"end_time"       validate:"required"`
	BookingType string  `json:"booking_type"   validate:"omitempty,oneof=hourly daily weekly monthly"`
	Amount      float64 `json:"amount"         validate:"omitempty,min=0"`
	Currency    string  `json:"currency"       validate:"omitempty,len=3"`
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	startTime, err := time.Parse(constant.DateFormat, c.StartTime)
	if err != nil {
		return model.Booking{}, err
	}

	endTime, err := time.Parse(constant.DateFormat, c.EndTime)
	if err != nil {
		return model.Booking{}, err
	}

	bookingType := model.TypeHourly
	if c.BookingType != "" {
		bookingType = c.BookingType
	}

	currency := "USD"
	if c.Currency != "" {
		currency = c.Currency
	}

	return model.Booking{
		ID:            uuid.NewString(),
		UserID:        user,
		SeatID:        c.SeatID,
		StartTime:     startTime,
		EndTime:       endTime,
		Status:        model.StatusPending,
		BookingType:   bookingType,
		PriceAmount:   c.Amount,
		PriceCurrency: currency,
		PaymentStatus: model.PaymentPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

type BookingResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	SeatID        string  `json:"seat_id"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	Status        string  `json:"status"`
	BookingType   string  `json:"booking_type"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	PaymentStatus string  `json:"payment_status"`
	CheckinAt     string  `json:"checkin_at,omitempty"`
	CheckoutAt    string  `json:"checkout_at,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.SeatID = model.SeatID
	r.StartTime = timezone.Format(model.StartTime, constant.DateFormat)
	r.EndTime = timezone.Format(model.EndTime, constant.DateFormat)
	r.Status = model.Status
	r.BookingType = model.BookingType
	r.Amount = model.PriceAmount
	r.Currency = model.PriceCurrency
	r.PaymentStatus = model.PaymentStatus

	if model.CheckinAt != nil {
		r.CheckinAt = timezone.Format(*model.CheckinAt, constant.DateFormat)
	}

	if model.CheckoutAt != nil {
		r.CheckoutAt = timezone.Format(*model.CheckoutAt, constant.DateFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, m := range models {
		r.Bookings[i].FromModel(m)
	}
}

// BookingEvent is the payload published to the booking lifecycle topic.
type BookingEvent struct {
	BookingID  string `json:"booking_id"`
	SeatID     string `json:"seat_id"`
	UserID     string `json:"user_id"`
	Status     string `json:"status"`
	OccurredAt string `json:"occurred_at"`
}

func NewBookingEvent(booking model.Booking, status string) BookingEvent {
	return BookingEvent{
		BookingID:  booking.ID,
		SeatID:     booking.SeatID,
		UserID:     booking.UserID,
		Status:     status,
		OccurredAt: timezone.Format(timezone.Now(), constant.DateFormat),
	}
}
