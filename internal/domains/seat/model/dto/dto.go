package dto

import (
	"time"

	"seatwise/internal/domains/seat/model"
	"seatwise/shared"
	"seatwise/shared/constant"
	gDto "seatwise/shared/dto"
	gModel "seatwise/shared/model"
	"seatwise/shared/timezone"

	"github.com/google/uuid"
)

type CreateSeatRequest struct {
	SeatNumber string   `json:"seat_number" validate:"required,max=20"`
	Section    string   `json:"section"     validate:"required,max=50"`
	Floor      int      `json:"floor"       validate:"omitempty,min=0"`
	Type       string   `json:"type"        validate:"omitempty,oneof=standard premium vip"`
	PositionX  int      `json:"position_x"  validate:"omitempty,min=0"`
	PositionY  int      `json:"position_y"  validate:"omitempty,min=0"`
	Features   []string `json:"features"    validate:"omitempty,dive,max=50"`
}

func (c *CreateSeatRequest) ToModel(user string) model.Seat {
	seatType := model.TypeStandard
	if c.Type != "" {
		seatType = c.Type
	}

	return model.Seat{
		ID:         uuid.NewString(),
		SeatNumber: c.SeatNumber,
		Section:    c.Section,
		Floor:      c.Floor,
		Type:       seatType,
		PositionX:  c.PositionX,
		PositionY:  c.PositionY,
		Features:   c.Features,
		Status:     model.StatusAvailable,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateSeatRequest struct {
	SeatNumber string   `db:"seat_number" json:"seat_number" validate:"omitempty,max=20"`
	Section    string   `db:"section"     json:"section"     validate:"omitempty,max=50"`
	Floor      *int     `db:"floor"       json:"floor"       validate:"omitempty,min=0"`
	Type       string   `db:"type"        json:"type"        validate:"omitempty,oneof=standard premium vip"`
	PositionX  *int     `db:"position_x"  json:"position_x"  validate:"omitempty,min=0"`
	PositionY  *int     `db:"position_y"  json:"position_y"  validate:"omitempty,min=0"`
	Features   []string `db:"features"    json:"features"    validate:"omitempty,dive,max=50"`
	Status     string   `db:"status"      json:"status"      validate:"omitempty,oneof=available occupied maintenance reserved"`
}

type SeatResponse struct {
	ID               string   `json:"id"`
	SeatNumber       string   `json:"seat_number"`
	Section          string   `json:"section"`
	Floor            int      `json:"floor"`
	Type             string   `json:"type"`
	PositionX        int      `json:"position_x"`
	PositionY        int      `json:"position_y"`
	Features         []string `json:"features"`
	Status           string   `json:"status"`
	CurrentBookingID *string  `json:"current_booking_id,omitempty"`
	LastMaintenance  string   `json:"last_maintenance,omitempty"`
	gDto.Metadata
}

func (r *SeatResponse) FromModel(model model.Seat) {
	r.ID = model.ID
	r.SeatNumber = model.SeatNumber
	r.Section = model.Section
	r.Floor = model.Floor
	r.Type = model.Type
	r.PositionX = model.PositionX
	r.PositionY = model.PositionY
	r.Features = model.Features
	r.Status = model.Status
	r.CurrentBookingID = model.CurrentBookingID

	if model.LastMaintenance != nil {
		r.LastMaintenance = timezone.Format(*model.LastMaintenance, constant.DateFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetSeatsResponse struct {
	Seats     []SeatResponse `json:"seats"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetSeatsResponse) FromModels(models []model.Seat, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Seats = make([]SeatResponse, len(models))
	for i, m := range models {
		r.Seats[i].FromModel(m)
	}
}

type ConflictingBooking struct {
	ID        string `json:"id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

type AvailabilityResponse struct {
	SeatID             string              `json:"seat_id"`
	StartTime          string              `json:"start_time"`
	EndTime            string              `json:"end_time"`
	Available          bool                `json:"available"`
	ConflictingBooking *ConflictingBooking `json:"conflicting_booking,omitempty"`
}

func (r *AvailabilityResponse) FromConflict(seatID string, start, end time.Time, conflictID, conflictStatus string, conflictStart, conflictEnd time.Time) {
	r.SeatID = seatID
	r.StartTime = timezone.Format(start, constant.DateFormat)
	r.EndTime = timezone.Format(end, constant.DateFormat)
	r.Available = conflictID == constant.Empty

	if conflictID != constant.Empty {
		r.ConflictingBooking = &ConflictingBooking{
			ID:        conflictID,
			StartTime: timezone.Format(conflictStart, constant.DateFormat),
			EndTime:   timezone.Format(conflictEnd, constant.DateFormat),
			Status:    conflictStatus,
		}
	}
}
