package model

import (
	"time"

	"seatwise/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "seats"
	EntityName = "seat"

	FieldID               = "id"
	FieldSeatNumber       = "seat_number"
	FieldSection          = "section"
	FieldFloor            = "floor"
	FieldType             = "type"
	FieldPositionX        = "position_x"
	FieldPositionY        = "position_y"
	FieldFeatures         = "features"
	FieldStatus           = "status"
	FieldCurrentBookingID = "current_booking_id"
	FieldLastMaintenance  = "last_maintenance"
)

const (
	TypeStandard = "standard"
	TypePremium  = "premium"
	TypeVIP      = "vip"

	StatusAvailable   = "available"
	StatusOccupied    = "occupied"
	StatusMaintenance = "maintenance"
	StatusReserved    = "reserved"
)

type Seat struct {
	ID               string         `db:"id"`
	SeatNumber       string         `db:"seat_number"`
	Section          string         `db:"section"`
	Floor            int            `db:"floor"`
	Type             string         `db:"type"`
	PositionX        int            `db:"position_x"`
	PositionY        int            `db:"position_y"`
	Features         pq.StringArray `db:"features"`
	Status           string         `db:"status"`
	CurrentBookingID *string        `db:"current_booking_id"`
	LastMaintenance  *time.Time     `db:"last_maintenance"`
	model.Metadata
}
