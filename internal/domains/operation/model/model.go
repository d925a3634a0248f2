package model

import (
	"time"

	"seatwise/shared/model"
)

const (
	TableName  = "operations"
	EntityName = "operation"

	FieldID         = "id"
	FieldType       = "type"
	FieldStatus     = "status"
	FieldPriority   = "priority"
	FieldAssignedTo = "assigned_to"
	FieldSeatID     = "seat_id"
	FieldStartTime  = "start_time"
	FieldEndTime    = "end_time"
	FieldLocation   = "location"
	FieldNotes      = "notes"
)

const (
	TypeShift       = "shift"
	TypeMaintenance = "maintenance"
	TypeAlert       = "alert"
	TypeLog         = "log"

	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"

	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

type Operation struct {
	ID         string     `db:"id"`
	Type       string     `db:"type"`
	Status     string     `db:"status"`
	Priority   string     `db:"priority"`
	AssignedTo *string    `db:"assigned_to"`
	SeatID     *string    `db:"seat_id"`
	StartTime  time.Time  `db:"start_time"`
	EndTime    *time.Time `db:"end_time"`
	Location   *string    `db:"location"`
	Notes      *string    `db:"notes"`
	model.Metadata
}

// DurationMinutes derives the elapsed minutes between start and end, or zero
// while the operation is still open.
func (o Operation) DurationMinutes() int {
	if o.EndTime == nil {
		return 0
	}

	return int(o.EndTime.Sub(o.StartTime).Minutes())
}
