package model

import (
	"time"

	"seatwise/shared/model"
)

const (
	TableName  = "attendances"
	EntityName = "attendance"

	FieldID           = "id"
	FieldStudentID    = "student_id"
	FieldDate         = "date"
	FieldStatus       = "status"
	FieldNotes        = "notes"
	FieldCheckInTime  = "check_in_time"
	FieldCheckOutTime = "check_out_time"
)

const (
	ActivityTableName  = "attendance_activities"
	ActivityEntityName = "attendance_activity"

	FieldAttendanceID = "attendance_id"
	FieldType         = "type"
	FieldTimestamp    = "timestamp"
	FieldLocation     = "location"
)

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"

	ActivityCheckIn  = "check-in"
	ActivityCheckOut = "check-out"
)

type Attendance struct {
	ID           string     `db:"id"`
	StudentID    string     `db:"student_id"`
	Date         time.Time  `db:"date"`
	Status       string     `db:"status"`
	Notes        *string    `db:"notes"`
	CheckInTime  *time.Time `db:"check_in_time"`
	CheckOutTime *time.Time `db:"check_out_time"`
	model.Metadata
}

// Activity rows are append-only; they are never updated or deleted.
type Activity struct {
	ID           string    `db:"id"`
	AttendanceID string    `db:"attendance_id"`
	Type         string    `db:"type"`
	Timestamp    time.Time `db:"timestamp"`
	Location     *string   `db:"location"`
	model.Metadata
}
