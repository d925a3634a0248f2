package dto

import (
	"time"

	"seatwise/internal/domains/attendance/model"
	"seatwise/internal/domains/attendance/repository"
	"seatwise/shared"
	"seatwise/shared/constant"
	gDto "seatwise/shared/dto"
	gModel "seatwise/shared/model"
	"seatwise/shared/timezone"

	"github.com/google/uuid"
)

type RecordAttendanceRequest struct {
	StudentID string  `json:"student_id" validate:"required,uuid4"`
	Date      string  `json:"date"       validate:"required,datetime=2006-01-02"`
	Status    string  `json:"status"     validate:"required,oneof=present absent late"`
	Notes     *string `json:"notes"      validate:"omitempty,max=500"`
}

func (c *RecordAttendanceRequest) ToModel(user string) (model.Attendance, error) {
	date, err := time.Parse(constant.DateOnlyFormat, c.Date)
	if err != nil {
		return model.Attendance{}, err
	}

	return model.Attendance{
		ID:        uuid.NewString(),
		StudentID: c.StudentID,
		Date:      date,
		Status:    c.Status,
		Notes:     c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type RecordActivityRequest struct {
	StudentID string  `json:"student_id" validate:"required,uuid4"`
	Type      string  `json:"type"       validate:"required,oneof=check-in check-out"`
	Location  *string `json:"location"   validate:"omitempty,max=100"`
}

type ActivityResponse struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Timestamp string  `json:"timestamp"`
	Location  *string `json:"location,omitempty"`
}

func (r *ActivityResponse) FromModel(model model.Activity) {
	r.ID = model.ID
	r.Type = model.Type
	r.Timestamp = timezone.Format(model.Timestamp, constant.DateFormat)
	r.Location = model.Location
}

type AttendanceResponse struct {
	ID           string             `json:"id"`
	StudentID    string             `json:"student_id"`
	Date         string             `json:"date"`
	Status       string             `json:"status"`
	Notes        *string            `json:"notes,omitempty"`
	CheckInTime  string             `json:"check_in_time,omitempty"`
	CheckOutTime string             `json:"check_out_time,omitempty"`
	Activities   []ActivityResponse `json:"activities,omitempty"`
	gDto.Metadata
}

func (r *AttendanceResponse) FromModel(model model.Attendance) {
	r.ID = model.ID
	r.StudentID = model.StudentID
	r.Date = timezone.Format(model.Date, constant.DateOnlyFormat)
	r.Status = model.Status
	r.Notes = model.Notes

	if model.CheckInTime != nil {
		r.CheckInTime = timezone.Format(*model.CheckInTime, constant.DateFormat)
	}

	if model.CheckOutTime != nil {
		r.CheckOutTime = timezone.Format(*model.CheckOutTime, constant.DateFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

func (r *AttendanceResponse) WithActivities(activities []model.Activity) {
	r.Activities = make([]ActivityResponse, len(activities))
	for i, a := range activities {
		r.Activities[i].FromModel(a)
	}
}

type GetAttendancesResponse struct {
	Attendances []AttendanceResponse `json:"attendances"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetAttendancesResponse) FromModels(models []model.Attendance, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Attendances = make([]AttendanceResponse, len(models))
	for i, m := range models {
		r.Attendances[i].FromModel(m)
	}
}

type StatsResponse struct {
	StudentID      string  `json:"student_id"`
	PeriodStart    string  `json:"period_start"`
	PeriodEnd      string  `json:"period_end"`
	TotalDays      int     `json:"total_days"`
	PresentDays    int     `json:"present_days"`
	AbsentDays     int     `json:"absent_days"`
	LateDays       int     `json:"late_days"`
	AttendanceRate float64 `json:"attendance_rate"`
}

func (r *StatsResponse) FromStats(studentID string, start, end time.Time, stats repository.Stats) {
	r.StudentID = studentID
	r.PeriodStart = timezone.Format(start, constant.DateOnlyFormat)
	r.PeriodEnd = timezone.Format(end, constant.DateOnlyFormat)
	r.TotalDays = stats.TotalDays
	r.PresentDays = stats.PresentDays
	r.AbsentDays = stats.AbsentDays
	r.LateDays = stats.LateDays

	if stats.TotalDays > 0 {
		attended := stats.PresentDays + stats.LateDays
		r.AttendanceRate = float64(attended) / float64(stats.TotalDays) * 100
	}
}
