package dto

import (
	"time"

	"seatwise/internal/domains/operation/model"
	"seatwise/shared"
	"seatwise/shared/constant"
	gDto "seatwise/shared/dto"
	gModel "seatwise/shared/model"
	"seatwise/shared/timezone"

	"github.com/google/uuid"
)

type CreateOperationRequest struct {
	Type       string  `json:"type"        validate:"required,oneof=shift maintenance alert log"`
	Priority   string  `json:"priority"    validate:"omitempty,oneof=low medium high critical"`
	AssignedTo *string `json:"assigned_to" validate:"omitempty,uuid4"`
	SeatID     *string `json:"seat_id"     validate:"omitempty,uuid4"`
	StartTime  string  `json:"start_time"  validate:"required"`
	EndTime    *string `json:"end_time"    validate:"omitempty"`
	Location   *string `json:"location"    validate:"omitempty,max=100"`
	Notes      *string `json:"notes"       validate:"omitempty,max=500"`
}

func (c *CreateOperationRequest) ToModel(user string) (model.Operation, error) {
	start, err := time.Parse(time.RFC3339, c.StartTime)
	if err != nil {
		return model.Operation{}, err
	}

	var end *time.Time

	if c.EndTime != nil {
		parsed, err := time.Parse(time.RFC3339, *c.EndTime)
		if err != nil {
			return model.Operation{}, err
		}

		end = &parsed
	}

	priority := model.PriorityMedium
	if c.Priority != "" {
		priority = c.Priority
	}

	return model.Operation{
		ID:         uuid.NewString(),
		Type:       c.Type,
		Status:     model.StatusPending,
		Priority:   priority,
		AssignedTo: c.AssignedTo,
		SeatID:     c.SeatID,
		StartTime:  start,
		EndTime:    end,
		Location:   c.Location,
		Notes:      c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateOperationRequest struct {
	Status     string  `db:"status"      json:"status"      validate:"omitempty,oneof=pending in_progress completed failed"`
	Priority   string  `db:"priority"    json:"priority"    validate:"omitempty,oneof=low medium high critical"`
	AssignedTo *string `db:"assigned_to" json:"assigned_to" validate:"omitempty,uuid4"`
	Location   *string `db:"location"    json:"location"    validate:"omitempty,max=100"`
	Notes      *string `db:"notes"       json:"notes"       validate:"omitempty,max=500"`
}

type OperationResponse struct {
	ID              string  `json:"id"`
	Type            string  `json:"type"`
	Status          string  `json:"status"`
	Priority        string  `json:"priority"`
	AssignedTo      *string `json:"assigned_to,omitempty"`
	SeatID          *string `json:"seat_id,omitempty"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
	Location        *string `json:"location,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	gDto.Metadata
}

func (r *OperationResponse) FromModel(model model.Operation) {
	r.ID = model.ID
	r.Type = model.Type
	r.Status = model.Status
	r.Priority = model.Priority
	r.AssignedTo = model.AssignedTo
	r.SeatID = model.SeatID
	r.StartTime = timezone.Format(model.StartTime, constant.DateFormat)
	r.DurationMinutes = model.DurationMinutes()
	r.Location = model.Location
	r.Notes = model.Notes

	if model.EndTime != nil {
		r.EndTime = timezone.Format(*model.EndTime, constant.DateFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetOperationsResponse struct {
	Operations []OperationResponse `json:"operations"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (r *GetOperationsResponse) FromModels(models []model.Operation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Operations = make([]OperationResponse, len(models))
	for i, m := range models {
		r.Operations[i].FromModel(m)
	}
}
