package dto

import (
	"encoding/json"

	"seatwise/internal/domains/financial/model"
	"seatwise/shared"
	gDto "seatwise/shared/dto"
	gModel "seatwise/shared/model"
	"seatwise/shared/timezone"

	"github.com/google/uuid"
)

type CreateFinancialRecordRequest struct {
	Type          string          `json:"type"           validate:"required,oneof=payment refund adjustment"`
	Amount        float64         `json:"amount"         validate:"required"`
	Currency      string          `json:"currency"       validate:"required,len=3"`
	Status        string          `json:"status"         validate:"omitempty,oneof=pending completed failed refunded"`
	PaymentMethod *string         `json:"payment_method" validate:"omitempty,max=50"`
	Reference     string          `json:"reference"      validate:"required,max=100"`
	Description   *string         `json:"description"    validate:"omitempty,max=500"`
	StudentID     *string         `json:"student_id"     validate:"omitempty,uuid4"`
	BookingID     *string         `json:"booking_id"     validate:"omitempty,uuid4"`
	Extra         json.RawMessage `json:"metadata"       validate:"omitempty"`
}

func (c *CreateFinancialRecordRequest) ToModel(user string) model.FinancialRecord {
	status := model.StatusPending
	if c.Status != "" {
		status = c.Status
	}

	return model.FinancialRecord{
		ID:            uuid.NewString(),
		Type:          c.Type,
		Amount:        c.Amount,
		Currency:      c.Currency,
		Status:        status,
		PaymentMethod: c.PaymentMethod,
		Reference:     c.Reference,
		Description:   c.Description,
		StudentID:     c.StudentID,
		BookingID:     c.BookingID,
		Extra:         c.Extra,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateFinancialRecordRequest struct {
	Status        string  `db:"status"         json:"status"         validate:"omitempty,oneof=pending completed failed refunded"`
	PaymentMethod *string `db:"payment_method" json:"payment_method" validate:"omitempty,max=50"`
	Description   *string `db:"description"    json:"description"    validate:"omitempty,max=500"`
}

type FinancialRecordResponse struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Amount        float64         `json:"amount"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	PaymentMethod *string         `json:"payment_method,omitempty"`
	Reference     string          `json:"reference"`
	Description   *string         `json:"description,omitempty"`
	StudentID     *string         `json:"student_id,omitempty"`
	BookingID     *string         `json:"booking_id,omitempty"`
	Extra         json.RawMessage `json:"metadata,omitempty"`
	gDto.Metadata
}

func (r *FinancialRecordResponse) FromModel(model model.FinancialRecord) {
	r.ID = model.ID
	r.Type = model.Type
	r.Amount = model.Amount
	r.Currency = model.Currency
	r.Status = model.Status
	r.PaymentMethod = model.PaymentMethod
	r.Reference = model.Reference
	r.Description = model.Description
	r.StudentID = model.StudentID
	r.BookingID = model.BookingID
	r.Extra = model.Extra
	r.Metadata.FromModel(model.Metadata)
}

type GetFinancialRecordsResponse struct {
	Records   []FinancialRecordResponse `json:"records"`
	TotalPage int                       `json:"total_page"`
	TotalData int                       `json:"total_data"`
}

func (r *GetFinancialRecordsResponse) FromModels(models []model.FinancialRecord, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Records = make([]FinancialRecordResponse, len(models))
	for i, m := range models {
		r.Records[i].FromModel(m)
	}
}

type DailyRevenue struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
}

type RevenueSummaryResponse struct {
	PeriodStart  string         `json:"period_start"`
	PeriodEnd    string         `json:"period_end"`
	TotalRevenue float64        `json:"total_revenue"`
	Days         []DailyRevenue `json:"days"`
}
