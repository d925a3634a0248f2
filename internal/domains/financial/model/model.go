package model

import (
	"encoding/json"

	"seatwise/shared/model"
)

const (
	TableName  = "financial_records"
	EntityName = "financial_record"

	FieldID            = "id"
	FieldType          = "type"
	FieldAmount        = "amount"
	FieldCurrency      = "currency"
	FieldStatus        = "status"
	FieldPaymentMethod = "payment_method"
	FieldReference     = "reference"
	FieldDescription   = "description"
	FieldStudentID     = "student_id"
	FieldBookingID     = "booking_id"
	FieldMetadata      = "metadata"
	FieldCreatedAt     = "created_at"
)

const (
	TypePayment    = "payment"
	TypeRefund     = "refund"
	TypeAdjustment = "adjustment"

	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusRefunded  = "refunded"
)

type FinancialRecord struct {
	ID            string          `db:"id"`
	Type          string          `db:"type"`
	Amount        float64         `db:"amount"`
	Currency      string          `db:"currency"`
	Status        string          `db:"status"`
	PaymentMethod *string         `db:"payment_method"`
	Reference     string          `db:"reference"`
	Description   *string         `db:"description"`
	StudentID     *string         `db:"student_id"`
	BookingID     *string         `db:"booking_id"`
	Extra         json.RawMessage `db:"metadata"`
	model.Metadata
}
