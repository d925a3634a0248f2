package model

import (
	"encoding/json"
	"time"

	"seatwise/shared/model"
)

const (
	TableName  = "reports"
	EntityName = "report"

	FieldID          = "id"
	FieldType        = "type"
	FieldFormat      = "format"
	FieldStatus      = "status"
	FieldPeriodStart = "period_start"
	FieldPeriodEnd   = "period_end"
	FieldData        = "data"
	FieldDownloadURL = "download_url"
	FieldGeneratedBy = "generated_by"
	FieldError       = "error"
)

const (
	TypeAttendance  = "attendance"
	TypeRevenue     = "revenue"
	TypeUtilization = "utilization"
	TypeActivity    = "activity"
	TypeTrends      = "trends"
	TypePerformance = "performance"

	FormatJSON  = "json"
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"

	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

type Report struct {
	ID          string          `db:"id"`
	Type        string          `db:"type"`
	Format      string          `db:"format"`
	Status      string          `db:"status"`
	PeriodStart time.Time       `db:"period_start"`
	PeriodEnd   time.Time       `db:"period_end"`
	Data        json.RawMessage `db:"data"`
	DownloadURL *string         `db:"download_url"`
	GeneratedBy string          `db:"generated_by"`
	Error       *string         `db:"error"`
	model.Metadata
}
