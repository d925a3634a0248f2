package model

import (
	"seatwise/shared/model"
)

const (
	TableName  = "system_settings"
	EntityName = "system_setting"

	// SingletonID keys the single settings row per deployment.
	SingletonID = "default"

	FieldID                     = "id"
	FieldMaintenanceMode        = "maintenance_mode"
	FieldMaintenanceMessage     = "maintenance_message"
	FieldMinBookingMinutes      = "min_booking_minutes"
	FieldMaxBookingMinutes      = "max_booking_minutes"
	FieldAdvanceWindowDays      = "advance_window_days"
	FieldCancellationGraceMin   = "cancellation_grace_minutes"
	FieldCancellationPenaltyPct = "cancellation_penalty_percent"
	FieldNotifyEmail            = "notify_email"
	FieldNotifySMS              = "notify_sms"
	FieldCurrency               = "currency"
	FieldTaxRatePercent         = "tax_rate_percent"
	FieldLateFee                = "late_fee"
	FieldSessionTimeoutMinutes  = "session_timeout_minutes"
	FieldPasswordMinLength      = "password_min_length"
)

type Settings struct {
	ID                       string  `db:"id"`
	MaintenanceMode          bool    `db:"maintenance_mode"`
	MaintenanceMessage       *string `db:"maintenance_message"`
	MinBookingMinutes        int     `db:"min_booking_minutes"`
	MaxBookingMinutes        int     `db:"max_booking_minutes"`
	AdvanceWindowDays        int     `db:"advance_window_days"`
	CancellationGraceMinutes int     `db:"cancellation_grace_minutes"`
	CancellationPenaltyPct   float64 `db:"cancellation_penalty_percent"`
	NotifyEmail              bool    `db:"notify_email"`
	NotifySMS                bool    `db:"notify_sms"`
	Currency                 string  `db:"currency"`
	TaxRatePercent           float64 `db:"tax_rate_percent"`
	LateFee                  float64 `db:"late_fee"`
	SessionTimeoutMinutes    int     `db:"session_timeout_minutes"`
	PasswordMinLength        int     `db:"password_min_length"`
	model.Metadata
}
