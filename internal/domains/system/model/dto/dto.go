package dto

import (
	"seatwise/internal/domains/system/model"
	gDto "seatwise/shared/dto"
)

type UpdateSettingsRequest struct {
	MaintenanceMode          *bool    `db:"maintenance_mode"             json:"maintenance_mode"`
	MaintenanceMessage       *string  `db:"maintenance_message"          json:"maintenance_message"          validate:"omitempty,max=500"`
	MinBookingMinutes        *int     `db:"min_booking_minutes"          json:"min_booking_minutes"          validate:"omitempty,min=1"`
	MaxBookingMinutes        *int     `db:"max_booking_minutes"          json:"max_booking_minutes"          validate:"omitempty,min=1"`
	AdvanceWindowDays        *int     `db:"advance_window_days"          json:"advance_window_days"          validate:"omitempty,min=0"`
	CancellationGraceMinutes *int     `db:"cancellation_grace_minutes"   json:"cancellation_grace_minutes"   validate:"omitempty,min=0"`
	CancellationPenaltyPct   *float64 `db:"cancellation_penalty_percent" json:"cancellation_penalty_percent" validate:"omitempty,min=0,max=100"`
	NotifyEmail              *bool    `db:"notify_email"                 json:"notify_email"`
	NotifySMS                *bool    `db:"notify_sms"                   json:"notify_sms"`
	Currency                 *string  `db:"currency"                     json:"currency"                     validate:"omitempty,len=3"`
	TaxRatePercent           *float64 `db:"tax_rate_percent"             json:"tax_rate_percent"             validate:"omitempty,min=0,max=100"`
	LateFee                  *float64 `db:"late_fee"                     json:"late_fee"                     validate:"omitempty,min=0"`
	SessionTimeoutMinutes    *int     `db:"session_timeout_minutes"      json:"session_timeout_minutes"      validate:"omitempty,min=1"`
	PasswordMinLength        *int     `db:"password_min_length"          json:"password_min_length"          validate:"omitempty,min=6"`
}

type SettingsResponse struct {
	MaintenanceMode          bool    `json:"maintenance_mode"`
	MaintenanceMessage       *string `json:"maintenance_message,omitempty"`
	MinBookingMinutes        int     `json:"min_booking_minutes"`
	MaxBookingMinutes        int     `json:"max_booking_minutes"`
	AdvanceWindowDays        int     `json:"advance_window_days"`
	CancellationGraceMinutes int     `json:"cancellation_grace_minutes"`
	CancellationPenaltyPct   float64 `json:"cancellation_penalty_percent"`
	NotifyEmail              bool    `json:"notify_email"`
	NotifySMS                bool    `json:"notify_sms"`
	Currency                 string  `json:"currency"`
	TaxRatePercent           float64 `json:"tax_rate_percent"`
	LateFee                  float64 `json:"late_fee"`
	SessionTimeoutMinutes    int     `json:"session_timeout_minutes"`
	PasswordMinLength        int     `json:"password_min_length"`
	gDto.Metadata
}

func (r *SettingsResponse) FromModel(model model.Settings) {
	r.MaintenanceMode = model.MaintenanceMode
	r.MaintenanceMessage = model.MaintenanceMessage
	r.MinBookingMinutes = model.MinBookingMinutes
	r.MaxBookingMinutes = model.MaxBookingMinutes
	r.AdvanceWindowDays = model.AdvanceWindowDays
	r.CancellationGraceMinutes = model.CancellationGraceMinutes
	r.CancellationPenaltyPct = model.CancellationPenaltyPct
	r.NotifyEmail = model.NotifyEmail
	r.NotifySMS = model.NotifySMS
	r.Currency = model.Currency
	r.TaxRatePercent = model.TaxRatePercent
	r.LateFee = model.LateFee
	r.SessionTimeoutMinutes = model.SessionTimeoutMinutes
	r.PasswordMinLength = model.PasswordMinLength
	r.Metadata.FromModel(model.Metadata)
}

type BackupResponse struct {
	File        string `json:"file"`
	CompletedAt string `json:"completed_at"`
}
