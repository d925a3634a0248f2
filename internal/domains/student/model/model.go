package model

import (
	"seatwise/shared/model"
)

const (
	TableName  = "students"
	EntityName = "student"

	FieldID             = "id"
	FieldName           = "name"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldMembershipType = "membership_type"
	FieldIDProofURL     = "id_proof_url"
	FieldActive         = "active"
)

const (
	MembershipBasic    = "basic"
	MembershipStandard = "standard"
	MembershipPremium  = "premium"
)

type Student struct {
	ID             string  `db:"id"`
	Name           string  `db:"name"`
	Email          string  `db:"email"`
	Phone          *string `db:"phone"`
	MembershipType string  `db:"membership_type"`
	IDProofURL     *string `db:"id_proof_url"`
	Active         bool    `db:"active"`
	model.Metadata
}
