package dto

import (
	"seatwise/internal/domains/student/model"
	"seatwise/shared"
	gDto "seatwise/shared/dto"
	gModel "seatwise/shared/model"
	"seatwise/shared/timezone"

	"github.com/google/uuid"
)

type CreateStudentRequest struct {
	Name           string  `json:"name"            validate:"required,min=2,max=100"`
	Email          string  `json:"email"           validate:"required,email,max=100"`
	Phone          *string `json:"phone"           validate:"omitempty,max=20"`
	MembershipType string  `json:"membership_type" validate:"omitempty,oneof=basic standard premium"`
	IDProof        string  `json:"id_proof"        validate:"omitempty,mimetypes=image/png image/jpg image/jpeg application/pdf,maxfilesize=5"`
}

func (c *CreateStudentRequest) ToModel(user string, idProofURL *string) model.Student {
	membership := model.MembershipBasic
	if c.MembershipType != "" {
		membership = c.MembershipType
	}

	return model.Student{
		ID:             uuid.NewString(),
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		MembershipType: membership,
		IDProofURL:     idProofURL,
		Active:         true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateStudentRequest struct {
	Name           string  `db:"name"            json:"name"            validate:"omitempty,min=2,max=100"`
	Email          string  `db:"email"           json:"email"           validate:"omitempty,email,max=100"`
	Phone          *string `db:"phone"           json:"phone"           validate:"omitempty,max=20"`
	MembershipType string  `db:"membership_type" json:"membership_type" validate:"omitempty,oneof=basic standard premium"`
	Active         *bool   `db:"active"          json:"active"          validate:"omitempty"`
}

type StudentResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          *string `json:"phone,omitempty"`
	MembershipType string  `json:"membership_type"`
	IDProofURL     *string `json:"id_proof_url,omitempty"`
	Active         bool    `json:"active"`
	gDto.Metadata
}

func (r *StudentResponse) FromModel(model model.Student) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.MembershipType = model.MembershipType
	r.IDProofURL = model.IDProofURL
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetStudentsResponse struct {
	Students  []StudentResponse `json:"students"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetStudentsResponse) FromModels(models []model.Student, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Students = make([]StudentResponse, len(models))
	for i, m := range models {
		r.Students[i].FromModel(m)
	}
}
