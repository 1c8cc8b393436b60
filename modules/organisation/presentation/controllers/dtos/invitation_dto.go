package dtos

import (
	"github.com/google/uuid"
)

type CreateInvitationDTO struct {
	OrganisationID uuid.UUID `json:"organisationId" validate:"required"`
	Email          string    `json:"email" validate:"required,email"`
	UserID         uuid.UUID `json:"userId"`
}

func (d *CreateInvitationDTO) Ok() (map[string]string, bool) {
	return validateStruct(d)
}

type SettleInvitationDTO struct {
	Email string `json:"email" validate:"required,email"`
}

func (d *SettleInvitationDTO) Ok() (map[string]string, bool) {
	return validateStruct(d)
}
