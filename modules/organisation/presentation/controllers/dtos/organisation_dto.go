package dtos

import (
	"github.com/google/uuid"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/organisation"
	"github.com/yoku/guildmaster/pkg/constants"
)

type CreateOrganisationDTO struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"max=4000"`
	Email       string `json:"email" validate:"required,email"`
	AvatarURL   string `json:"avatarUrl" validate:"omitempty,url"`
	Public      bool   `json:"public"`
	OrgType     string `json:"orgType" validate:"omitempty,oneof=PERSONAL COMPANY EDUCATIONAL"`
}

func (d *CreateOrganisationDTO) Ok() (map[string]string, bool) {
	return validateStruct(d)
}

func (d *CreateOrganisationDTO) ToEntity(creatorID uuid.UUID) organisation.Organisation {
	opts := []organisation.Option{
		organisation.WithAvatarURL(d.AvatarURL),
		organisation.WithPublic(d.Public),
	}
	if d.OrgType != "" {
		opts = append(opts, organisation.WithType(organisation.Type(d.OrgType)))
	}
	return organisation.New(creatorID, d.Name, d.Description, d.Email, opts...)
}

type UpdateOrganisationDTO struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"max=4000"`
	Email       string `json:"email" validate:"required,email"`
	AvatarURL   string `json:"avatarUrl" validate:"omitempty,url"`
	Public      bool   `json:"public"`
}

func (d *UpdateOrganisationDTO) Ok() (map[string]string, bool) {
	return validateStruct(d)
}

func (d *UpdateOrganisationDTO) Apply(org organisation.Organisation) organisation.Organisation {
	return org.Updated(d.Name, d.Description, d.Email, d.AvatarURL, d.Public)
}

func validateStruct(v any) (map[string]string, bool) {
	errs := map[string]string{}
	if err := constants.Validate.Struct(v); err != nil {
		for _, fieldErr := range extractFieldErrors(err) {
			errs[fieldErr.Field()] = fieldErr.Tag()
		}
		return errs, false
	}
	return errs, true
}
