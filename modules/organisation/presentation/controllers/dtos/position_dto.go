package dtos

import (
	"github.com/google/uuid"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/position"
	"github.com/yoku/guildmaster/modules/organisation/domain/entities/permission"
	"github.com/yoku/guildmaster/modules/organisation/permissions"
)

type CreatePositionDTO struct {
	OrganisationID uuid.UUID `json:"organisationId" validate:"required"`
	Name           string    `json:"name" validate:"required,min=2,max=255"`
	Rank           int       `json:"rank" validate:"gte=0"`
	IsDefault      bool      `json:"isDefault"`
	Permissions    []string  `json:"permissions" validate:"dive,required"`
}

func (d *CreatePositionDTO) Ok() (map[string]string, bool) {
	return validateStruct(d)
}

func (d *CreatePositionDTO) ToEntity() (position.Position, error) {
	perms, err := ResolvePermissions(d.Permissions)
	if err != nil {
		return position.Position{}, err
	}
	return position.New(
		d.OrganisationID,
		d.Name,
		d.Rank,
		position.WithDefault(d.IsDefault),
		position.WithPermissions(perms),
	), nil
}

type UpdatePositionDTO struct {
	Name        string   `json:"name" validate:"required,min=2,max=255"`
	Rank        int      `json:"rank" validate:"gte=0"`
	IsDefault   bool     `json:"isDefault"`
	Permissions []string `json:"permissions" validate:"dive,required"`
}

func (d *UpdatePositionDTO) Ok() (map[string]string, bool) {
	return validateStruct(d)
}

// ResolvePermissions maps permission names onto the catalog; unknown names
// are an input error.
func ResolvePermissions(names []string) ([]*permission.Permission, error) {
	perms := make([]*permission.Permission, 0, len(names))
	for _, name := range names {
		perm := permissions.ByName(name)
		if perm == nil {
			return nil, permission.ErrUnknown(name)
		}
		perms = append(perms, perm)
	}
	return perms, nil
}

type MoveMemberDTO struct {
	UserID         uuid.UUID `json:"userId" validate:"required"`
	FromPositionID uuid.UUID `json:"fromPositionId" validate:"required"`
	ToPositionID   uuid.UUID `json:"toPositionId" validate:"required"`
}

func (d *MoveMemberDTO) Ok() (map[string]string, bool) {
	return validateStruct(d)
}
