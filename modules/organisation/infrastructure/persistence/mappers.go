package persistence

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/invitation"
	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/member"
	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/organisation"
	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/position"
	"github.com/yoku/guildmaster/modules/organisation/domain/entities/permission"
	"github.com/yoku/guildmaster/modules/organisation/infrastructure/persistence/models"
)

func toDomainOrganisation(m models.Organisation) organisation.Organisation {
	return organisation.Hydrate(
		m.ID,
		m.CreatorID,
		m.Name,
		m.Description,
		m.Email,
		m.AvatarURL.String,
		m.IsPublic,
		organisation.Type(m.OrgType),
		m.MemberCount,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toDBOrganisation(o organisation.Organisation) models.Organisation {
	return models.Organisation{
		ID:          o.ID(),
		CreatorID:   o.CreatorID(),
		Name:        o.Name(),
		Description: o.Description(),
		Email:       o.Email(),
		AvatarURL:   sql.NullString{String: o.AvatarURL(), Valid: o.AvatarURL() != ""},
		IsPublic:    o.Public(),
		OrgType:     string(o.OrgType()),
		MemberCount: o.MemberCount(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
	}
}

func toDomainPosition(m models.Position, perms []*permission.Permission) position.Position {
	return position.Hydrate(
		m.ID,
		m.OrganisationID,
		m.Name,
		m.Rank,
		m.IsDefault,
		perms,
	)
}

func toDBPosition(p position.Position) models.Position {
	return models.Position{
		ID:             p.ID(),
		OrganisationID: p.OrganisationID(),
		Name:           p.Name(),
		Rank:           p.Rank(),
		IsDefault:      p.IsDefault(),
	}
}

func toDomainMember(m models.Member) member.Member {
	return member.Hydrate(m.OrganisationID, m.UserID, m.PositionID, m.MemberSince)
}

func toDBMember(m member.Member) models.Member {
	return models.Member{
		OrganisationID: m.OrganisationID(),
		UserID:         m.UserID(),
		PositionID:     m.PositionID(),
		MemberSince:    m.MemberSince(),
	}
}

func toDomainInvitation(m models.Invitation) invitation.Invitation {
	return invitation.Hydrate(
		m.ID,
		m.OrganisationID,
		m.UserID.UUID,
		m.Email,
		m.Token,
		invitation.Status(m.Status),
		m.ExpiresAt,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toDBInvitation(i invitation.Invitation) models.Invitation {
	return models.Invitation{
		ID:             i.ID(),
		OrganisationID: i.OrganisationID(),
		UserID:         uuid.NullUUID{UUID: i.UserID(), Valid: i.UserID() != uuid.Nil},
		Email:          i.Email(),
		Token:          i.Token(),
		Status:         string(i.Status()),
		ExpiresAt:      i.ExpiresAt(),
		CreatedAt:      i.CreatedAt(),
		UpdatedAt:      i.UpdatedAt(),
	}
}
