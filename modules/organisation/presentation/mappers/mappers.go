package mappers

import (
	"time"

	"github.com/google/uuid"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/invitation"
	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/member"
	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/organisation"
	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/position"
	"github.com/yoku/guildmaster/modules/organisation/domain/entities/userprofile"
	"github.com/yoku/guildmaster/modules/organisation/services"
)

type OrganisationView struct {
	ID          uuid.UUID `json:"id"`
	CreatorID   uuid.UUID `json:"creatorId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Email       string    `json:"email"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	Public      bool      `json:"public"`
	OrgType     string    `json:"orgType"`
	MemberCount int       `json:"memberCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func OrganisationToView(org organisation.Organisation) OrganisationView {
	return OrganisationView{
		ID:          org.ID(),
		CreatorID:   org.CreatorID(),
		Name:        org.Name(),
		Description: org.Description(),
		Email:       org.Email(),
		AvatarURL:   org.AvatarURL(),
		Public:      org.Public(),
		OrgType:     string(org.OrgType()),
		MemberCount: org.MemberCount(),
		CreatedAt:   org.CreatedAt(),
		UpdatedAt:   org.UpdatedAt(),
	}
}

type PositionView struct {
	ID             uuid.UUID `json:"id"`
	OrganisationID uuid.UUID `json:"organisationId"`
	Name           string    `json:"name"`
	Rank           int       `json:"rank"`
	IsDefault      bool      `json:"isDefault"`
	Permissions    []string  `json:"permissions"`
}

func PositionToView(pos position.Position) PositionView {
	perms := pos.Permissions()
	names := make([]string, 0, len(perms))
	for _, p := range perms {
		names = append(names, p.Name)
	}
	return PositionView{
		ID:             pos.ID(),
		OrganisationID: pos.OrganisationID(),
		Name:           pos.Name(),
		Rank:           pos.Rank(),
		IsDefault:      pos.IsDefault(),
		Permissions:    names,
	}
}

func PositionsToViews(positions []position.Position) []PositionView {
	out := make([]PositionView, 0, len(positions))
	for _, pos := range positions {
		out = append(out, PositionToView(pos))
	}
	return out
}

type MemberView struct {
	OrganisationID uuid.UUID            `json:"organisationId"`
	UserID         uuid.UUID            `json:"userId"`
	PositionID     uuid.UUID            `json:"positionId"`
	MemberSince    time.Time            `json:"memberSince"`
	User           *userprofile.Profile `json:"user,omitempty"`
}

func MemberToView(m member.Member, profile *userprofile.Profile) MemberView {
	return MemberView{
		OrganisationID: m.OrganisationID(),
		UserID:         m.UserID(),
		PositionID:     m.PositionID(),
		MemberSince:    m.MemberSince(),
		User:           profile,
	}
}

func MembersWithProfilesToViews(members []services.MemberWithProfile) []MemberView {
	out := make([]MemberView, 0, len(members))
	for _, m := range members {
		out = append(out, MemberToView(m.Member, m.Profile))
	}
	return out
}

type InvitationView struct {
	ID             uuid.UUID            `json:"id"`
	OrganisationID uuid.UUID            `json:"organisationId"`
	UserID         *uuid.UUID           `json:"userId,omitempty"`
	Email          string               `json:"email"`
	Token          string               `json:"token"`
	Status         string               `json:"status"`
	ExpiresAt      time.Time            `json:"expiresAt"`
	CreatedAt      time.Time            `json:"createdAt"`
	User           *userprofile.Profile `json:"user,omitempty"`
}

func InvitationToView(inv invitation.Invitation, profile *userprofile.Profile) InvitationView {
	var userID *uuid.UUID
	if id := inv.UserID(); id != uuid.Nil {
		userID = &id
	}
	return InvitationView{
		ID:             inv.ID(),
		OrganisationID: inv.OrganisationID(),
		UserID:         userID,
		Email:          inv.Email(),
		Token:          inv.Token(),
		Status:         string(inv.Status()),
		ExpiresAt:      inv.ExpiresAt(),
		CreatedAt:      inv.CreatedAt(),
		User:           profile,
	}
}

func InvitationsWithProfilesToViews(invs []services.InvitationWithProfile) []InvitationView {
	out := make([]InvitationView, 0, len(invs))
	for _, inv := range invs {
		out = append(out, InvitationToView(inv.Invitation, inv.User))
	}
	return out
}
