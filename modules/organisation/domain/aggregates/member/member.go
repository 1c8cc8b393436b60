package member

import (
	"time"

	"github.com/google/uuid"
)

// Member binds a user to an organisation through exactly one position.
// The identity is the (organisationID, userID) pair.
type Member struct {
	organisationID uuid.UUID
	userID         uuid.UUID
	positionID     uuid.UUID
	memberSince    time.Time
}

func New(organisationID, userID, positionID uuid.UUID) Member {
	return Member{
		organisationID: organisationID,
		userID:         userID,
		positionID:     positionID,
		memberSince:    time.Now(),
	}
}

func Hydrate(organisationID, userID, positionID uuid.UUID, memberSince time.Time) Member {
	return Member{
		organisationID: organisationID,
		userID:         userID,
		positionID:     positionID,
		memberSince:    memberSince,
	}
}

func (m Member) OrganisationID() uuid.UUID { return m.organisationID }
func (m Member) UserID() uuid.UUID         { return m.userID }
func (m Member) PositionID() uuid.UUID     { return m.positionID }
func (m Member) MemberSince() time.Time    { return m.memberSince }

// MovedTo returns a copy bound to a different position.
func (m Member) MovedTo(positionID uuid.UUID) Member {
	out := m
	out.positionID = positionID
	return out
}
