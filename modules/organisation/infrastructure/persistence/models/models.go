package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Organisation struct {
	ID          uuid.UUID
	CreatorID   uuid.UUID
	Name        string
	Description string
	Email       string
	AvatarURL   sql.NullString
	IsPublic    bool
	OrgType     string
	MemberCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Position struct {
	ID             uuid.UUID
	OrganisationID uuid.UUID
	Name           string
	Rank           int
	IsDefault      bool
}

type PositionPermission struct {
	PositionID   uuid.UUID
	PermissionID int
}

type Member struct {
	OrganisationID uuid.UUID
	UserID         uuid.UUID
	PositionID     uuid.UUID
	MemberSince    time.Time
}

type Invitation struct {
	ID             uuid.UUID
	OrganisationID uuid.UUID
	UserID         uuid.NullUUID
	Email          string
	Token          string
	Status         string
	ExpiresAt      time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
