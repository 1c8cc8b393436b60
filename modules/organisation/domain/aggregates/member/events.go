package member

import "github.com/google/uuid"

type AddedEvent struct {
	Result Member
}

type PositionChangedEvent struct {
	Result Member
}

type RemovedEvent struct {
	OrganisationID uuid.UUID
	UserID         uuid.UUID
}
