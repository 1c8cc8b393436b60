package position

import "github.com/google/uuid"

type CreatedEvent struct {
	Result Position
}

type UpdatedEvent struct {
	Result Position
}

type DeletedEvent struct {
	ID            uuid.UUID
	ReplacementID uuid.UUID
}
