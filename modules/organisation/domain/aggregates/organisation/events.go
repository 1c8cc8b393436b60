package organisation

import "github.com/google/uuid"

type CreatedEvent struct {
	Result Organisation
}

type UpdatedEvent struct {
	Result Organisation
}

type DeletedEvent struct {
	ID uuid.UUID
}
