package organisation

import (
	"context"

	"github.com/google/uuid"

	"github.com/yoku/guildmaster/pkg/serrors"
)

var (
	ErrNotFound   = serrors.NotFound("ORGANISATION_NOT_FOUND", "organisation not found")
	ErrNameTaken  = serrors.Conflict("ORGANISATION_NAME_TAKEN", "organisation name already in use")
	ErrEmailTaken = serrors.Conflict("ORGANISATION_EMAIL_TAKEN", "organisation email already in use")
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Organisation, error)
	GetByName(ctx context.Context, name string) (Organisation, error)
	Create(ctx context.Context, data Organisation) (Organisation, error)
	Update(ctx context.Context, data Organisation) (Organisation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
