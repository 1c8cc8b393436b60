package position

import (
	"context"

	"github.com/google/uuid"

	"github.com/yoku/guildmaster/pkg/serrors"
)

var (
	ErrNotFound  = serrors.NotFound("POSITION_NOT_FOUND", "position not found")
	ErrNoDefault = serrors.NotFound("DEFAULT_POSITION_NOT_FOUND", "organisation has no default position")
	ErrNameTaken = serrors.Conflict("POSITION_NAME_TAKEN", "position name already in use within organisation")
	// ErrDefaultFlagRemoval rejects un-defaulting a position directly; a
	// different position must be made default instead.
	ErrDefaultFlagRemoval = serrors.InvalidArgument("POSITION_DEFAULT_FLAG_REMOVAL", "cannot remove default flag from default position")
	// ErrDefaultDelete rejects deleting the current default position before a
	// replacement default is designated.
	ErrDefaultDelete = serrors.InvalidArgument("POSITION_DEFAULT_DELETE", "cannot delete the organisation's default position")
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Position, error)
	GetByOrganisationID(ctx context.Context, organisationID uuid.UUID) ([]Position, error)
	// GetDefault returns the organisation's default position, ErrNoDefault if
	// none is configured.
	GetDefault(ctx context.Context, organisationID uuid.UUID) (Position, error)
	// FindUserPosition resolves the position (with permissions) held by the
	// given user within the organisation.
	FindUserPosition(ctx context.Context, organisationID, userID uuid.UUID) (Position, error)
	Create(ctx context.Context, data Position) (Position, error)
	// Update persists name, rank and default flag. The permission set is
	// maintained through AddPermissions/RemovePermissions.
	Update(ctx context.Context, data Position) error
	// ClearDefault removes the default flag from the organisation's current
	// default position, if any.
	ClearDefault(ctx context.Context, organisationID uuid.UUID) error
	AddPermissions(ctx context.Context, positionID uuid.UUID, permissionIDs []int) error
	RemovePermissions(ctx context.Context, positionID uuid.UUID, permissionIDs []int) error
	Delete(ctx context.Context, id uuid.UUID) error
}
