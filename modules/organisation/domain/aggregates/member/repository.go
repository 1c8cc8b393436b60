package member

import (
	"context"

	"github.com/google/uuid"

	"github.com/yoku/guildmaster/pkg/serrors"
)

var (
	ErrNotFound      = serrors.NotFound("MEMBER_NOT_FOUND", "member not found")
	ErrAlreadyExists = serrors.Conflict("MEMBER_ALREADY_EXISTS", "user is already a member of the organisation")
	// ErrSamePosition rejects a move that targets the position the member
	// already holds.
	ErrSamePosition = serrors.InvalidArgument("MEMBER_SAME_POSITION", "member already holds this position")
	// ErrCreatorRemoval rejects removing the organisation's creator through
	// the membership API. No permission grants this, so it renders as 403.
	ErrCreatorRemoval = serrors.PermissionDenied("MEMBER_CREATOR_REMOVAL", "the organisation creator cannot be removed")
)

type Repository interface {
	Get(ctx context.Context, organisationID, userID uuid.UUID) (Member, error)
	GetByOrganisationID(ctx context.Context, organisationID uuid.UUID) ([]Member, error)
	GetByPositionID(ctx context.Context, positionID uuid.UUID) ([]Member, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]Member, error)
	Create(ctx context.Context, data Member) (Member, error)
	// UpdatePosition rebinds a single member to a new position.
	UpdatePosition(ctx context.Context, organisationID, userID, positionID uuid.UUID) error
	// MoveAllToPosition rebinds every member of fromPositionID to toPositionID
	// and reports the number of members moved.
	MoveAllToPosition(ctx context.Context, fromPositionID, toPositionID uuid.UUID) (int64, error)
	Delete(ctx context.Context, organisationID, userID uuid.UUID) error
}
