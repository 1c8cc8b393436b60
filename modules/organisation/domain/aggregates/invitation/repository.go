package invitation

import (
	"context"

	"github.com/google/uuid"

	"github.com/yoku/guildmaster/pkg/serrors"
)

var (
	ErrNotFound = serrors.NotFound("INVITATION_NOT_FOUND", "invitation not found")
	// ErrActiveInviteExists rejects a second pending invitation for the same
	// email within one organisation.
	ErrActiveInviteExists = serrors.InvalidArgument("INVITATION_ALREADY_ACTIVE", "an active invitation already exists for this email")
	// ErrNoLongerValid rejects settling an invitation that is expired or
	// already settled.
	ErrNoLongerValid = serrors.InvalidArgument("INVITATION_NO_LONGER_VALID", "invitation is no longer valid")
	// ErrEmailMismatch rejects settling an invitation with an email other
	// than the one it was issued to.
	ErrEmailMismatch = serrors.InvalidArgument("INVITATION_EMAIL_MISMATCH", "invitation was issued to a different email address")
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Invitation, error)
	// GetPendingByToken resolves a token against pending invitations only.
	GetPendingByToken(ctx context.Context, token string) (Invitation, error)
	// FindPending looks up the pending invitation for an email within an
	// organisation, ErrNotFound when none exists.
	FindPending(ctx context.Context, organisationID uuid.UUID, email string) (Invitation, error)
	GetByOrganisationID(ctx context.Context, organisationID uuid.UUID) ([]Invitation, error)
	GetByEmail(ctx context.Context, email string) ([]Invitation, error)
	// GetByUserID lists invitations pinned to the given directory user.
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]Invitation, error)
	Create(ctx context.Context, data Invitation) (Invitation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ExpireStale marks pending invitations past their validity window as
	// EXPIRED and reports how many were transitioned.
	ExpireStale(ctx context.Context) (int64, error)
}
