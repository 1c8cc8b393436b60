package userprofile

import (
	"context"

	"github.com/google/uuid"
)

// Profile is the subset of a user record owned by the external user
// directory that membership views embed.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatarUrl"`
}

// Directory resolves user profiles from the external identity service.
// Lookups are best-effort: callers degrade to bare ids when the directory is
// unavailable.
type Directory interface {
	FindByEmail(ctx context.Context, email string) (Profile, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Profile, error)
}
