package invitation

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
	StatusExpired  Status = "EXPIRED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusExpired:
		return true
	}
	return false
}

// NewToken derives a short shareable token. Tokens are not guaranteed unique;
// lookups are scoped to pending invitations so stale collisions do not
// resurrect settled invites.
func NewToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// Invitation tracks an email-addressed offer to join an organisation. It is
// created PENDING and settles exactly once into ACCEPTED, REJECTED or
// EXPIRED. userID is optional: it is recorded when the inviter already knows
// the directory user behind the email.
type Invitation struct {
	id             uuid.UUID
	organisationID uuid.UUID
	userID         uuid.UUID
	email          string
	token          string
	status         Status
	expiresAt      time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

func New(organisationID uuid.UUID, email string, validity time.Duration, opts ...Option) Invitation {
	now := time.Now()
	i := Invitation{
		id:             uuid.New(),
		organisationID: organisationID,
		email:          strings.ToLower(strings.TrimSpace(email)),
		token:          NewToken(),
		status:         StatusPending,
		expiresAt:      now.Add(validity),
		createdAt:      now,
		updatedAt:      now,
	}
	for _, opt := range opts {
		opt(&i)
	}
	return i
}

type Option func(*Invitation)

// WithUserID pins the invitation to a known directory user.
func WithUserID(userID uuid.UUID) Option {
	return func(i *Invitation) { i.userID = userID }
}

func Hydrate(
	id uuid.UUID,
	organisationID uuid.UUID,
	userID uuid.UUID,
	email string,
	token string,
	status Status,
	expiresAt time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) Invitation {
	return Invitation{
		id:             id,
		organisationID: organisationID,
		userID:         userID,
		email:          email,
		token:          token,
		status:         status,
		expiresAt:      expiresAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (i Invitation) ID() uuid.UUID             { return i.id }
func (i Invitation) OrganisationID() uuid.UUID { return i.organisationID }

// UserID returns the known directory user the invitation was issued to, or
// uuid.Nil when only the email is known.
func (i Invitation) UserID() uuid.UUID    { return i.userID }
func (i Invitation) Email() string        { return i.email }
func (i Invitation) Token() string        { return i.token }
func (i Invitation) Status() Status       { return i.status }
func (i Invitation) ExpiresAt() time.Time { return i.expiresAt }
func (i Invitation) CreatedAt() time.Time { return i.createdAt }
func (i Invitation) UpdatedAt() time.Time { return i.updatedAt }

// IsExpired reports whether the invitation's validity window has lapsed,
// regardless of the persisted status.
func (i Invitation) IsExpired() bool {
	return time.Now().After(i.expiresAt)
}

// IsAcceptable reports whether the invitation can still settle: it must be
// pending and within its validity window.
func (i Invitation) IsAcceptable() bool {
	return i.status == StatusPending && !i.IsExpired()
}

// Settled returns a copy moved to a terminal status.
func (i Invitation) Settled(status Status) Invitation {
	out := i
	out.status = status
	out.updatedAt = time.Now()
	return out
}
