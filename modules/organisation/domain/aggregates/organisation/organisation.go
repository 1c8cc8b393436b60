package organisation

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypePersonal    Type = "PERSONAL"
	TypeCompany     Type = "COMPANY"
	TypeEducational Type = "EDUCATIONAL"
)

// Organisation is the tenant root that positions, members and invitations
// reference. Name and email are unique across the service.
type Organisation struct {
	id           uuid.UUID
	creatorID    uuid.UUID
	name         string
	description  string
	email        string
	avatarURL    string
	public       bool
	orgType      Type
	memberCount  int
	createdAt    time.Time
	updatedAt    time.Time
}

func New(creatorID uuid.UUID, name, description, email string, opts ...Option) Organisation {
	o := Organisation{
		id:          uuid.New(),
		creatorID:   creatorID,
		name:        strings.TrimSpace(name),
		description: strings.TrimSpace(description),
		email:       strings.TrimSpace(email),
		orgType:     TypePersonal,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type Option func(*Organisation)

func WithAvatarURL(url string) Option {
	return func(o *Organisation) { o.avatarURL = url }
}

func WithPublic(public bool) Option {
	return func(o *Organisation) { o.public = public }
}

func WithType(t Type) Option {
	return func(o *Organisation) { o.orgType = t }
}

func Hydrate(
	id uuid.UUID,
	creatorID uuid.UUID,
	name string,
	description string,
	email string,
	avatarURL string,
	public bool,
	orgType Type,
	memberCount int,
	createdAt time.Time,
	updatedAt time.Time,
) Organisation {
	return Organisation{
		id:          id,
		creatorID:   creatorID,
		name:        name,
		description: description,
		email:       email,
		avatarURL:   avatarURL,
		public:      public,
		orgType:     orgType,
		memberCount: memberCount,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (o Organisation) ID() uuid.UUID        { return o.id }
func (o Organisation) CreatorID() uuid.UUID { return o.creatorID }
func (o Organisation) Name() string         { return o.name }
func (o Organisation) Description() string  { return o.description }
func (o Organisation) Email() string        { return o.email }
func (o Organisation) AvatarURL() string    { return o.avatarURL }
func (o Organisation) Public() bool         { return o.public }
func (o Organisation) OrgType() Type        { return o.orgType }
func (o Organisation) MemberCount() int     { return o.memberCount }
func (o Organisation) CreatedAt() time.Time { return o.createdAt }
func (o Organisation) UpdatedAt() time.Time { return o.updatedAt }

// Updated returns a copy with the mutable profile fields replaced.
func (o Organisation) Updated(name, description, email, avatarURL string, public bool) Organisation {
	out := o
	out.name = strings.TrimSpace(name)
	out.description = strings.TrimSpace(description)
	out.email = strings.TrimSpace(email)
	out.avatarURL = avatarURL
	out.public = public
	return out
}
