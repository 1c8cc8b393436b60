package position

import (
	"strings"

	"github.com/google/uuid"

	"github.com/yoku/guildmaster/modules/organisation/domain/entities/permission"
)

// Position is a named, ranked role within an organisation carrying a set of
// granted permissions. Higher rank means more senior; at most one position
// per organisation is the default.
type Position struct {
	id             uuid.UUID
	organisationID uuid.UUID
	name           string
	rank           int
	isDefault      bool
	permissions    []*permission.Permission
}

func New(organisationID uuid.UUID, name string, rank int, opts ...Option) Position {
	p := Position{
		id:             uuid.New(),
		organisationID: organisationID,
		name:           strings.TrimSpace(name),
		rank:           rank,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

type Option func(*Position)

func WithDefault(isDefault bool) Option {
	return func(p *Position) { p.isDefault = isDefault }
}

func WithPermissions(perms []*permission.Permission) Option {
	return func(p *Position) { p.permissions = append([]*permission.Permission(nil), perms...) }
}

func Hydrate(
	id uuid.UUID,
	organisationID uuid.UUID,
	name string,
	rank int,
	isDefault bool,
	perms []*permission.Permission,
) Position {
	return Position{
		id:             id,
		organisationID: organisationID,
		name:           name,
		rank:           rank,
		isDefault:      isDefault,
		permissions:    append([]*permission.Permission(nil), perms...),
	}
}

func (p Position) ID() uuid.UUID             { return p.id }
func (p Position) OrganisationID() uuid.UUID { return p.organisationID }
func (p Position) Name() string              { return p.name }
func (p Position) Rank() int                 { return p.rank }
func (p Position) IsDefault() bool           { return p.isDefault }
func (p Position) IsZero() bool              { return p.id == uuid.Nil }

// Permissions returns an immutable snapshot of the granted permission set.
func (p Position) Permissions() []*permission.Permission {
	return append([]*permission.Permission(nil), p.permissions...)
}

// PermissionIDs returns the ids of the granted permission set.
func (p Position) PermissionIDs() []int {
	ids := make([]int, 0, len(p.permissions))
	for _, perm := range p.permissions {
		ids = append(ids, perm.ID)
	}
	return ids
}

// Updated returns a copy with name, rank, default flag and permission set
// replaced.
func (p Position) Updated(name string, rank int, isDefault bool, perms []*permission.Permission) Position {
	out := p
	out.name = strings.TrimSpace(name)
	out.rank = rank
	out.isDefault = isDefault
	out.permissions = append([]*permission.Permission(nil), perms...)
	return out
}
