package persistence

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/position"
	"github.com/yoku/guildmaster/modules/organisation/permissions"
)

// InmemPositionRepository needs member lookups to answer FindUserPosition, so
// it is constructed over the in-memory member repository.
type InmemPositionRepository struct {
	storage *SafeMap[uuid.UUID, position.Position]
	members *InmemMemberRepository
}

func NewInmemPositionRepository(members *InmemMemberRepository) *InmemPositionRepository {
	return &InmemPositionRepository{
		storage: NewSafeMap[uuid.UUID, position.Position](),
		members: members,
	}
}

func (r *InmemPositionRepository) GetByID(_ context.Context, id uuid.UUID) (position.Position, error) {
	pos, found := r.storage.Get(id)
	if !found {
		return position.Position{}, position.ErrNotFound
	}
	return pos, nil
}

func (r *InmemPositionRepository) GetByOrganisationID(_ context.Context, organisationID uuid.UUID) ([]position.Position, error) {
	out := make([]position.Position, 0)
	for _, pos := range r.storage.Values() {
		if pos.OrganisationID() == organisationID {
			out = append(out, pos)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank() != out[j].Rank() {
			return out[i].Rank() > out[j].Rank()
		}
		return out[i].Name() < out[j].Name()
	})
	return out, nil
}

func (r *InmemPositionRepository) GetDefault(_ context.Context, organisationID uuid.UUID) (position.Position, error) {
	for _, pos := range r.storage.Values() {
		if pos.OrganisationID() == organisationID && pos.IsDefault() {
			return pos, nil
		}
	}
	return position.Position{}, position.ErrNoDefault
}

func (r *InmemPositionRepository) FindUserPosition(ctx context.Context, organisationID, userID uuid.UUID) (position.Position, error) {
	m, err := r.members.Get(ctx, organisationID, userID)
	if err != nil {
		return position.Position{}, position.ErrNotFound
	}
	return r.GetByID(ctx, m.PositionID())
}

func (r *InmemPositionRepository) Create(_ context.Context, data position.Position) (position.Position, error) {
	for _, pos := range r.storage.Values() {
		if pos.OrganisationID() == data.OrganisationID() && strings.EqualFold(pos.Name(), data.Name()) {
			return position.Position{}, position.ErrNameTaken
		}
	}
	r.storage.Set(data.ID(), data)
	return data, nil
}

func (r *InmemPositionRepository) Update(_ context.Context, data position.Position) error {
	existing, found := r.storage.Get(data.ID())
	if !found {
		return position.ErrNotFound
	}
	// Update keeps the stored permission set; it changes through
	// AddPermissions/RemovePermissions only.
	r.storage.Set(data.ID(), existing.Updated(data.Name(), data.Rank(), data.IsDefault(), existing.Permissions()))
	return nil
}

func (r *InmemPositionRepository) ClearDefault(_ context.Context, organisationID uuid.UUID) error {
	for _, pos := range r.storage.Values() {
		if pos.OrganisationID() == organisationID && pos.IsDefault() {
			r.storage.Set(pos.ID(), pos.Updated(pos.Name(), pos.Rank(), false, pos.Permissions()))
		}
	}
	return nil
}

func (r *InmemPositionRepository) AddPermissions(_ context.Context, positionID uuid.UUID, permissionIDs []int) error {
	pos, found := r.storage.Get(positionID)
	if !found {
		return position.ErrNotFound
	}
	perms := pos.Permissions()
	held := make(map[int]bool, len(perms))
	for _, p := range perms {
		held[p.ID] = true
	}
	for _, id := range permissionIDs {
		if held[id] {
			continue
		}
		if perm := permissions.ByID(id); perm != nil {
			perms = append(perms, perm)
			held[id] = true
		}
	}
	r.storage.Set(positionID, pos.Updated(pos.Name(), pos.Rank(), pos.IsDefault(), perms))
	return nil
}

func (r *InmemPositionRepository) RemovePermissions(_ context.Context, positionID uuid.UUID, permissionIDs []int) error {
	pos, found := r.storage.Get(positionID)
	if !found {
		return position.ErrNotFound
	}
	drop := make(map[int]bool, len(permissionIDs))
	for _, id := range permissionIDs {
		drop[id] = true
	}
	perms := pos.Permissions()
	kept := perms[:0]
	for _, p := range perms {
		if !drop[p.ID] {
			kept = append(kept, p)
		}
	}
	r.storage.Set(positionID, pos.Updated(pos.Name(), pos.Rank(), pos.IsDefault(), kept))
	return nil
}

func (r *InmemPositionRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, found := r.storage.Get(id); !found {
		return position.ErrNotFound
	}
	r.storage.Delete(id)
	return nil
}
