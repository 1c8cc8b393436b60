package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/member"
	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/position"
	"github.com/yoku/guildmaster/modules/organisation/domain/entities/permission"
	"github.com/yoku/guildmaster/modules/organisation/permissions"
	"github.com/yoku/guildmaster/pkg/cache"
	"github.com/yoku/guildmaster/pkg/composables"
)

// cachedPosition is the serialized cache snapshot; permissions are stored as
// catalog ids and rebuilt on read.
type cachedPosition struct {
	ID             uuid.UUID `json:"id"`
	OrganisationID uuid.UUID `json:"organisationId"`
	Name           string    `json:"name"`
	Rank           int       `json:"rank"`
	IsDefault      bool      `json:"isDefault"`
	PermissionIDs  []int     `json:"permissionIds"`
}

// PositionCacheService is the cache-aside layer over "resolve the position a
// user holds in an organisation". Mutation paths call the Evict methods after
// their transaction commits; cache failures degrade to repository reads.
type PositionCacheService struct {
	repo  position.Repository
	store cache.Store
	ttl   time.Duration
}

func NewPositionCacheService(repo position.Repository, store cache.Store, ttl time.Duration) *PositionCacheService {
	return &PositionCacheService{
		repo:  repo,
		store: store,
		ttl:   ttl,
	}
}

func userPositionKey(organisationID, userID uuid.UUID) string {
	return fmt.Sprintf("organisation.position.user::%s-%s", organisationID, userID)
}

// UserPosition resolves the position (with permissions) held by userID within
// the organisation, serving from cache when possible.
func (s *PositionCacheService) UserPosition(ctx context.Context, organisationID, userID uuid.UUID) (position.Position, error) {
	key := userPositionKey(organisationID, userID)

	if raw, err := s.store.Get(ctx, key); err == nil {
		var snapshot cachedPosition
		if err := json.Unmarshal(raw, &snapshot); err == nil {
			return snapshot.toDomain(), nil
		}
		composables.UseLogger(ctx).WithField("key", key).Warn("discarding undecodable position cache entry")
	}

	pos, err := s.repo.FindUserPosition(ctx, organisationID, userID)
	if err != nil {
		return position.Position{}, err
	}

	if raw, err := json.Marshal(fromDomainPosition(pos)); err == nil {
		if err := s.store.Set(ctx, key, raw, s.ttl); err != nil {
			composables.UseLogger(ctx).WithError(err).WithField("key", key).Error("failed to populate position cache")
		}
	}
	return pos, nil
}

// EvictUser drops the cached position of a single member. Best-effort.
func (s *PositionCacheService) EvictUser(ctx context.Context, organisationID, userID uuid.UUID) {
	key := userPositionKey(organisationID, userID)
	if err := s.store.Delete(ctx, key); err != nil {
		composables.UseLogger(ctx).WithError(err).WithField("key", key).Error("failed to evict position cache entry")
	}
}

// EvictMembers drops the cached positions of every given member in one call.
// Best-effort.
func (s *PositionCacheService) EvictMembers(ctx context.Context, members []member.Member) {
	if len(members) == 0 {
		return
	}
	keys := make([]string, 0, len(members))
	for _, m := range members {
		keys = append(keys, userPositionKey(m.OrganisationID(), m.UserID()))
	}
	if err := s.store.Delete(ctx, keys...); err != nil {
		composables.UseLogger(ctx).WithError(err).WithField("keys", len(keys)).Error("failed to evict position cache entries")
	}
}

func fromDomainPosition(pos position.Position) cachedPosition {
	return cachedPosition{
		ID:             pos.ID(),
		OrganisationID: pos.OrganisationID(),
		Name:           pos.Name(),
		Rank:           pos.Rank(),
		IsDefault:      pos.IsDefault(),
		PermissionIDs:  pos.PermissionIDs(),
	}
}

func (c cachedPosition) toDomain() position.Position {
	perms := make([]*permission.Permission, 0, len(c.PermissionIDs))
	for _, id := range c.PermissionIDs {
		if perm := permissions.ByID(id); perm != nil {
			perms = append(perms, perm)
		}
	}
	return position.Hydrate(c.ID, c.OrganisationID, c.Name, c.Rank, c.IsDefault, perms)
}
