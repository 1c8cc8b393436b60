package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/member"
	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/position"
	"github.com/yoku/guildmaster/modules/organisation/domain/entities/permission"
	"github.com/yoku/guildmaster/modules/organisation/permissions"
	"github.com/yoku/guildmaster/pkg/composables"
	"github.com/yoku/guildmaster/pkg/eventbus"
	"github.com/yoku/guildmaster/pkg/serrors"
)

var ErrReplacementOrgMismatch = serrors.InvalidArgument(
	"POSITION_REPLACEMENT_ORG_MISMATCH",
	"replacement position belongs to a different organisation",
)

type PositionService struct {
	repo      position.Repository
	members   member.Repository
	perms     *PermissionService
	cache     *PositionCacheService
	publisher eventbus.EventBus
}

func NewPositionService(
	repo position.Repository,
	members member.Repository,
	perms *PermissionService,
	cache *PositionCacheService,
	publisher eventbus.EventBus,
) *PositionService {
	return &PositionService{
		repo:      repo,
		members:   members,
		perms:     perms,
		cache:     cache,
		publisher: publisher,
	}
}

func (s *PositionService) GetByID(ctx context.Context, id uuid.UUID) (position.Position, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PositionService) GetByOrganisationID(ctx context.Context, organisationID uuid.UUID) ([]position.Position, error) {
	return s.repo.GetByOrganisationID(ctx, organisationID)
}

func (s *PositionService) GetDefault(ctx context.Context, organisationID uuid.UUID) (position.Position, error) {
	return s.repo.GetDefault(ctx, organisationID)
}

// Create adds a position to the organisation. Making the new position the
// default clears the previous default in the same transaction, so readers
// never observe two defaults.
func (s *PositionService) Create(ctx context.Context, data position.Position) (position.Position, error) {
	if _, err := s.perms.Require(ctx, data.OrganisationID(), permissions.RoleCreate); err != nil {
		return position.Position{}, err
	}

	var created position.Position
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		if data.IsDefault() {
			if err := s.repo.ClearDefault(txCtx, data.OrganisationID()); err != nil {
				return err
			}
		}
		var err error
		created, err = s.repo.Create(txCtx, data)
		return err
	})
	if err != nil {
		return position.Position{}, err
	}

	s.publisher.Publish(position.CreatedEvent{Result: created})
	return created, nil
}

// Update changes name, rank, default flag and permission set. The permission
// set is applied as a grant/revoke diff against the stored set. After the
// commit, cached positions of every member seated on the position are
// evicted: their authorization state changed.
func (s *PositionService) Update(ctx context.Context, id uuid.UUID, name string, rank int, isDefault bool, perms []*permission.Permission) (position.Position, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return position.Position{}, err
	}
	if _, err := s.perms.Require(ctx, existing.OrganisationID(), permissions.RoleUpdate); err != nil {
		return position.Position{}, err
	}
	if existing.IsDefault() && !isDefault {
		return position.Position{}, position.ErrDefaultFlagRemoval
	}

	added, removed := diffPermissions(existing.Permissions(), perms)

	err = composables.InTx(ctx, func(txCtx context.Context) error {
		if isDefault && !existing.IsDefault() {
			if err := s.repo.ClearDefault(txCtx, existing.OrganisationID()); err != nil {
				return err
			}
		}
		if err := s.repo.Update(txCtx, existing.Updated(name, rank, isDefault, perms)); err != nil {
			return err
		}
		if err := s.repo.AddPermissions(txCtx, id, added); err != nil {
			return err
		}
		return s.repo.RemovePermissions(txCtx, id, removed)
	})
	if err != nil {
		return position.Position{}, err
	}

	s.evictSeatedMembers(ctx, id)

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return position.Position{}, err
	}
	s.publisher.Publish(position.UpdatedEvent{Result: updated})
	return updated, nil
}

// Remove deletes the position after migrating every seated member to the
// replacement position in the same transaction. The current default position
// cannot be removed; a different position must be made default first.
func (s *PositionService) Remove(ctx context.Context, id, replacementID uuid.UUID) error {
	pos, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	replacement, err := s.repo.GetByID(ctx, replacementID)
	if err != nil {
		return err
	}
	if pos.OrganisationID() != replacement.OrganisationID() {
		return ErrReplacementOrgMismatch
	}
	if _, err := s.perms.Require(ctx, replacement.OrganisationID(), permissions.RoleDelete); err != nil {
		return err
	}
	if pos.IsDefault() {
		return position.ErrDefaultDelete
	}

	seated, err := s.members.GetByPositionID(ctx, id)
	if err != nil {
		return err
	}

	err = composables.InTx(ctx, func(txCtx context.Context) error {
		if _, err := s.members.MoveAllToPosition(txCtx, id, replacementID); err != nil {
			return err
		}
		return s.repo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.cache.EvictMembers(ctx, seated)
	s.publisher.Publish(position.DeletedEvent{ID: id, ReplacementID: replacementID})
	return nil
}

func (s *PositionService) evictSeatedMembers(ctx context.Context, positionID uuid.UUID) {
	seated, err := s.members.GetByPositionID(ctx, positionID)
	if err != nil {
		composables.UseLogger(ctx).WithError(err).
			WithField("position_id", positionID).
			Error("failed to list members for cache eviction")
		return
	}
	s.cache.EvictMembers(ctx, seated)
}

// diffPermissions splits the transition old -> new into granted and revoked
// catalog ids.
func diffPermissions(old, new []*permission.Permission) (added, removed []int) {
	oldSet := make(map[int]bool, len(old))
	for _, p := range old {
		oldSet[p.ID] = true
	}
	newSet := make(map[int]bool, len(new))
	for _, p := range new {
		newSet[p.ID] = true
		if !oldSet[p.ID] {
			added = append(added, p.ID)
		}
	}
	for _, p := range old {
		if !newSet[p.ID] {
			removed = append(removed, p.ID)
		}
	}
	return added, removed
}
