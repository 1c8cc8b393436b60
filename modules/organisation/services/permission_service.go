package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/position"
	"github.com/yoku/guildmaster/modules/organisation/domain/entities/permission"
	"github.com/yoku/guildmaster/pkg/composables"
)

// PermissionService evaluates whether a member's position satisfies a
// required permission. The predicates are pure; the Require helpers resolve
// positions through the cache and convert absence into ErrForbidden.
type PermissionService struct {
	positions *PositionCacheService
}

func NewPermissionService(positions *PositionCacheService) *PermissionService {
	return &PermissionService{positions: positions}
}

// HasPermission reports whether the position's permission set contains perm.
func (s *PermissionService) HasPermission(pos position.Position, perm *permission.Permission) bool {
	for _, held := range pos.Permissions() {
		if held.ID == perm.ID {
			return true
		}
	}
	return false
}

// HasPermissionOver reports whether pos holds perm AND strictly outranks the
// target position. Equal rank is insufficient: peers cannot act on each
// other.
func (s *PermissionService) HasPermissionOver(pos, target position.Position, perm *permission.Permission) bool {
	return s.HasPermission(pos, perm) && pos.Rank() > target.Rank()
}

// Require resolves the acting user's position in the organisation and checks
// perm against it, honouring the permission's hierarchy flag when a target
// position is supplied. Returns the resolved position on success and
// ErrForbidden on any denial, including the user not being a member at all.
func (s *PermissionService) Require(ctx context.Context, organisationID uuid.UUID, perm *permission.Permission) (position.Position, error) {
	userID, ok := composables.UseUserID(ctx)
	if !ok {
		return position.Position{}, composables.ErrForbidden
	}

	pos, err := s.positions.UserPosition(ctx, organisationID, userID)
	if err != nil {
		return position.Position{}, composables.ErrForbidden
	}
	if !s.HasPermission(pos, perm) {
		return position.Position{}, composables.ErrForbidden
	}
	return pos, nil
}

// RequireOver is Require plus the strict rank comparison against the position
// held by targetUserID.
func (s *PermissionService) RequireOver(ctx context.Context, organisationID, targetUserID uuid.UUID, perm *permission.Permission) (position.Position, error) {
	pos, err := s.Require(ctx, organisationID, perm)
	if err != nil {
		return position.Position{}, err
	}

	target, err := s.positions.UserPosition(ctx, organisationID, targetUserID)
	if err != nil {
		return position.Position{}, composables.ErrForbidden
	}
	if !s.HasPermissionOver(pos, target, perm) {
		return position.Position{}, composables.ErrForbidden
	}
	return pos, nil
}
