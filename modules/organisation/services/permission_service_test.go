package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/position"
	"github.com/yoku/guildmaster/modules/organisation/domain/entities/permission"
	"github.com/yoku/guildmaster/modules/organisation/permissions"
	"github.com/yoku/guildmaster/pkg/composables"
)

func TestPermissionService_HasPermission(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	orgID := uuid.New()
	holder := position.New(orgID, "Moderator", 5,
		position.WithPermissions([]*permission.Permission{permissions.MemberInvite, permissions.MemberRemove}))

	assert.True(t, f.perms.HasPermission(holder, permissions.MemberInvite))
	assert.True(t, f.perms.HasPermission(holder, permissions.MemberRemove))
	assert.False(t, f.perms.HasPermission(holder, permissions.RoleCreate))
}

func TestPermissionService_HasPermissionOver_StrictRank(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	orgID := uuid.New()
	holder := position.New(orgID, "Moderator", 5,
		position.WithPermissions([]*permission.Permission{permissions.MemberRemove}))

	junior := position.New(orgID, "Member", 1)
	peer := position.New(orgID, "Other Moderator", 5)
	senior := position.New(orgID, "Admin", 9)

	assert.True(t, f.perms.HasPermissionOver(holder, junior, permissions.MemberRemove))
	// Equal rank is never enough, even with the permission held.
	assert.False(t, f.perms.HasPermissionOver(holder, peer, permissions.MemberRemove))
	assert.False(t, f.perms.HasPermissionOver(holder, senior, permissions.MemberRemove))
}

func TestPermissionService_Require_NonMember(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, _, _ := seedOrg(t, f, creatorID, permissions.MemberInvite)

	stranger := uuid.New()
	_, err := f.perms.Require(ctxAs(stranger), org.ID(), permissions.MemberInvite)
	require.ErrorIs(t, err, composables.ErrForbidden)

	_, err = f.perms.Require(ctxAs(creatorID), org.ID(), permissions.MemberInvite)
	require.NoError(t, err)
}
