package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/position"
	"github.com/yoku/guildmaster/modules/organisation/domain/entities/permission"
	"github.com/yoku/guildmaster/modules/organisation/permissions"
)

func TestPositionService_Create_DefaultSwap(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, def, _ := seedOrg(t, f, creatorID, permissions.RoleCreate)
	ctx := ctxAs(creatorID)

	created, err := f.posService.Create(ctx, position.New(org.ID(), "Trusted", 3, position.WithDefault(true)))
	require.NoError(t, err)
	assert.True(t, created.IsDefault())

	// The previous default lost its flag; exactly one default remains.
	all, err := f.positions.GetByOrganisationID(context.Background(), org.ID())
	require.NoError(t, err)
	defaults := 0
	for _, pos := range all {
		if pos.IsDefault() {
			defaults++
			assert.Equal(t, created.ID(), pos.ID())
		}
	}
	assert.Equal(t, 1, defaults)

	old, err := f.positions.GetByID(context.Background(), def.ID())
	require.NoError(t, err)
	assert.False(t, old.IsDefault())
}

func TestPositionService_Create_RequiresRoleCreate(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, def, _ := seedOrg(t, f, creatorID, permissions.MemberInvite)

	outsider := uuid.New()
	seatMember(t, f, org.ID(), outsider, def.ID())

	_, err := f.posService.Create(ctxAs(outsider), position.New(org.ID(), "Trusted", 3))
	require.Error(t, err)
	_, err = f.posService.Create(ctxAs(creatorID), position.New(org.ID(), "Trusted", 3))
	require.Error(t, err, "creator position lacks ROLE_CREATE here")
}

func TestPositionService_Update_PermissionRoundTrip(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, _, _ := seedOrg(t, f, creatorID, permissions.RoleUpdate)
	ctx := ctxAs(creatorID)

	pos, err := f.positions.Create(context.Background(), position.New(org.ID(), "Trusted", 3,
		position.WithPermissions([]*permission.Permission{permissions.MemberInvite, permissions.SurveyCreate})))
	require.NoError(t, err)

	// New set drops SurveyCreate, keeps MemberInvite, adds MemberRemove.
	updated, err := f.posService.Update(ctx, pos.ID(), "Trusted", 4, false,
		[]*permission.Permission{permissions.MemberInvite, permissions.MemberRemove})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rank())
	assert.ElementsMatch(t, []int{permissions.MemberInvite.ID, permissions.MemberRemove.ID}, updated.PermissionIDs())
}

func TestPositionService_Update_CannotUndefault(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	_, def, _ := seedOrg(t, f, creatorID, permissions.RoleUpdate)

	_, err := f.posService.Update(ctxAs(creatorID), def.ID(), def.Name(), def.Rank(), false, nil)
	require.ErrorIs(t, err, position.ErrDefaultFlagRemoval)
}

func TestPositionService_Update_EvictsSeatedMembers(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, _, lead := seedOrg(t, f, creatorID, permissions.RoleUpdate)
	ctx := ctxAs(creatorID)

	// Populate the cache for the creator, seated on the position under update.
	_, err := f.cacheService.UserPosition(ctx, org.ID(), creatorID)
	require.NoError(t, err)

	_, err = f.posService.Update(ctx, lead.ID(), lead.Name(), lead.Rank(), false,
		[]*permission.Permission{permissions.RoleUpdate, permissions.MemberInvite})
	require.NoError(t, err)

	// The next read sees the fresh permission set, not the cached one.
	pos, err := f.cacheService.UserPosition(ctx, org.ID(), creatorID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{permissions.RoleUpdate.ID, permissions.MemberInvite.ID}, pos.PermissionIDs())
}

func TestPositionService_Remove_MigratesMembers(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, def, _ := seedOrg(t, f, creatorID, permissions.RoleDelete)
	ctx := ctxAs(creatorID)

	doomed, err := f.positions.Create(context.Background(), position.New(org.ID(), "Doomed", 2))
	require.NoError(t, err)

	users := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, u := range users {
		seatMember(t, f, org.ID(), u, doomed.ID())
	}

	require.NoError(t, f.posService.Remove(ctx, doomed.ID(), def.ID()))

	_, err = f.positions.GetByID(context.Background(), doomed.ID())
	require.ErrorIs(t, err, position.ErrNotFound)

	for _, u := range users {
		m, err := f.members.Get(context.Background(), org.ID(), u)
		require.NoError(t, err)
		assert.Equal(t, def.ID(), m.PositionID())
	}
}

func TestPositionService_Remove_DefaultForbidden(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, def, _ := seedOrg(t, f, creatorID, permissions.RoleDelete)

	other, err := f.positions.Create(context.Background(), position.New(org.ID(), "Other", 2))
	require.NoError(t, err)

	err = f.posService.Remove(ctxAs(creatorID), def.ID(), other.ID())
	require.ErrorIs(t, err, position.ErrDefaultDelete)
}

func TestPositionService_Remove_ReplacementOrgMismatch(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, _, _ := seedOrg(t, f, creatorID, permissions.RoleDelete)
	_, otherDef, _ := seedOrg(t, f, uuid.New(), permissions.RoleDelete)

	doomed, err := f.positions.Create(context.Background(), position.New(org.ID(), "Doomed", 2))
	require.NoError(t, err)

	err = f.posService.Remove(ctxAs(creatorID), doomed.ID(), otherDef.ID())
	require.Error(t, err)
}
