package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/member"
	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/position"
	"github.com/yoku/guildmaster/modules/organisation/domain/entities/permission"
	"github.com/yoku/guildmaster/modules/organisation/domain/entities/userprofile"
	"github.com/yoku/guildmaster/modules/organisation/permissions"
	"github.com/yoku/guildmaster/pkg/composables"
	"github.com/yoku/guildmaster/pkg/httpapi"
	"github.com/yoku/guildmaster/pkg/serrors"
)

func TestMemberService_Remove_CreatorGuard(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, _, lead := seedOrg(t, f, creatorID, permissions.MemberRemove)

	admin := uuid.New()
	seatMember(t, f, org.ID(), admin, lead.ID())

	// Not even a member with MEMBER_REMOVE on an equal-rank position can
	// remove the creator; the creator cannot remove themself either.
	err := f.memService.Remove(ctxAs(admin), org.ID(), creatorID)
	require.ErrorIs(t, err, member.ErrCreatorRemoval)

	err = f.memService.Remove(ctxAs(creatorID), org.ID(), creatorID)
	require.ErrorIs(t, err, member.ErrCreatorRemoval)

	// The guard is an authorization failure, not a malformed request.
	var base *serrors.BaseError
	require.True(t, errors.As(err, &base))
	assert.Equal(t, serrors.KindPermissionDenied, base.Kind())
	assert.Equal(t, http.StatusForbidden, httpapi.StatusForKind(base.Kind()))
}

func TestMemberService_Remove_SelfLeave(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, def, _ := seedOrg(t, f, creatorID)

	// Seated on a position with no permissions at all.
	leaver := uuid.New()
	seatMember(t, f, org.ID(), leaver, def.ID())

	require.NoError(t, f.memService.Remove(ctxAs(leaver), org.ID(), leaver))

	_, err := f.members.Get(context.Background(), org.ID(), leaver)
	require.ErrorIs(t, err, member.ErrNotFound)
}

func TestMemberService_Remove_RankHierarchy(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, def, lead := seedOrg(t, f, creatorID, permissions.MemberRemove)

	peer := uuid.New()
	seatMember(t, f, org.ID(), peer, lead.ID())
	junior := uuid.New()
	seatMember(t, f, org.ID(), junior, def.ID())

	// Equal rank: denied even though the requester holds MEMBER_REMOVE.
	err := f.memService.Remove(ctxAs(creatorID), org.ID(), peer)
	require.ErrorIs(t, err, composables.ErrForbidden)

	// Strictly higher rank: allowed.
	require.NoError(t, f.memService.Remove(ctxAs(creatorID), org.ID(), junior))
	_, err = f.members.Get(context.Background(), org.ID(), junior)
	require.ErrorIs(t, err, member.ErrNotFound)
}

func TestMemberService_Remove_UnknownMember(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, _, _ := seedOrg(t, f, creatorID, permissions.MemberRemove)

	err := f.memService.Remove(ctxAs(creatorID), org.ID(), uuid.New())
	require.ErrorIs(t, err, member.ErrNotFound)
}

func TestMemberService_MoveToPosition(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, def, _ := seedOrg(t, f, creatorID, permissions.MemberUpdateRole)
	ctx := ctxAs(creatorID)

	target, err := f.positions.Create(context.Background(), position.New(org.ID(), "Trusted", 3))
	require.NoError(t, err)

	mover := uuid.New()
	seatMember(t, f, org.ID(), mover, def.ID())

	require.NoError(t, f.memService.MoveToPosition(ctx, mover, def.ID(), target.ID()))

	m, err := f.members.Get(context.Background(), org.ID(), mover)
	require.NoError(t, err)
	assert.Equal(t, target.ID(), m.PositionID())

	// Same source and destination is rejected outright.
	err = f.memService.MoveToPosition(ctx, mover, target.ID(), target.ID())
	require.ErrorIs(t, err, member.ErrSamePosition)

	// Stale source position no longer matches the member's seat.
	err = f.memService.MoveToPosition(ctx, mover, def.ID(), target.ID())
	require.ErrorIs(t, err, member.ErrNotFound)
}

func TestMemberService_MoveToPosition_EvictsCache(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, def, _ := seedOrg(t, f, creatorID, permissions.MemberUpdateRole)
	ctx := ctxAs(creatorID)

	target, err := f.positions.Create(context.Background(), position.New(org.ID(), "Trusted", 3,
		position.WithPermissions([]*permission.Permission{permissions.SurveyCreate})))
	require.NoError(t, err)

	mover := uuid.New()
	seatMember(t, f, org.ID(), mover, def.ID())

	cached, err := f.cacheService.UserPosition(ctx, org.ID(), mover)
	require.NoError(t, err)
	assert.Equal(t, def.ID(), cached.ID())

	require.NoError(t, f.memService.MoveToPosition(ctx, mover, def.ID(), target.ID()))

	fresh, err := f.cacheService.UserPosition(ctx, org.ID(), mover)
	require.NoError(t, err)
	assert.Equal(t, target.ID(), fresh.ID())
	assert.ElementsMatch(t, []int{permissions.SurveyCreate.ID}, fresh.PermissionIDs())
}

func TestMemberService_GetByOrganisationID_DirectoryDegradation(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, _, _ := seedOrg(t, f, creatorID)
	f.directory.profiles = []userprofile.Profile{
		{ID: creatorID, Email: "creator@acme.test", Name: "Creator"},
	}

	enriched, err := f.memService.GetByOrganisationID(context.Background(), org.ID())
	require.NoError(t, err)
	require.Len(t, enriched, 1)
	require.NotNil(t, enriched[0].Profile)
	assert.Equal(t, "Creator", enriched[0].Profile.Name)

	// A failing directory still returns the membership, just without profiles.
	f.directory.Fail = true
	degraded, err := f.memService.GetByOrganisationID(context.Background(), org.ID())
	require.NoError(t, err)
	require.Len(t, degraded, 1)
	assert.Nil(t, degraded[0].Profile)
}
