package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/invitation"
	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/member"
	"github.com/yoku/guildmaster/modules/organisation/domain/entities/userprofile"
	"github.com/yoku/guildmaster/modules/organisation/permissions"
	"github.com/yoku/guildmaster/modules/organisation/services"
)

func TestInvitationService_Create_DuplicatePending(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, _, _ := seedOrg(t, f, creatorID, permissions.MemberInvite)
	ctx := ctxAs(creatorID)

	first, err := f.invService.Create(ctx, org.ID(), "guest@acme.test", uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, invitation.StatusPending, first.Invitation.Status())

	// Case differences do not open a second pending slot.
	_, err = f.invService.Create(ctx, org.ID(), "Guest@Acme.Test", uuid.Nil)
	require.ErrorIs(t, err, invitation.ErrActiveInviteExists)
}

func TestInvitationService_Create_EmailMismatch(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, _, _ := seedOrg(t, f, creatorID, permissions.MemberInvite)

	knownID := uuid.New()
	f.directory.profiles = []userprofile.Profile{{ID: knownID, Email: "real@acme.test"}}

	_, err := f.invService.Create(ctxAs(creatorID), org.ID(), "other@acme.test", knownID)
	require.ErrorIs(t, err, invitation.ErrEmailMismatch)
}

func TestInvitationService_Create_StoresKnownUserID(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, _, _ := seedOrg(t, f, creatorID, permissions.MemberInvite)

	knownID := uuid.New()
	f.directory.profiles = []userprofile.Profile{{ID: knownID, Email: "guest@acme.test"}}

	created, err := f.invService.Create(ctxAs(creatorID), org.ID(), "guest@acme.test", knownID)
	require.NoError(t, err)
	assert.Equal(t, knownID, created.Invitation.UserID())

	stored, err := f.invites.GetByID(context.Background(), created.Invitation.ID())
	require.NoError(t, err)
	assert.Equal(t, knownID, stored.UserID())

	// Without a known user the invitation stays email-only.
	emailOnly, err := f.invService.Create(ctxAs(creatorID), org.ID(), "other@acme.test", uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, emailOnly.Invitation.UserID())
}

func TestInvitationService_GetByUserID(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, _, _ := seedOrg(t, f, creatorID, permissions.MemberInvite)

	guestID := uuid.New()
	f.directory.profiles = []userprofile.Profile{{ID: guestID, Email: "guest@acme.test"}}

	pinned, err := f.invService.Create(ctxAs(creatorID), org.ID(), "guest@acme.test", guestID)
	require.NoError(t, err)

	listed, err := f.invService.GetByUserID(context.Background(), guestID, invitation.StatusPending)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, pinned.Invitation.ID(), listed[0].Invitation.ID())

	// The stored user id resolves the listing even when the directory is down.
	f.directory.Fail = true
	degraded, err := f.invService.GetByUserID(context.Background(), guestID, invitation.StatusPending)
	require.NoError(t, err)
	require.Len(t, degraded, 1)
	assert.Equal(t, pinned.Invitation.ID(), degraded[0].Invitation.ID())
}

func TestInvitationService_GetByUserID_MergesEmailMatches(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	orgA, _, _ := seedOrg(t, f, creatorID, permissions.MemberInvite)
	orgB, _, _ := seedOrg(t, f, creatorID, permissions.MemberInvite)

	guestID := uuid.New()
	f.directory.profiles = []userprofile.Profile{{ID: guestID, Email: "guest@acme.test"}}

	// One invitation pinned to the user, one addressed only to the email.
	pinned, err := f.invService.Create(ctxAs(creatorID), orgA.ID(), "guest@acme.test", guestID)
	require.NoError(t, err)
	emailOnly, err := f.invService.Create(ctxAs(creatorID), orgB.ID(), "guest@acme.test", uuid.Nil)
	require.NoError(t, err)

	listed, err := f.invService.GetByUserID(context.Background(), guestID, invitation.StatusPending)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	ids := []uuid.UUID{listed[0].Invitation.ID(), listed[1].Invitation.ID()}
	assert.ElementsMatch(t, []uuid.UUID{pinned.Invitation.ID(), emailOnly.Invitation.ID()}, ids)
}

func TestInvitationService_Accept(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, def, _ := seedOrg(t, f, creatorID, permissions.MemberInvite)

	guestID := uuid.New()
	f.directory.profiles = []userprofile.Profile{{ID: guestID, Email: "guest@acme.test"}}

	created, err := f.invService.Create(ctxAs(creatorID), org.ID(), "guest@acme.test", uuid.Nil)
	require.NoError(t, err)
	token := created.Invitation.Token()

	added, err := f.invService.Accept(context.Background(), token, "guest@acme.test")
	require.NoError(t, err)
	assert.Equal(t, guestID, added.UserID())
	assert.Equal(t, def.ID(), added.PositionID(), "accepted members land on the default position")

	settled, err := f.invites.GetByID(context.Background(), created.Invitation.ID())
	require.NoError(t, err)
	assert.Equal(t, invitation.StatusAccepted, settled.Status())

	// Settled tokens do not resolve a second time.
	_, err = f.invService.Accept(context.Background(), token, "guest@acme.test")
	require.ErrorIs(t, err, invitation.ErrNotFound)
}

func TestInvitationService_Accept_WrongEmail(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, _, _ := seedOrg(t, f, creatorID, permissions.MemberInvite)

	f.directory.profiles = []userprofile.Profile{
		{ID: uuid.New(), Email: "guest@acme.test"},
		{ID: uuid.New(), Email: "impostor@acme.test"},
	}

	created, err := f.invService.Create(ctxAs(creatorID), org.ID(), "guest@acme.test", uuid.Nil)
	require.NoError(t, err)

	_, err = f.invService.Accept(context.Background(), created.Invitation.Token(), "impostor@acme.test")
	require.ErrorIs(t, err, invitation.ErrEmailMismatch)
}

func TestInvitationService_Accept_UnknownUser(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, _, _ := seedOrg(t, f, creatorID, permissions.MemberInvite)

	created, err := f.invService.Create(ctxAs(creatorID), org.ID(), "ghost@acme.test", uuid.Nil)
	require.NoError(t, err)

	_, err = f.invService.Accept(context.Background(), created.Invitation.Token(), "ghost@acme.test")
	require.ErrorIs(t, err, services.ErrUnknownUser)
}

func TestInvitationService_Accept_Expired(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, _, _ := seedOrg(t, f, creatorID)

	f.directory.profiles = []userprofile.Profile{{ID: uuid.New(), Email: "late@acme.test"}}

	now := time.Now()
	stale := invitation.Hydrate(
		uuid.New(), org.ID(), uuid.Nil, "late@acme.test", invitation.NewToken(),
		invitation.StatusPending, now.Add(-time.Hour), now.Add(-8*24*time.Hour), now.Add(-8*24*time.Hour),
	)
	_, err := f.invites.Create(context.Background(), stale)
	require.NoError(t, err)

	_, err = f.invService.Accept(context.Background(), stale.Token(), "late@acme.test")
	require.ErrorIs(t, err, invitation.ErrNoLongerValid)
}

func TestInvitationService_Reject(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, _, _ := seedOrg(t, f, creatorID, permissions.MemberInvite)

	created, err := f.invService.Create(ctxAs(creatorID), org.ID(), "guest@acme.test", uuid.Nil)
	require.NoError(t, err)

	require.NoError(t, f.invService.Reject(context.Background(), created.Invitation.Token(), "guest@acme.test"))

	settled, err := f.invites.GetByID(context.Background(), created.Invitation.ID())
	require.NoError(t, err)
	assert.Equal(t, invitation.StatusRejected, settled.Status())

	// No membership was created for a rejection.
	_, err = f.members.GetByOrganisationID(context.Background(), org.ID())
	require.NoError(t, err)
}

func TestInvitationService_Revoke(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, _, _ := seedOrg(t, f, creatorID, permissions.MemberInvite)
	ctx := ctxAs(creatorID)

	created, err := f.invService.Create(ctx, org.ID(), "guest@acme.test", uuid.Nil)
	require.NoError(t, err)

	require.NoError(t, f.invService.Revoke(ctx, org.ID(), "guest@acme.test"))

	_, err = f.invites.GetByID(context.Background(), created.Invitation.ID())
	require.ErrorIs(t, err, invitation.ErrNotFound)

	// Revoking again finds nothing pending.
	err = f.invService.Revoke(ctx, org.ID(), "guest@acme.test")
	require.ErrorIs(t, err, services.ErrNoPendingInvite)
}

func TestInvitationService_ExpireStalePending(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, _, _ := seedOrg(t, f, creatorID, permissions.MemberInvite)

	now := time.Now()
	stale := invitation.Hydrate(
		uuid.New(), org.ID(), uuid.Nil, "stale@acme.test", invitation.NewToken(),
		invitation.StatusPending, now.Add(-time.Minute), now.Add(-8*24*time.Hour), now.Add(-8*24*time.Hour),
	)
	_, err := f.invites.Create(context.Background(), stale)
	require.NoError(t, err)
	_, err = f.invService.Create(ctxAs(creatorID), org.ID(), "fresh@acme.test", uuid.Nil)
	require.NoError(t, err)

	expired, err := f.invService.ExpireStalePending(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, expired)

	// A second sweep finds nothing left to expire.
	expired, err = f.invService.ExpireStalePending(context.Background())
	require.NoError(t, err)
	assert.Zero(t, expired)

	got, err := f.invites.GetByID(context.Background(), stale.ID())
	require.NoError(t, err)
	assert.Equal(t, invitation.StatusExpired, got.Status())
}

// Full membership lifecycle: invite, accept onto the default position,
// promote, then leave.
func TestInvitationService_Lifecycle(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, def, lead := seedOrg(t, f, creatorID,
		permissions.MemberInvite, permissions.MemberUpdateRole, permissions.MemberRemove)
	ctx := ctxAs(creatorID)

	guestID := uuid.New()
	f.directory.profiles = []userprofile.Profile{{ID: guestID, Email: "guest@acme.test"}}

	created, err := f.invService.Create(ctx, org.ID(), "guest@acme.test", guestID)
	require.NoError(t, err)
	require.NotNil(t, created.User)

	added, err := f.invService.Accept(context.Background(), created.Invitation.Token(), "guest@acme.test")
	require.NoError(t, err)
	assert.Equal(t, def.ID(), added.PositionID())

	require.NoError(t, f.memService.MoveToPosition(ctx, guestID, def.ID(), lead.ID()))

	m, err := f.members.Get(context.Background(), org.ID(), guestID)
	require.NoError(t, err)
	assert.Equal(t, lead.ID(), m.PositionID())

	require.NoError(t, f.memService.Remove(ctxAs(guestID), org.ID(), guestID))
	_, err = f.members.Get(context.Background(), org.ID(), guestID)
	require.ErrorIs(t, err, member.ErrNotFound)
}
