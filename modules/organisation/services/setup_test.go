package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/member"
	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/organisation"
	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/position"
	"github.com/yoku/guildmaster/modules/organisation/domain/entities/permission"
	"github.com/yoku/guildmaster/modules/organisation/domain/entities/userprofile"
	"github.com/yoku/guildmaster/modules/organisation/infrastructure/persistence"
	"github.com/yoku/guildmaster/modules/organisation/services"
	"github.com/yoku/guildmaster/pkg/cache"
	"github.com/yoku/guildmaster/pkg/composables"
	"github.com/yoku/guildmaster/pkg/eventbus"
)

// stubDirectory is a canned user directory; Fail switches every lookup into
// an error to exercise degradation paths.
type stubDirectory struct {
	profiles []userprofile.Profile
	Fail     bool
}

func (d *stubDirectory) FindByEmail(_ context.Context, email string) (userprofile.Profile, error) {
	if d.Fail {
		return userprofile.Profile{}, context.DeadlineExceeded
	}
	for _, p := range d.profiles {
		if strings.EqualFold(p.Email, email) {
			return p, nil
		}
	}
	return userprofile.Profile{}, context.DeadlineExceeded
}

func (d *stubDirectory) FindByIDs(_ context.Context, ids []uuid.UUID) ([]userprofile.Profile, error) {
	if d.Fail {
		return nil, context.DeadlineExceeded
	}
	out := make([]userprofile.Profile, 0, len(ids))
	for _, id := range ids {
		for _, p := range d.profiles {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

type fixture struct {
	orgs      *persistence.InmemOrganisationRepository
	positions *persistence.InmemPositionRepository
	members   *persistence.InmemMemberRepository
	invites   *persistence.InmemInvitationRepository
	store     cache.Store
	directory *stubDirectory

	cacheService *services.PositionCacheService
	perms        *services.PermissionService
	orgService   *services.OrganisationService
	posService   *services.PositionService
	memService   *services.MemberService
	invService   *services.InvitationService
}

func setupTest(t *testing.T) *fixture {
	t.Helper()

	members := persistence.NewInmemMemberRepository()
	positions := persistence.NewInmemPositionRepository(members)
	orgs := persistence.NewInmemOrganisationRepository()
	invites := persistence.NewInmemInvitationRepository()
	store := cache.NewInmemStore()
	directory := &stubDirectory{}
	publisher := eventbus.NewEventPublisher(logrus.New())

	cacheService := services.NewPositionCacheService(positions, store, time.Hour)
	perms := services.NewPermissionService(cacheService)
	memService := services.NewMemberService(members, orgs, positions, cacheService, perms, directory, publisher)

	return &fixture{
		orgs:         orgs,
		positions:    positions,
		members:      members,
		invites:      invites,
		store:        store,
		directory:    directory,
		cacheService: cacheService,
		perms:        perms,
		orgService:   services.NewOrganisationService(orgs, positions, members, perms, publisher),
		posService:   services.NewPositionService(positions, members, perms, cacheService, publisher),
		memService:   memService,
		invService: services.NewInvitationService(
			invites, orgs, memService, perms, directory, publisher, 7*24*time.Hour,
		),
	}
}

// ctxAs returns a context acting as the given user.
func ctxAs(userID uuid.UUID) context.Context {
	return composables.WithUserID(context.Background(), userID)
}

// seedOrg creates an organisation with a low-rank default position and the
// creator seated on a high-rank position holding every given permission.
func seedOrg(t *testing.T, f *fixture, creatorID uuid.UUID, creatorPerms ...*permission.Permission) (organisation.Organisation, position.Position, position.Position) {
	t.Helper()
	ctx := context.Background()

	org, err := f.orgs.Create(ctx, organisation.New(creatorID, "Acme "+uuid.NewString()[:8], "", uuid.NewString()[:8]+"@acme.test"))
	require.NoError(t, err)

	def, err := f.positions.Create(ctx, position.New(org.ID(), "Member", 1, position.WithDefault(true)))
	require.NoError(t, err)

	lead, err := f.positions.Create(ctx, position.New(org.ID(), "Lead", 5, position.WithPermissions(creatorPerms)))
	require.NoError(t, err)

	_, err = f.members.Create(ctx, member.New(org.ID(), creatorID, lead.ID()))
	require.NoError(t, err)

	return org, def, lead
}

// seatMember adds a user to the organisation on the given position.
func seatMember(t *testing.T, f *fixture, orgID, userID, positionID uuid.UUID) member.Member {
	t.Helper()
	m, err := f.members.Create(context.Background(), member.New(orgID, userID, positionID))
	require.NoError(t, err)
	return m
}
