package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/organisation"
	"github.com/yoku/guildmaster/modules/organisation/permissions"
	"github.com/yoku/guildmaster/pkg/composables"
)

func TestOrganisationService_Create_Bootstrap(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, err := f.orgService.Create(context.Background(),
		organisation.New(creatorID, "Acme", "widgets", "contact@acme.test"))
	require.NoError(t, err)

	// The creator is seated on a default position holding every permission.
	pos, err := f.positions.FindUserPosition(context.Background(), org.ID(), creatorID)
	require.NoError(t, err)
	assert.True(t, pos.IsDefault())
	assert.Len(t, pos.Permissions(), len(permissions.Permissions))

	def, err := f.positions.GetDefault(context.Background(), org.ID())
	require.NoError(t, err)
	assert.Equal(t, pos.ID(), def.ID())
}

func TestOrganisationService_Create_NameTaken(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	_, err := f.orgService.Create(context.Background(),
		organisation.New(uuid.New(), "Acme", "", "one@acme.test"))
	require.NoError(t, err)

	_, err = f.orgService.Create(context.Background(),
		organisation.New(uuid.New(), "acme", "", "two@acme.test"))
	require.ErrorIs(t, err, organisation.ErrNameTaken)
}

func TestOrganisationService_Update_RequiresEdit(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, def, _ := seedOrg(t, f, creatorID, permissions.OrganisationEdit)

	plain := uuid.New()
	seatMember(t, f, org.ID(), plain, def.ID())

	renamed := org.Updated("Acme Renamed", org.Description(), org.Email(), org.AvatarURL(), org.Public())

	_, err := f.orgService.Update(ctxAs(plain), renamed)
	require.ErrorIs(t, err, composables.ErrForbidden)

	updated, err := f.orgService.Update(ctxAs(creatorID), renamed)
	require.NoError(t, err)
	assert.Equal(t, "Acme Renamed", updated.Name())
}

func TestOrganisationService_Delete_RequiresDelete(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	creatorID := uuid.New()
	org, _, _ := seedOrg(t, f, creatorID, permissions.OrganisationEdit)

	// ORG_EDIT is not enough.
	err := f.orgService.Delete(ctxAs(creatorID), org.ID())
	require.ErrorIs(t, err, composables.ErrForbidden)

	org2, _, _ := seedOrg(t, f, creatorID, permissions.OrganisationDelete)
	require.NoError(t, f.orgService.Delete(ctxAs(creatorID), org2.ID()))

	_, err = f.orgs.GetByID(context.Background(), org2.ID())
	require.ErrorIs(t, err, organisation.ErrNotFound)
}
