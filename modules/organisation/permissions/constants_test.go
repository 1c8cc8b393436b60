package permissions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoku/guildmaster/modules/organisation/permissions"
)

func TestCatalog_UniqueIdentifiers(t *testing.T) {
	t.Parallel()

	ids := map[int]string{}
	names := map[string]bool{}
	for _, p := range permissions.Permissions {
		require.NotZero(t, p.ID, "permission %q has no id", p.Name)
		require.NotEmpty(t, p.Name)
		if other, taken := ids[p.ID]; taken {
			t.Fatalf("id %d shared by %q and %q", p.ID, other, p.Name)
		}
		ids[p.ID] = p.Name
		require.False(t, names[p.Name], "duplicate name %q", p.Name)
		names[p.Name] = true
	}
}

func TestCatalog_Lookups(t *testing.T) {
	t.Parallel()

	for _, p := range permissions.Permissions {
		assert.Same(t, p, permissions.ByID(p.ID))
		assert.Same(t, p, permissions.ByName(p.Name))
	}
	assert.Nil(t, permissions.ByID(0))
	assert.Nil(t, permissions.ByName("NO_SUCH_PERMISSION"))
}
