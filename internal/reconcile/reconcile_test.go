package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vortextricks/vortextricks/internal/inventory"
	"github.com/vortextricks/vortextricks/internal/logging"
	"github.com/vortextricks/vortextricks/internal/registry"
)

const catalog = `
[[games]]
name = "Foo"
game_id = "foo"
steamapp_ids = ["1"]
gog_id = "2"

[[games]]
name = "Bar"
game_id = "bar"
steamapp_ids = ["3"]

[[games]]
name = "Baz"
game_id = "baz"
gog_id = "4"
`

func libraries(t *testing.T, steamRaw []inventory.RawEntry, gogRaw []inventory.RawEntry) (map[string]inventory.InstalledGame, map[string]inventory.InstalledGame) {
	t.Helper()
	reg, err := registry.Load([]byte(catalog), "games.toml")
	require.NoError(t, err)
	steam, err := inventory.Normalize(inventory.StoreSteam, steamRaw, reg, logging.Discard())
	require.NoError(t, err)
	gog, err := inventory.Normalize(inventory.StoreGOG, gogRaw, reg, logging.Discard())
	require.NoError(t, err)
	return steam, gog
}

func TestReconcileOrderingAndCollisions(t *testing.T) {
	t.Parallel()
	steam, gog := libraries(t,
		[]inventory.RawEntry{
			{LocalID: "1", InstallPath: "/s/foo"},
			{LocalID: "3", InstallPath: "/s/bar"},
			{LocalID: "999", InstallPath: "/s/unknown"},
		},
		[]inventory.RawEntry{
			{LocalID: "2", InstallPath: "/g/foo"},
			{LocalID: "4", InstallPath: "/g/baz"},
		},
	)

	identities, err := Reconcile(steam, gog)
	require.NoError(t, err)
	require.Len(t, identities, 3)

	// Deterministic ordering by game id ascending.
	assert.Equal(t, "bar", identities[0].GameID)
	assert.Equal(t, "baz", identities[1].GameID)
	assert.Equal(t, "foo", identities[2].GameID)

	assert.False(t, identities[0].Colliding())
	assert.False(t, identities[1].Colliding())

	foo := identities[2]
	require.True(t, foo.Colliding())
	require.Len(t, foo.Occurrences, 2)
	assert.Equal(t, inventory.StoreSteam, foo.Occurrences[0].Store)
	assert.Equal(t, inventory.StoreGOG, foo.Occurrences[1].Store)
	assert.Equal(t, "Foo", foo.DisplayName())
}

func TestReconcileDeterministic(t *testing.T) {
	t.Parallel()
	steam, gog := libraries(t,
		[]inventory.RawEntry{{LocalID: "1", InstallPath: "/s/foo"}, {LocalID: "3", InstallPath: "/s/bar"}},
		[]inventory.RawEntry{{LocalID: "2", InstallPath: "/g/foo"}},
	)
	first, err := Reconcile(steam, gog)
	require.NoError(t, err)
	second, err := Reconcile(steam, gog)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestReconcileSkipsUnmatched(t *testing.T) {
	t.Parallel()
	steam, gog := libraries(t, []inventory.RawEntry{{LocalID: "999", InstallPath: "/s/unknown"}}, nil)
	identities, err := Reconcile(steam, gog)
	require.NoError(t, err)
	assert.Empty(t, identities)
}

func TestReconcileSameStoreTwiceIsCorrupt(t *testing.T) {
	t.Parallel()
	steam, _ := libraries(t, []inventory.RawEntry{{LocalID: "1", InstallPath: "/s/foo"}}, nil)
	// Feeding the steam library through the gog parameter simulates an
	// upstream bug that bypasses the per-store uniqueness check.
	_, err := Reconcile(steam, steam)
	require.ErrorIs(t, err, ErrCorruptInventory)
}
