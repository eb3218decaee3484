package reconcile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vortextricks/vortextricks/internal/inventory"
	"github.com/vortextricks/vortextricks/internal/registry"
)

func specFor(t *testing.T, gameID string) *registry.GameSpec {
	t.Helper()
	reg, err := registry.Load([]byte(catalog), "games.toml")
	require.NoError(t, err)
	for _, g := range reg.Games() {
		if g.GameID == gameID {
			spec := g
			return &spec
		}
	}
	t.Fatalf("no spec %q in test catalog", gameID)
	return nil
}

func collidingIdentity(t *testing.T) Identity {
	t.Helper()
	spec := specFor(t, "foo")
	return Identity{
		GameID: "foo",
		Occurrences: []inventory.InstalledGame{
			{Store: inventory.StoreSteam, LocalID: "1", InstallPath: "/s/foo", Spec: spec},
			{Store: inventory.StoreGOG, LocalID: "2", InstallPath: "/g/foo", Spec: spec},
		},
	}
}

func singleIdentity(t *testing.T) Identity {
	t.Helper()
	spec := specFor(t, "bar")
	return Identity{
		GameID: "bar",
		Occurrences: []inventory.InstalledGame{
			{Store: inventory.StoreSteam, LocalID: "3", InstallPath: "/s/bar", Spec: spec},
		},
	}
}

func TestResolveNonCollidingNeverPrompts(t *testing.T) {
	t.Parallel()
	prompter := PrompterFunc(func(id Identity) (Choice, error) {
		t.Fatalf("prompter must not fire for non-colliding identity %q", id.GameID)
		return ChoiceUseSteam, nil
	})
	resolved, pending, err := Resolve([]Identity{singleIdentity(t)}, prompter)
	require.NoError(t, err)
	assert.Empty(t, pending)
	require.Len(t, resolved, 1)
	assert.Equal(t, StateResolved, resolved[0].State)
	require.NotNil(t, resolved[0].Outcome)
	assert.Equal(t, UseSingle, resolved[0].Outcome.Kind)
	assert.Equal(t, inventory.StoreSteam, resolved[0].Outcome.Primary.Store)
}

func TestResolveCollisionWithoutPrompterIsPending(t *testing.T) {
	t.Parallel()
	resolved, pending, err := Resolve([]Identity{collidingIdentity(t), singleIdentity(t)}, nil)
	require.NoError(t, err)
	// The collision is held back; the other identity still proceeds.
	require.Len(t, pending, 1)
	assert.Equal(t, "foo", pending[0].GameID)
	require.Len(t, resolved, 1)
	assert.Equal(t, "bar", resolved[0].Identity.GameID)
}

func TestResolveChoices(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name      string
		choice    Choice
		kind      OutcomeKind
		primary   inventory.StoreKind
		secondary bool
	}{
		{name: "use steam", choice: ChoiceUseSteam, kind: UseSingle, primary: inventory.StoreSteam},
		{name: "use gog", choice: ChoiceUseGOG, kind: UseSingle, primary: inventory.StoreGOG},
		{name: "split", choice: ChoiceSplit, kind: SplitBottles, primary: inventory.StoreSteam, secondary: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			prompter := PrompterFunc(func(Identity) (Choice, error) { return tc.choice, nil })
			resolved, pending, err := Resolve([]Identity{collidingIdentity(t)}, prompter)
			require.NoError(t, err)
			assert.Empty(t, pending)
			require.Len(t, resolved, 1)
			outcome := resolved[0].Outcome
			require.NotNil(t, outcome)
			assert.Equal(t, tc.kind, outcome.Kind)
			assert.Equal(t, tc.primary, outcome.Primary.Store)
			if tc.secondary {
				require.NotNil(t, outcome.Secondary)
				assert.Equal(t, inventory.StoreGOG, outcome.Secondary.Store)
			} else {
				assert.Nil(t, outcome.Secondary)
			}
		})
	}
}

func TestResolvePrompterDeclines(t *testing.T) {
	t.Parallel()
	prompter := PrompterFunc(func(Identity) (Choice, error) {
		return 0, ErrResolutionRequired
	})
	resolved, pending, err := Resolve([]Identity{collidingIdentity(t)}, prompter)
	require.NoError(t, err)
	assert.Empty(t, resolved)
	require.Len(t, pending, 1)
}

func TestResolvePrompterFailure(t *testing.T) {
	t.Parallel()
	prompter := PrompterFunc(func(Identity) (Choice, error) {
		return 0, errors.New("terminal gone")
	})
	_, _, err := Resolve([]Identity{collidingIdentity(t)}, prompter)
	require.Error(t, err)
}

func TestReconcileGroupTooLarge(t *testing.T) {
	t.Parallel()
	spec := specFor(t, "foo")
	// Hand-crafted maps bypass the adapters' per-store uniqueness check to
	// exercise the structural invariant directly.
	steam := map[string]inventory.InstalledGame{
		"1":  {Store: inventory.StoreSteam, LocalID: "1", Spec: spec},
		"10": {Store: inventory.StoreSteam, LocalID: "10", Spec: spec},
	}
	gog := map[string]inventory.InstalledGame{
		"2": {Store: inventory.StoreGOG, LocalID: "2", Spec: spec},
	}
	_, err := Reconcile(steam, gog)
	require.ErrorIs(t, err, ErrCorruptInventory)
}
