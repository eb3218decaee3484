package inventory

import (
	"errors"
	"testing"

	"github.com/vortextricks/vortextricks/internal/logging"
	"github.com/vortextricks/vortextricks/internal/registry"
)

const catalog = `
[[games]]
name = "Foo"
game_id = "foo"
steamapp_ids = ["1", "10"]
gog_id = "2"

[[games]]
name = "Bar"
game_id = "bar"
steamapp_ids = ["3"]
`

func loadCatalog(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.Load([]byte(catalog), "games.toml")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return reg
}

func TestNormalizeSteam(t *testing.T) {
	t.Parallel()
	reg := loadCatalog(t)
	raw := []RawEntry{
		{LocalID: "1", Name: "Foo", InstallPath: "/games/foo"},
		{LocalID: "3", Name: "Bar", InstallPath: "/games/bar"},
		{LocalID: "999", Name: "Unknown", InstallPath: "/games/unknown"},
	}
	games, err := Normalize(StoreSteam, raw, reg, logging.Discard())
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("expected all raw entries retained, got %d", len(games))
	}
	foo := games["1"]
	if !foo.Matched() || foo.GameID() != "foo" || foo.Store != StoreSteam {
		t.Fatalf("unexpected foo record: %+v", foo)
	}
	unknown := games["999"]
	if unknown.Matched() || unknown.GameID() != "" {
		t.Fatalf("unmatched entry must keep nil spec: %+v", unknown)
	}
}

func TestNormalizeGOGUsesExactEquality(t *testing.T) {
	t.Parallel()
	reg := loadCatalog(t)
	games, err := Normalize(StoreGOG, []RawEntry{{LocalID: "2", InstallPath: "/g/foo"}}, reg, logging.Discard())
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if games["2"].GameID() != "foo" {
		t.Fatalf("gog id lookup failed: %+v", games["2"])
	}
	// Steam app ids must not match through the GOG adapter.
	games, err = Normalize(StoreGOG, []RawEntry{{LocalID: "1", InstallPath: "/g/x"}}, reg, logging.Discard())
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if games["1"].Matched() {
		t.Fatalf("steam app id matched through gog lookup")
	}
}

func TestNormalizeDuplicateInStore(t *testing.T) {
	t.Parallel()
	reg := loadCatalog(t)
	// App ids 1 and 10 both belong to "foo".
	raw := []RawEntry{
		{LocalID: "1", InstallPath: "/games/foo"},
		{LocalID: "10", InstallPath: "/games/foo-old"},
	}
	_, err := Normalize(StoreSteam, raw, reg, logging.Discard())
	if !errors.Is(err, ErrDuplicateInStore) {
		t.Fatalf("expected ErrDuplicateInStore, got %v", err)
	}
}

func TestNormalizeRequiresRegistry(t *testing.T) {
	t.Parallel()
	if _, err := Normalize(StoreSteam, nil, nil, logging.Discard()); err == nil {
		t.Fatalf("expected error for nil registry")
	}
}

func TestNormalizeUnknownStore(t *testing.T) {
	t.Parallel()
	reg := loadCatalog(t)
	if _, err := Normalize(StoreKind("Epic"), nil, reg, logging.Discard()); err == nil {
		t.Fatalf("expected error for unknown store kind")
	}
}
