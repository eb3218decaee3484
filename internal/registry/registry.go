// Package registry loads and validates the declarative game catalog.
//
// The catalog is a TOML document holding an array of [[games]] tables. It is
// pure data: loading has no side effects, and the whole document is rejected
// if any entry fails validation.
package registry

import (
	"errors"
)

// ErrRegistryValidation is a sentinel that wraps catalog validation failures
// (as opposed to TOML syntax or filesystem errors). Callers can use
// errors.Is(err, ErrRegistryValidation) to distinguish schema violations.
var ErrRegistryValidation = errors.New("registry validation failed")

// ErrDuplicateGameID wraps duplicate game_id failures. A duplicate rejects
// the whole catalog; no partial registry is ever returned.
var ErrDuplicateGameID = errors.New("duplicate game id")

// Entry is a single Windows registry write a game needs for discovery.
// Key is the full registry key path (HIVE\Sub\Key), Value the value name.
// The data written is always the game's install path, mapped to a Windows
// path at execution time.
type Entry struct {
	Key   string `toml:"key"`
	Value string `toml:"value"`
}

// GameSpec describes one known game: its identity in each store, the
// registry entries Vortex needs, and optional symlink folder overrides.
type GameSpec struct {
	Name            string   `toml:"name"`
	GameID          string   `toml:"game_id"`
	SteamAppIDs     []string `toml:"steamapp_ids,omitempty"`
	GOGID           string   `toml:"gog_id,omitempty"`
	EpicID          string   `toml:"epic_id,omitempty"`
	MSID            string   `toml:"ms_id,omitempty"`
	RegistryEntries []Entry  `toml:"registry_entries,omitempty"`

	// Folder name overrides for the My Games and AppData symlinks.
	// When empty the install directory name is used.
	OverrideMyGames string `toml:"override_mygames,omitempty"`
	OverrideAppData string `toml:"override_appdata,omitempty"`
}

// HasStoreIdentifier reports whether the spec names at least one store.
func (g GameSpec) HasStoreIdentifier() bool {
	return len(g.SteamAppIDs) > 0 || g.GOGID != "" || g.EpicID != "" || g.MSID != ""
}

// Registry holds the validated game catalog with store-identifier indexes.
type Registry struct {
	games      []GameSpec
	steamIndex map[string]*GameSpec
	gogIndex   map[string]*GameSpec
}

// Games returns the catalog in document order.
func (r *Registry) Games() []GameSpec {
	return r.games
}

// Len returns the number of games in the catalog.
func (r *Registry) Len() int {
	return len(r.games)
}

// BySteamAppID returns the spec owning the given Steam app ID, or nil.
func (r *Registry) BySteamAppID(appID string) *GameSpec {
	return r.steamIndex[appID]
}

// ByGOGID returns the spec owning the given GOG release ID, or nil.
func (r *Registry) ByGOGID(gogID string) *GameSpec {
	return r.gogIndex[gogID]
}

func newRegistry(games []GameSpec) *Registry {
	r := &Registry{
		games:      games,
		steamIndex: make(map[string]*GameSpec),
		gogIndex:   make(map[string]*GameSpec),
	}
	for i := range games {
		g := &games[i]
		for _, sid := range g.SteamAppIDs {
			r.steamIndex[sid] = g
		}
		if g.GOGID != "" {
			r.gogIndex[g.GOGID] = g
		}
	}
	return r
}
