// Package inventory normalizes raw store enumeration output against the
// game registry.
//
// Raw enumeration (VDF walking, Heroic JSON) lives in the store boundary
// packages; this package only matches raw entries to registry specs and
// enforces per-store uniqueness.
package inventory

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vortextricks/vortextricks/internal/messages"
	"github.com/vortextricks/vortextricks/internal/registry"
)

// StoreKind identifies a game distribution platform.
type StoreKind string

// Supported stores.
const (
	StoreSteam StoreKind = "Steam"
	StoreGOG   StoreKind = "GOG"
)

// ErrDuplicateInStore wraps the case of two raw entries in one store
// resolving to the same registry game. That is inventory corruption, not a
// cross-store collision, and fails the adapter run.
var ErrDuplicateInStore = errors.New("duplicate game in store")

// RawEntry is one installed title as reported by a store boundary.
type RawEntry struct {
	LocalID     string
	Name        string
	InstallPath string
}

// InstalledGame is a normalized store record. Spec is nil when the title is
// not in the registry; such entries are informational, never errors.
// Records are created fresh each run and never mutated afterwards.
type InstalledGame struct {
	Store       StoreKind
	LocalID     string
	InstallPath string
	Spec        *registry.GameSpec
}

// Matched reports whether the record resolved to a registry spec.
func (g InstalledGame) Matched() bool {
	return g.Spec != nil
}

// GameID returns the canonical game id, or "" for unmatched records.
func (g InstalledGame) GameID() string {
	if g.Spec == nil {
		return ""
	}
	return g.Spec.GameID
}

// Normalize matches raw store entries to registry specs. Every raw entry is
// retained in the result keyed by its store-local id; unmatched entries keep
// a nil Spec and are logged at debug level. Two entries resolving to the
// same game id fail with ErrDuplicateInStore.
func Normalize(store StoreKind, raw []RawEntry, reg *registry.Registry, log zerolog.Logger) (map[string]InstalledGame, error) {
	if reg == nil {
		return nil, errors.New(messages.InventoryRegistryRequired)
	}

	lookup, err := lookupFor(store, reg)
	if err != nil {
		return nil, err
	}

	games := make(map[string]InstalledGame, len(raw))
	owners := make(map[string]string, len(raw)) // game id -> first local id
	for _, entry := range raw {
		spec := lookup(entry.LocalID)
		if spec == nil {
			log.Debug().Str("store", string(store)).Str("id", entry.LocalID).Str("name", entry.Name).
				Msg("installed title not in registry")
			games[entry.LocalID] = InstalledGame{Store: store, LocalID: entry.LocalID, InstallPath: entry.InstallPath}
			continue
		}
		if first, ok := owners[spec.GameID]; ok {
			return nil, fmt.Errorf("%w: "+messages.InventoryDuplicateInStoreFmt, ErrDuplicateInStore, store, first, entry.LocalID, spec.GameID)
		}
		owners[spec.GameID] = entry.LocalID
		log.Debug().Str("store", string(store)).Str("id", entry.LocalID).Str("game", spec.GameID).
			Msg("matched installed game")
		games[entry.LocalID] = InstalledGame{Store: store, LocalID: entry.LocalID, InstallPath: entry.InstallPath, Spec: spec}
	}
	return games, nil
}

// lookupFor returns the store-specific identifier lookup: exact membership
// in steamapp_ids for Steam, exact gog_id equality for GOG.
func lookupFor(store StoreKind, reg *registry.Registry) (func(string) *registry.GameSpec, error) {
	switch store {
	case StoreSteam:
		return reg.BySteamAppID, nil
	case StoreGOG:
		return reg.ByGOGID, nil
	default:
		return nil, fmt.Errorf(messages.InventoryUnknownStoreFmt, store)
	}
}
