// Package reconcile merges per-store inventories into canonical game
// identities and resolves cross-store collisions.
package reconcile

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vortextricks/vortextricks/internal/inventory"
	"github.com/vortextricks/vortextricks/internal/messages"
)

// ErrCorruptInventory wraps structurally impossible inventory states: more
// than one occurrence per store, or more than two occurrences total. The
// per-store uniqueness check in the adapters should make this unreachable,
// so it is treated as an invariant violation rather than a user error.
var ErrCorruptInventory = errors.New("corrupt inventory")

// Identity is the reconciled unit: one canonical game with its installed
// occurrences. One occurrence means the game is in a single store; two
// (one per store) mean a collision that needs resolution.
type Identity struct {
	GameID      string
	Occurrences []inventory.InstalledGame
}

// Colliding reports whether the game is installed in both stores.
func (id Identity) Colliding() bool {
	return len(id.Occurrences) == 2
}

// Occurrence returns the occurrence for the given store, or nil.
func (id Identity) Occurrence(store inventory.StoreKind) *inventory.InstalledGame {
	for i := range id.Occurrences {
		if id.Occurrences[i].Store == store {
			return &id.Occurrences[i]
		}
	}
	return nil
}

// DisplayName returns the registry display name for the identity.
func (id Identity) DisplayName() string {
	if len(id.Occurrences) > 0 && id.Occurrences[0].Spec != nil {
		return id.Occurrences[0].Spec.Name
	}
	return id.GameID
}

// Reconcile groups all matched installed games from both adapters by game
// id. Output is ordered by game id ascending for reproducibility, with each
// identity's occurrences ordered Steam before GOG. Unmatched records carry
// no identity and are skipped.
func Reconcile(steam map[string]inventory.InstalledGame, gog map[string]inventory.InstalledGame) ([]Identity, error) {
	groups := make(map[string][]inventory.InstalledGame)
	for _, library := range []map[string]inventory.InstalledGame{steam, gog} {
		ids := make([]string, 0, len(library))
		for localID := range library {
			ids = append(ids, localID)
		}
		sort.Strings(ids)
		for _, localID := range ids {
			game := library[localID]
			if !game.Matched() {
				continue
			}
			groups[game.GameID()] = append(groups[game.GameID()], game)
		}
	}

	gameIDs := make([]string, 0, len(groups))
	for gameID := range groups {
		gameIDs = append(gameIDs, gameID)
	}
	sort.Strings(gameIDs)

	identities := make([]Identity, 0, len(gameIDs))
	for _, gameID := range gameIDs {
		occurrences := groups[gameID]
		if len(occurrences) > 2 {
			return nil, fmt.Errorf("%w: "+messages.ReconcileGroupTooLargeFmt, ErrCorruptInventory, gameID, len(occurrences))
		}
		if err := checkStoreUniqueness(gameID, occurrences); err != nil {
			return nil, err
		}
		sort.SliceStable(occurrences, func(i, j int) bool {
			return storeRank(occurrences[i].Store) < storeRank(occurrences[j].Store)
		})
		identities = append(identities, Identity{GameID: gameID, Occurrences: occurrences})
	}
	return identities, nil
}

// checkStoreUniqueness rejects two occurrences from the same store. The
// adapters already enforce this per store, so tripping it means the caller
// fed the same library in twice.
func checkStoreUniqueness(gameID string, occurrences []inventory.InstalledGame) error {
	seen := make(map[inventory.StoreKind]bool, len(occurrences))
	for _, occ := range occurrences {
		if seen[occ.Store] {
			return fmt.Errorf("%w: "+messages.ReconcileSameStoreTwiceFmt, ErrCorruptInventory, gameID, occ.Store)
		}
		seen[occ.Store] = true
	}
	return nil
}

func storeRank(store inventory.StoreKind) int {
	if store == inventory.StoreSteam {
		return 0
	}
	return 1
}
