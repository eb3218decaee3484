package plan

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/vortextricks/vortextricks/internal/inventory"
	"github.com/vortextricks/vortextricks/internal/messages"
	"github.com/vortextricks/vortextricks/internal/reconcile"
)

// Proton prefixes always use this user for the game-side paths.
const gamePrefixUser = "steamuser"

// RegistryWrite is one Windows registry cell the environment must hold:
// value name Value under key path Key, with Data as the payload (the
// game's install path mapped to a Windows path).
type RegistryWrite struct {
	GameID string
	Key    string
	Value  string
	Data   string
}

// SymlinkSpec is one symlink the environment must hold. Link is the
// symlink's location inside the Vortex prefix; Source is the path it must
// resolve to inside the game's compat prefix.
type SymlinkSpec struct {
	GameID string
	Source string
	Link   string
}

// Conflict reports two different games claiming the same registry key path
// within one target. The conflict is reported, never silently resolved.
type Conflict struct {
	Key        string
	FirstGame  string
	SecondGame string
}

func (c Conflict) String() string {
	return fmt.Sprintf(messages.PlanRegistryConflictFmt, c.Key, c.FirstGame, c.SecondGame)
}

// Plan is the provisioning work one target still needs. It is computed
// fresh each run by diffing desired state against probed state and is never
// mutated in place.
type Plan struct {
	Target                 Target
	MustCreateEnvironment  bool
	MissingRegistryEntries []RegistryWrite
	MissingOrStaleSymlinks []SymlinkSpec
	Conflicts              []Conflict
}

// ProbedState is what the external collaborators report as already present
// for one target. RegistryEntries maps key+value address to current data;
// Symlinks maps link path to resolved target.
type ProbedState struct {
	EnvironmentExists bool
	PrefixPath        string
	PrefixUser        string
	RegistryEntries   map[string]string
	Symlinks          map[string]string
}

// StateProber supplies live environment state. All "already done" detection
// goes through it; the planner keeps no private state file, so external
// modifications are picked up on the next run.
type StateProber interface {
	Probe(target Target) (ProbedState, error)
	CompatPrefix(game inventory.InstalledGame) (string, error)
}

// registryAddress identifies a registry cell for diffing.
func registryAddress(key string, value string) string {
	return key + `\` + value
}

// Build partitions resolved occurrences into targets and computes one plan
// per target. Targets appear in fixed order (default, Steam split, GOG
// split) and only when at least one game is assigned to them. Building is
// read-only: re-planning against the same probed state yields identical
// plans.
func Build(resolutions []reconcile.Resolution, prober StateProber) ([]Plan, error) {
	if prober == nil {
		return nil, errors.New(messages.PlanProberRequired)
	}

	targets, err := partition(resolutions)
	if err != nil {
		return nil, err
	}

	plans := make([]Plan, 0, len(targets))
	for _, target := range targets {
		probed, err := prober.Probe(target)
		if err != nil {
			return nil, fmt.Errorf(messages.PlanProbeFailedFmt, target.BottleName, err)
		}
		p, err := planTarget(target, probed, prober)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, nil
}

// partition assigns occurrences to target buckets: the default bottle for
// non-colliding and UseSingle outcomes, per-store bottles for splits.
func partition(resolutions []reconcile.Resolution) ([]Target, error) {
	var defaultGames, steamGames, gogGames []inventory.InstalledGame
	for _, res := range resolutions {
		if res.State != reconcile.StateResolved || res.Outcome == nil {
			return nil, fmt.Errorf(messages.PlanUnresolvedOutcomeFmt, res.Identity.GameID)
		}
		switch res.Outcome.Kind {
		case reconcile.UseSingle:
			defaultGames = append(defaultGames, res.Outcome.Primary)
		case reconcile.SplitBottles:
			steamGames = append(steamGames, res.Outcome.Primary)
			gogGames = append(gogGames, *res.Outcome.Secondary)
		}
	}

	var targets []Target
	if len(defaultGames) > 0 {
		targets = append(targets, Target{BottleName: DefaultBottle, Runner: RunnerDefault, Games: defaultGames})
	}
	if len(steamGames) > 0 {
		targets = append(targets, Target{BottleName: SteamBottle, Runner: RunnerSteam, Games: steamGames})
	}
	if len(gogGames) > 0 {
		targets = append(targets, Target{BottleName: GOGBottle, Runner: RunnerGOG, Games: gogGames})
	}
	return targets, nil
}

// planTarget diffs one target's desired registry entries and symlinks
// against the probed state.
func planTarget(target Target, probed ProbedState, prober StateProber) (Plan, error) {
	p := Plan{
		Target:                target,
		MustCreateEnvironment: !probed.EnvironmentExists,
	}

	desired, conflicts := desiredRegistryEntries(target)
	p.Conflicts = conflicts
	for _, write := range desired {
		existing, ok := probed.RegistryEntries[registryAddress(write.Key, write.Value)]
		if !ok || existing != write.Data {
			p.MissingRegistryEntries = append(p.MissingRegistryEntries, write)
		}
	}

	links, err := desiredSymlinks(target, probed, prober)
	if err != nil {
		return Plan{}, err
	}
	for _, link := range links {
		existing, ok := probed.Symlinks[link.Link]
		// A link that exists but resolves elsewhere is stale and must be
		// corrected, never left in place.
		if !ok || existing != link.Source {
			p.MissingOrStaleSymlinks = append(p.MissingOrStaleSymlinks, link)
		}
	}
	return p, nil
}

// desiredRegistryEntries unions the registry entries of every assigned
// occurrence's spec. Within one game, a repeated key keeps the first entry;
// across games, a shared key is a conflict and the later claim is dropped
// from the desired set pending manual fixup.
func desiredRegistryEntries(target Target) ([]RegistryWrite, []Conflict) {
	var writes []RegistryWrite
	var conflicts []Conflict
	owner := make(map[string]string)
	for _, game := range target.Games {
		if game.Spec == nil {
			continue
		}
		seenForGame := make(map[string]bool)
		for _, entry := range game.Spec.RegistryEntries {
			if seenForGame[entry.Key] {
				continue
			}
			seenForGame[entry.Key] = true
			if first, ok := owner[entry.Key]; ok {
				conflicts = append(conflicts, Conflict{Key: entry.Key, FirstGame: first, SecondGame: game.GameID()})
				continue
			}
			owner[entry.Key] = game.GameID()
			writes = append(writes, RegistryWrite{
				GameID: game.GameID(),
				Key:    entry.Key,
				Value:  entry.Value,
				Data:   WindowsInstallPath(game.InstallPath),
			})
		}
	}
	return writes, conflicts
}

// desiredSymlinks computes the My Games and AppData links for every
// assigned occurrence: Link inside the Vortex prefix, Source inside the
// game's compat prefix.
func desiredSymlinks(target Target, probed ProbedState, prober StateProber) ([]SymlinkSpec, error) {
	var links []SymlinkSpec
	for _, game := range target.Games {
		if game.Spec == nil {
			continue
		}
		compat, err := prober.CompatPrefix(game)
		if err != nil {
			return nil, fmt.Errorf(messages.PlanCompatPrefixFmt, game.GameID(), game.LocalID, err)
		}
		myGames := game.Spec.OverrideMyGames
		if myGames == "" {
			myGames = game.Spec.Name
		}
		appData := game.Spec.OverrideAppData
		if appData == "" {
			appData = game.Spec.Name
		}
		links = append(links,
			SymlinkSpec{
				GameID: game.GameID(),
				Source: filepath.Join(compat, "drive_c", "users", gamePrefixUser, "Documents", "My Games", myGames),
				Link:   filepath.Join(probed.PrefixPath, "drive_c", "users", probed.PrefixUser, "Documents", "My Games", myGames),
			},
			SymlinkSpec{
				GameID: game.GameID(),
				Source: filepath.Join(compat, "drive_c", "users", gamePrefixUser, "AppData", "Local", appData),
				Link:   filepath.Join(probed.PrefixPath, "drive_c", "users", probed.PrefixUser, "AppData", "Local", appData),
			},
		)
	}
	return links, nil
}
