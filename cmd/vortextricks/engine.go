package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/user"

	"github.com/rs/zerolog"

	"github.com/vortextricks/vortextricks/internal/bottles"
	"github.com/vortextricks/vortextricks/internal/heroic"
	"github.com/vortextricks/vortextricks/internal/inventory"
	"github.com/vortextricks/vortextricks/internal/messages"
	"github.com/vortextricks/vortextricks/internal/plan"
	"github.com/vortextricks/vortextricks/internal/provision"
	"github.com/vortextricks/vortextricks/internal/reconcile"
	"github.com/vortextricks/vortextricks/internal/registry"
	"github.com/vortextricks/vortextricks/internal/steam"
	"github.com/vortextricks/vortextricks/internal/vortex"
	"github.com/vortextricks/vortextricks/internal/wine"
)

// EnvSteamRoot overrides the Steam library root.
const envSteamRoot = "VORTEXTRICKS_STEAM_ROOT"

// backend bundles the capabilities provisioning and the Vortex installer
// need from either WINE flavor.
type backend interface {
	provision.Environment
	vortex.Installer
	Probe(target plan.Target) (plan.ProbedState, error)
}

// engine wires the registry, store adapters, and detected backend for one
// run. Everything is resolved up front so sync, plan, and doctor share the
// same view of the machine.
type engine struct {
	log     zerolog.Logger
	reg     *registry.Registry
	steam   steam.Library
	heroic  heroic.Launcher
	backend backend
	splitOK bool
}

func newEngine(ctx context.Context, opts *rootOptions, log zerolog.Logger) (*engine, error) {
	reg, err := registry.LoadFile(opts.registryFile())
	if err != nil {
		return nil, err
	}

	steamRoot, err := resolveSteamRoot()
	if err != nil {
		return nil, err
	}
	configDir, err := heroic.DefaultConfigDir()
	if err != nil {
		return nil, err
	}
	prefixesRoot, err := heroic.DefaultPrefixesRoot()
	if err != nil {
		return nil, err
	}

	b, splitOK, err := detectBackendKind(ctx, opts.cfg.Backend, log)
	if err != nil {
		return nil, err
	}

	return &engine{
		log:     log,
		reg:     reg,
		steam:   steam.Library{Root: steamRoot},
		heroic:  heroic.Launcher{ConfigDir: configDir, PrefixesRoot: prefixesRoot, DB: heroic.NewGamesDB()},
		backend: b,
		splitOK: splitOK,
	}, nil
}

func resolveSteamRoot() (string, error) {
	if root := os.Getenv(envSteamRoot); root != "" {
		return root, nil
	}
	return steam.DefaultRoot()
}

// detectBackend prefers Bottles and falls back to plain WINE.
func detectBackend(ctx context.Context, log zerolog.Logger) (backend, bool, error) {
	return detectBackendKind(ctx, "", log)
}

// detectBackendKind honors the tool config's backend selection: "bottles"
// and "wine" pin one flavor, anything else auto-detects.
func detectBackendKind(ctx context.Context, kind string, log zerolog.Logger) (backend, bool, error) {
	sys := wine.RealSystem{}
	name := currentUser()

	if kind != "wine" {
		b, bottlesErr := bottles.Detect(ctx, sys, name, log)
		if bottlesErr == nil {
			return b, true, nil
		}
		if kind == "bottles" {
			return nil, false, bottlesErr
		}
		log.Debug().Err(bottlesErr).Msg("bottles backend unavailable")
	}

	prefix, err := wine.DefaultPrefix()
	if err != nil {
		return nil, false, err
	}
	w, err := wine.Detect(sys, prefix, name, log)
	if err != nil {
		return nil, false, err
	}
	return w, false, nil
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}

// inventories enumerates both stores, tolerating an absent launcher.
func (e *engine) inventories() (map[string]inventory.InstalledGame, map[string]inventory.InstalledGame, error) {
	steamGames := map[string]inventory.InstalledGame{}
	if e.steam.Detected() {
		raw, err := e.steam.Enumerate(e.log)
		if err != nil {
			return nil, nil, err
		}
		steamGames, err = inventory.Normalize(inventory.StoreSteam, raw, e.reg, e.log)
		if err != nil {
			return nil, nil, err
		}
	} else {
		e.log.Debug().Str("root", e.steam.Root).Msg("steam library not present")
	}

	gogGames := map[string]inventory.InstalledGame{}
	if e.heroic.Detected() {
		raw, err := e.heroic.Enumerate(e.log)
		if err != nil {
			return nil, nil, err
		}
		gogGames, err = inventory.Normalize(inventory.StoreGOG, raw, e.reg, e.log)
		if err != nil {
			return nil, nil, err
		}
	} else {
		e.log.Debug().Str("config", e.heroic.ConfigDir).Msg("heroic not present")
	}
	return steamGames, gogGames, nil
}

// computePlans reconciles both libraries and diffs desired state against
// the live environment. pending carries identities the prompter declined to
// resolve; they are excluded from the returned plans.
func (e *engine) computePlans(ctx context.Context, prompter reconcile.Prompter) ([]plan.Plan, []plan.Target, []reconcile.Identity, error) {
	steamGames, gogGames, err := e.inventories()
	if err != nil {
		return nil, nil, nil, err
	}
	identities, err := reconcile.Reconcile(steamGames, gogGames)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(identities) == 0 {
		return nil, nil, nil, nil
	}
	resolved, pending, err := reconcile.Resolve(identities, prompter)
	if err != nil {
		return nil, nil, nil, err
	}
	prober := storeProber{ctx: ctx, backend: e.backend, steam: e.steam, heroic: e.heroic}
	plans, err := plan.Build(resolved, prober)
	if err != nil {
		return nil, nil, nil, err
	}
	targets := make([]plan.Target, 0, len(plans))
	for _, p := range plans {
		targets = append(targets, p.Target)
	}
	return plans, targets, pending, nil
}

// storeProber joins the backend's environment probing with the per-store
// compat prefix lookup the symlink planner needs.
type storeProber struct {
	ctx     context.Context
	backend backend
	steam   steam.Library
	heroic  heroic.Launcher
}

func (p storeProber) Probe(target plan.Target) (plan.ProbedState, error) {
	return p.backend.Probe(target)
}

func (p storeProber) CompatPrefix(game inventory.InstalledGame) (string, error) {
	switch game.Store {
	case inventory.StoreSteam:
		return p.steam.CompatPrefix(game.LocalID), nil
	case inventory.StoreGOG:
		return p.heroic.Prefix(p.ctx, game.LocalID)
	}
	return "", fmt.Errorf(messages.InventoryUnknownStoreFmt, game.Store)
}

// resolvePrompter maps --prefer onto a constant prompter; an empty value
// selects the interactive wizard.
func resolvePrompter(prefer string, splitOK bool) (reconcile.Prompter, error) {
	switch prefer {
	case "steam":
		return constantChoice(reconcile.ChoiceUseSteam), nil
	case "gog":
		return constantChoice(reconcile.ChoiceUseGOG), nil
	case "split":
		if !splitOK {
			return nil, errors.New(messages.PreferSplitNeedsBottles)
		}
		return constantChoice(reconcile.ChoiceSplit), nil
	}
	return nil, fmt.Errorf(messages.PreferInvalidFmt, prefer)
}

func constantChoice(choice reconcile.Choice) reconcile.Prompter {
	return reconcile.PrompterFunc(func(reconcile.Identity) (reconcile.Choice, error) {
		return choice, nil
	})
}
