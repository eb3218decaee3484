// Package bottles provisions Vortex environments through bottles-cli,
// either a native install or the com.usebottles.bottles flatpak.
package bottles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vortextricks/vortextricks/internal/fsutil"
	"github.com/vortextricks/vortextricks/internal/messages"
	"github.com/vortextricks/vortextricks/internal/plan"
	"github.com/vortextricks/vortextricks/internal/wine"
)

// FlatpakPackage is the Bottles flatpak application id.
const FlatpakPackage = "com.usebottles.bottles"

// Backend drives bottles-cli. One backend serves all bottle targets.
type Backend struct {
	Sys     wine.System
	Command []string
	User    string
	Log     zerolog.Logger

	flatpak     bool
	bottlesPath string
}

// Detect locates bottles-cli, preferring a native binary over the flatpak.
// The flatpak path is health-checked before being accepted.
func Detect(ctx context.Context, sys wine.System, user string, log zerolog.Logger) (*Backend, error) {
	if sys == nil {
		return nil, errors.New(messages.SystemRequired)
	}
	if _, err := sys.LookPath("bottles-cli"); err == nil {
		return &Backend{Sys: sys, Command: []string{"bottles-cli"}, User: user, Log: log}, nil
	}
	if _, err := sys.LookPath("flatpak"); err != nil {
		return nil, errors.New(messages.BottlesNotFound)
	}
	command := []string{"flatpak", "run", "--command=bottles-cli", FlatpakPackage}
	b := &Backend{Sys: sys, Command: command, User: user, Log: log, flatpak: true}
	if _, err := b.run(ctx, "info", "health-check"); err != nil {
		return nil, fmt.Errorf("%s: %w", messages.BottlesUnhealthy, err)
	}
	return b, nil
}

func (b *Backend) run(ctx context.Context, args ...string) ([]byte, error) {
	full := append(append([]string{}, b.Command[1:]...), args...)
	return b.Sys.Run(ctx, []string{wine.WineDebugEnv}, b.Command[0], full...)
}

// BottlesPath returns (and caches) the directory bottles live under.
func (b *Backend) BottlesPath(ctx context.Context) (string, error) {
	if b.bottlesPath != "" {
		return b.bottlesPath, nil
	}
	out, err := b.run(ctx, "info", "bottles-path")
	if err != nil {
		return "", fmt.Errorf(messages.BottlesPathErrFmt, err)
	}
	b.bottlesPath = strings.TrimSpace(string(out))
	return b.bottlesPath, nil
}

// BottleExists reports whether a bottle of that name is configured.
func (b *Backend) BottleExists(ctx context.Context, name string) (bool, error) {
	out, err := b.run(ctx, "--json", "list", "bottles")
	if err != nil {
		return false, fmt.Errorf(messages.BottlesListErrFmt, err)
	}
	var bottles map[string]json.RawMessage
	if err := json.Unmarshal(out, &bottles); err != nil {
		return false, fmt.Errorf(messages.BottlesDecodeErrFmt, err)
	}
	_, ok := bottles[name]
	return ok, nil
}

// CreateEnvironment creates the target's bottle, preferring a sys-wine
// runner when one is installed.
func (b *Backend) CreateEnvironment(ctx context.Context, target plan.Target) error {
	if b.flatpak {
		if err := b.fixFlatpakPermissions(ctx); err != nil {
			return fmt.Errorf(messages.BottlesCreateErrFmt, target.BottleName, err)
		}
	}

	args := []string{"new", "--bottle-name", target.BottleName, "--environment", "application"}
	runner, err := b.sysWineRunner(ctx)
	if err != nil {
		return fmt.Errorf(messages.BottlesCreateErrFmt, target.BottleName, err)
	}
	if runner != "" {
		args = append(args, "--runner", runner)
	} else {
		b.Log.Warn().Msg(messages.BottlesNoSysWineRunner)
	}

	if _, err := b.run(ctx, args...); err != nil {
		return fmt.Errorf(messages.BottlesCreateErrFmt, target.BottleName, err)
	}
	return nil
}

// sysWineRunner returns the first installed sys-wine runner, or "".
func (b *Backend) sysWineRunner(ctx context.Context) (string, error) {
	out, err := b.run(ctx, "--json", "list", "components")
	if err != nil {
		return "", err
	}
	var components struct {
		Runners []string `json:"runners"`
	}
	if err := json.Unmarshal(out, &components); err != nil {
		return "", fmt.Errorf(messages.BottlesDecodeErrFmt, err)
	}
	for _, runner := range components.Runners {
		if strings.HasPrefix(runner, "sys-wine") {
			return runner, nil
		}
	}
	return "", nil
}

// fixFlatpakPermissions grants the Bottles flatpak access to Steam and
// Heroic game data so symlink targets resolve inside the sandbox.
func (b *Backend) fixFlatpakPermissions(ctx context.Context) error {
	for _, fs := range []string{"--filesystem=xdg-data/Steam", "--filesystem=~/Games/Heroic"} {
		if _, err := b.Sys.Run(ctx, nil, "flatpak", "override", "--user", FlatpakPackage, fs); err != nil {
			return err
		}
	}
	return nil
}

// WriteRegistryEntry adds or rewrites one string value in the bottle.
func (b *Backend) WriteRegistryEntry(ctx context.Context, target plan.Target, write plan.RegistryWrite) error {
	_, err := b.run(ctx, "reg", "-b", target.BottleName,
		"-k", write.Key, "-v", write.Value, "-d", write.Data, "-t", "REG_SZ", "add")
	if err != nil {
		return fmt.Errorf(messages.WineRegistryAddErrFmt, write.Key, err)
	}
	return nil
}

// CreateOrReplaceSymlink points link at source, replacing whatever is there.
func (b *Backend) CreateOrReplaceSymlink(_ plan.Target, source string, link string) error {
	return fsutil.ReplaceSymlink(source, link)
}

// Probe reports the bottle's live state for planning.
func (b *Backend) Probe(target plan.Target) (plan.ProbedState, error) {
	ctx := context.Background()
	exists, err := b.BottleExists(ctx, target.BottleName)
	if err != nil {
		return plan.ProbedState{}, err
	}
	root, err := b.BottlesPath(ctx)
	if err != nil {
		return plan.ProbedState{}, err
	}
	prefix := filepath.Join(root, target.BottleName)
	state := plan.ProbedState{
		EnvironmentExists: exists,
		PrefixPath:        prefix,
		PrefixUser:        b.User,
	}
	if exists {
		state.RegistryEntries = wine.InspectRegistry(prefix)
		state.Symlinks = wine.InspectSymlinks(prefix, b.User)
	}
	return state, nil
}

// VortexInstalled checks the bottle's program list for Vortex.
func (b *Backend) VortexInstalled(ctx context.Context, target plan.Target) (bool, error) {
	out, err := b.run(ctx, "--json", "programs", "-b", target.BottleName)
	if err != nil {
		return false, fmt.Errorf(messages.BottlesProgramsErrFmt, target.BottleName, err)
	}
	return strings.Contains(string(out), "Vortex.exe"), nil
}

// RunInstaller executes the Vortex installer inside the bottle.
func (b *Backend) RunInstaller(ctx context.Context, target plan.Target, installerPath string) error {
	_, err := b.run(ctx, "run", "-b", target.BottleName, "-e", installerPath)
	return err
}
