// Package wine provisions Vortex environments with a plain WINE prefix.
// It is the fallback backend when bottles-cli is not available.
package wine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vortextricks/vortextricks/internal/fsutil"
	"github.com/vortextricks/vortextricks/internal/messages"
	"github.com/vortextricks/vortextricks/internal/plan"
)

// WineDebugEnv quiets fixme spam from wine invocations.
const WineDebugEnv = "WINEDEBUG=fixme-all"

// vortexExeRelPath is where the Vortex installer puts the executable.
var vortexExeRelPath = filepath.Join("drive_c", "Program Files", "Black Tree Gaming Ltd", "Vortex", "Vortex.exe")

// DefaultPrefix returns $WINEPREFIX when set, otherwise ~/Games/vortex/pfx.
func DefaultPrefix() (string, error) {
	if p := strings.TrimSpace(os.Getenv("WINEPREFIX")); p != "" {
		return p, nil
	}
	return fsutil.ExpandHome("~/Games/vortex/pfx")
}

// Backend drives wine directly against a single prefix.
type Backend struct {
	Sys    System
	Prefix string
	User   string
	Log    zerolog.Logger
}

// Detect returns a wine backend, or an error naming an install hint when
// wine is absent.
func Detect(sys System, prefix string, user string, log zerolog.Logger) (*Backend, error) {
	if sys == nil {
		return nil, errors.New(messages.SystemRequired)
	}
	if _, err := sys.LookPath("wine"); err != nil {
		if _, dnfErr := sys.LookPath("dnf"); dnfErr == nil {
			log.Info().Msgf(messages.WineInstallHintFmt, "sudo dnf install wine")
		}
		return nil, errors.New(messages.WineNotFound)
	}
	return &Backend{Sys: sys, Prefix: prefix, User: user, Log: log}, nil
}

func (b *Backend) env() []string {
	return []string{"WINEPREFIX=" + b.Prefix, WineDebugEnv}
}

// CreateEnvironment initializes the prefix with wineboot.
func (b *Backend) CreateEnvironment(ctx context.Context, _ plan.Target) error {
	if err := os.MkdirAll(b.Prefix, 0o755); err != nil {
		return fmt.Errorf(messages.WinePrefixInitErrFmt, b.Prefix, err)
	}
	if _, err := b.Sys.Run(ctx, b.env(), "wineboot", "-u"); err != nil {
		return fmt.Errorf(messages.WinePrefixInitErrFmt, b.Prefix, err)
	}
	return nil
}

// WriteRegistryEntry adds or rewrites one string value with wine's reg tool.
func (b *Backend) WriteRegistryEntry(ctx context.Context, _ plan.Target, write plan.RegistryWrite) error {
	_, err := b.Sys.Run(ctx, b.env(), "wine", "reg", "add", write.Key,
		"/t", "REG_SZ", "/v", write.Value, "/d", write.Data, "/f")
	if err != nil {
		return fmt.Errorf(messages.WineRegistryAddErrFmt, write.Key, err)
	}
	return nil
}

// CreateOrReplaceSymlink points link at source, replacing whatever is there.
func (b *Backend) CreateOrReplaceSymlink(_ plan.Target, source string, link string) error {
	return fsutil.ReplaceSymlink(source, link)
}

// Probe reports the live prefix state for planning.
func (b *Backend) Probe(_ plan.Target) (plan.ProbedState, error) {
	return plan.ProbedState{
		EnvironmentExists: PrefixBooted(b.Prefix),
		PrefixPath:        b.Prefix,
		PrefixUser:        b.User,
		RegistryEntries:   InspectRegistry(b.Prefix),
		Symlinks:          InspectSymlinks(b.Prefix, b.User),
	}, nil
}

// VortexInstalled reports whether the Vortex executable exists in the prefix.
func (b *Backend) VortexInstalled(_ context.Context, _ plan.Target) (bool, error) {
	_, err := os.Stat(filepath.Join(b.Prefix, vortexExeRelPath))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// RunInstaller executes the Vortex installer under wine, then hooks the nxm
// URL scheme into the generated desktop shortcut.
func (b *Backend) RunInstaller(ctx context.Context, _ plan.Target, installerPath string) error {
	if _, err := b.Sys.Run(ctx, b.env(), "wine", installerPath); err != nil {
		return err
	}
	if err := b.registerNXMHandler(ctx); err != nil {
		// Browser integration is a nicety; a missing shortcut is not fatal.
		b.Log.Warn().Err(err).Msg("nxm desktop integration skipped")
	}
	return nil
}

// registerNXMHandler appends the nxm mime handler to the Vortex desktop
// shortcut wine generated during install.
func (b *Backend) registerNXMHandler(ctx context.Context) error {
	shortcut, err := fsutil.ExpandHome("~/.local/share/applications/wine/Programs/Black Tree Gaming Ltd/Vortex.desktop")
	if err != nil {
		return err
	}
	data, err := os.ReadFile(shortcut)
	if err != nil {
		return err
	}
	if strings.Contains(string(data), "x-scheme-handler/nxm") {
		return nil
	}
	file, err := os.OpenFile(shortcut, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	_, writeErr := file.WriteString("Categories=Game;\nMimeType=x-scheme-handler/nxm;x-scheme-handler/nxm-protocol\n")
	closeErr := file.Close()
	if writeErr != nil {
		return writeErr
	}
	if closeErr != nil {
		return closeErr
	}
	if _, err := b.Sys.Run(ctx, nil, "update-desktop-database"); err != nil {
		b.Log.Debug().Err(err).Msg("update-desktop-database failed")
	}
	return nil
}
