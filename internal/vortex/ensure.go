package vortex

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/vortextricks/vortextricks/internal/messages"
	"github.com/vortextricks/vortextricks/internal/plan"
	"github.com/vortextricks/vortextricks/internal/report"
)

// Installer is the backend capability needed to probe and install Vortex
// inside a provisioned environment.
type Installer interface {
	// VortexInstalled reports whether Vortex is already present in the target.
	VortexInstalled(ctx context.Context, target plan.Target) (bool, error)
	// RunInstaller executes the downloaded installer inside the target.
	RunInstaller(ctx context.Context, target plan.Target, installerPath string) error
}

// FetchFunc produces a local installer path and its version on demand.
// Ensure calls it at most once, and only when some target needs an install.
type FetchFunc func(ctx context.Context) (path string, version string, err error)

// DefaultFetch resolves the latest (or pinned) release and downloads its
// installer into dir.
func DefaultFetch(pinned string, dir string) FetchFunc {
	return func(ctx context.Context) (string, string, error) {
		rel, err := Resolve(ctx, pinned)
		if err != nil {
			return "", "", err
		}
		path, err := Download(ctx, rel, dir)
		if err != nil {
			return "", "", err
		}
		return path, rel.Version, nil
	}
}

// Ensure makes sure Vortex is installed in every target. Targets that
// already have Vortex are reported and left untouched. A failure on one
// target does not stop the others.
func Ensure(ctx context.Context, targets []plan.Target, inst Installer, fetch FetchFunc, log zerolog.Logger) (*report.Report, error) {
	if inst == nil {
		return nil, errors.New(messages.VortexInstallerRequired)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	rep := &report.Report{}
	var installerPath, installerVersion string
	fetched := false

	for _, target := range targets {
		installed, err := inst.VortexInstalled(ctx, target)
		if err != nil {
			rep.Failed(target.BottleName, messages.VortexProbeFailedFmt, target.BottleName, err)
			continue
		}
		if installed {
			log.Debug().Str("target", target.BottleName).Msg("vortex already installed")
			rep.Succeeded(target.BottleName, messages.VortexAlreadyInstalledFmt, target.BottleName)
			continue
		}

		if !fetched {
			if fetch == nil {
				fetch = DefaultFetch("", DefaultCacheDir())
			}
			installerPath, installerVersion, err = fetch(ctx)
			if err != nil {
				rep.Failed(target.BottleName, messages.VortexInstallFailedFmt, target.BottleName, err)
				continue
			}
			fetched = true
		}

		log.Info().Str("target", target.BottleName).Str("installer", installerPath).Msg("installing vortex")
		if err := inst.RunInstaller(ctx, target, installerPath); err != nil {
			rep.Failed(target.BottleName, messages.VortexInstallFailedFmt, target.BottleName, err)
			continue
		}

		installed, err = inst.VortexInstalled(ctx, target)
		if err != nil {
			rep.Failed(target.BottleName, messages.VortexProbeFailedFmt, target.BottleName, err)
			continue
		}
		if !installed {
			rep.Failed(target.BottleName, "%s", messages.VortexInstallNotEffective)
			continue
		}
		rep.Succeeded(target.BottleName, messages.VortexInstalledFmt, installerVersion, target.BottleName)
	}

	return rep, nil
}
