package doctor

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vortextricks/vortextricks/internal/bottles"
	"github.com/vortextricks/vortextricks/internal/heroic"
	"github.com/vortextricks/vortextricks/internal/messages"
	"github.com/vortextricks/vortextricks/internal/plan"
	"github.com/vortextricks/vortextricks/internal/registry"
	"github.com/vortextricks/vortextricks/internal/steam"
	"github.com/vortextricks/vortextricks/internal/vortex"
	"github.com/vortextricks/vortextricks/internal/wine"
)

// CheckRegistry verifies the game catalog loads and validates.
func CheckRegistry(path string) Result {
	reg, err := registry.LoadFile(path)
	if err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameRegistry,
			Message:        fmt.Sprintf(messages.DoctorRegistryLoadFailedFmt, err),
			Recommendation: messages.DoctorRegistryLoadRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameRegistry,
		Message:   fmt.Sprintf(messages.DoctorRegistryLoadedFmt, reg.Len()),
	}
}

// CheckSteam reports whether the Steam library is present. A missing store
// is a warning; sync still works with the other store.
func CheckSteam(lib steam.Library) Result {
	if !lib.Detected() {
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameSteam,
			Message:        fmt.Sprintf(messages.DoctorSteamMissingFmt, lib.Root),
			Recommendation: messages.DoctorSteamRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameSteam,
		Message:   fmt.Sprintf(messages.DoctorSteamFoundFmt, lib.Root),
	}
}

// CheckHeroic reports whether Heroic's GOG state is present.
func CheckHeroic(launcher heroic.Launcher) Result {
	if !launcher.Detected() {
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameHeroic,
			Message:        fmt.Sprintf(messages.DoctorHeroicMissingFmt, launcher.ConfigDir),
			Recommendation: messages.DoctorHeroicRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameHeroic,
		Message:   fmt.Sprintf(messages.DoctorHeroicFoundFmt, launcher.ConfigDir),
	}
}

// CheckBackend reports which provisioning backend is usable, preferring
// Bottles over plain WINE the way sync does.
func CheckBackend(ctx context.Context, sys wine.System, user string, log zerolog.Logger) Result {
	if backend, err := bottles.Detect(ctx, sys, user, log); err == nil {
		return Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameBackend,
			Message:   fmt.Sprintf(messages.DoctorBackendBottlesFmt, backend.Command[0]),
		}
	}
	if _, err := sys.LookPath("wine"); err == nil {
		return Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameBackend,
			Message:   messages.DoctorBackendWine,
		}
	}
	return Result{
		Status:         StatusFail,
		CheckName:      messages.DoctorCheckNameBackend,
		Message:        messages.DoctorBackendMissing,
		Recommendation: messages.DoctorBackendRecommend,
	}
}

// CheckVortex probes every target for an existing Vortex install.
func CheckVortex(ctx context.Context, targets []plan.Target, inst vortex.Installer) []Result {
	var results []Result
	for _, target := range targets {
		installed, err := inst.VortexInstalled(ctx, target)
		switch {
		case err != nil:
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameVortex,
				Message:        fmt.Sprintf(messages.DoctorVortexProbeFmt, target.BottleName, err),
				Recommendation: messages.DoctorBackendRecommend,
			})
		case installed:
			results = append(results, Result{
				Status:    StatusOK,
				CheckName: messages.DoctorCheckNameVortex,
				Message:   fmt.Sprintf(messages.DoctorVortexInstalledFmt, target.BottleName),
			})
		default:
			results = append(results, Result{
				Status:         StatusWarn,
				CheckName:      messages.DoctorCheckNameVortex,
				Message:        fmt.Sprintf(messages.DoctorVortexMissingFmt, target.BottleName),
				Recommendation: messages.DoctorVortexRecommend,
			})
		}
	}
	return results
}
