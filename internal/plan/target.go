// Package plan computes idempotent provisioning plans for Vortex
// environments by diffing desired state against live probed state.
package plan

import (
	"path/filepath"
	"strings"

	"github.com/vortextricks/vortextricks/internal/inventory"
)

// RunnerKind hints which Proton/Wine build an environment should use.
type RunnerKind string

// Runner hints per target flavor.
const (
	RunnerDefault RunnerKind = "default"
	RunnerSteam   RunnerKind = "steam"
	RunnerGOG     RunnerKind = "gog"
)

// Bottle names. A run without split resolutions provisions exactly the
// default bottle; a split adds one per store branch.
const (
	DefaultBottle = "Vortex"
	SteamBottle   = "Vortex-Steam"
	GOGBottle     = "Vortex-GOG"
)

// Target is the unit of provisioning: one bottle and the game occurrences
// assigned to it.
type Target struct {
	BottleName string
	Runner     RunnerKind
	Games      []inventory.InstalledGame
}

// WindowsInstallPath maps a Unix install path onto the z: drive in the form
// Vortex expects, e.g. /games/foo -> z:\games\foo.
func WindowsInstallPath(installPath string) string {
	return "z:" + strings.ReplaceAll(filepath.Clean(installPath), "/", `\`)
}
