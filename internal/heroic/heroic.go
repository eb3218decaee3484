// Package heroic enumerates GOG games installed through the Heroic launcher
// and locates their WINE prefixes.
package heroic

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vortextricks/vortextricks/internal/fsutil"
	"github.com/vortextricks/vortextricks/internal/inventory"
	"github.com/vortextricks/vortextricks/internal/messages"
)

// DefaultConfigDir returns the conventional Heroic configuration directory.
func DefaultConfigDir() (string, error) {
	return fsutil.ExpandHome("~/.config/heroic")
}

// DefaultPrefixesRoot returns where Heroic keeps per-game WINE prefixes.
func DefaultPrefixesRoot() (string, error) {
	return fsutil.ExpandHome("~/Games/Heroic/Prefixes/default")
}

// Launcher reads installed-game state out of one Heroic installation.
type Launcher struct {
	ConfigDir    string
	PrefixesRoot string
	DB           *GamesDB
}

func (l Launcher) installedPath() string {
	return filepath.Join(l.ConfigDir, "gog_store", "installed.json")
}

// Detected reports whether Heroic's GOG store state exists.
func (l Launcher) Detected() bool {
	_, err := os.Stat(l.installedPath())
	return err == nil
}

type installedDocument struct {
	Installed json.RawMessage `json:"installed"`
}

type installedEntry struct {
	AppName     string `json:"appName"`
	InstallPath string `json:"install_path"`
	Platform    string `json:"platform"`
}

// Enumerate returns one raw entry per installed GOG game. The entry name is
// the install directory basename; Heroic does not record titles here.
func (l Launcher) Enumerate(log zerolog.Logger) ([]inventory.RawEntry, error) {
	path := l.installedPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf(messages.HeroicNotFoundFmt, path)
		}
		return nil, fmt.Errorf(messages.HeroicInstalledReadErrFmt, path, err)
	}

	var doc installedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf(messages.HeroicInstalledDecodeFmt, path, err)
	}
	if len(doc.Installed) == 0 {
		return nil, nil
	}
	var raw []installedEntry
	if err := json.Unmarshal(doc.Installed, &raw); err != nil {
		return nil, fmt.Errorf(messages.HeroicInstalledShapeFmt, path)
	}

	var entries []inventory.RawEntry
	for _, e := range raw {
		id := strings.TrimSpace(e.AppName)
		if id == "" || strings.TrimSpace(e.InstallPath) == "" {
			log.Debug().Str("path", path).Msg("skipping installed entry without id or install path")
			continue
		}
		entries = append(entries, inventory.RawEntry{
			LocalID:     id,
			Name:        filepath.Base(e.InstallPath),
			InstallPath: e.InstallPath,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].LocalID < entries[j].LocalID })
	return entries, nil
}

// Prefix returns the WINE prefix Heroic uses for a GOG game. Heroic names
// the prefix directory after the game's GamesDB sorting title.
func (l Launcher) Prefix(ctx context.Context, gogID string) (string, error) {
	title, err := l.DB.SortingTitle(ctx, gogID)
	if err != nil {
		return "", err
	}
	return filepath.Join(l.PrefixesRoot, title), nil
}
