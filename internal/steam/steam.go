// Package steam enumerates installed games from a local Steam installation.
//
// It reads libraryfolders.vdf to find library roots and the per-game
// appmanifest files inside them. Everything it returns is a raw entry;
// matching entries against the game catalog happens elsewhere.
package steam

import (
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

// DefaultRoot returns the conventional Steam data directory.
func DefaultRoot() (string, error) {
	return fsutil.ExpandHome("~/.local/share/Steam")
}

// Library reads game state out of one Steam installation.
type Library struct {
	Root string
}

// Detected reports whether the Steam root looks like a real installation.
func (l Library) Detected() bool {
	info, err := os.Stat(filepath.Join(l.Root, "steamapps"))
	return err == nil && info.IsDir()
}

// Enumerate returns one raw entry per installed app across all library
// folders. Manifests that cannot be read or parsed are skipped with a
// warning rather than failing the whole run.
func (l Library) Enumerate(log zerolog.Logger) ([]inventory.RawEntry, error) {
	if !l.Detected() {
		return nil, fmt.Errorf(messages.SteamRootNotFoundFmt, l.Root)
	}

	roots := l.libraryRoots(log)
	var entries []inventory.RawEntry
	for _, root := range roots {
		steamapps := filepath.Join(root, "steamapps")
		manifests, err := filepath.Glob(filepath.Join(steamapps, "appmanifest_*.acf"))
		if err != nil {
			return nil, fmt.Errorf(messages.SteamLibraryReadErrFmt, steamapps, err)
		}
		sort.Strings(manifests)
		for _, manifest := range manifests {
			entry, err := readManifest(manifest, steamapps)
			if err != nil {
				log.Warn().Msgf(messages.SteamManifestSkippedFmt, manifest, err)
				continue
			}
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// CompatPrefix returns the Proton prefix path for a Steam app id.
func (l Library) CompatPrefix(appID string) string {
	return filepath.Join(l.Root, "steamapps", "compatdata", appID, "pfx")
}

// libraryRoots returns the Steam root plus any extra roots declared in
// libraryfolders.vdf, deduplicated.
func (l Library) libraryRoots(log zerolog.Logger) []string {
	roots := []string{l.Root}
	seen := map[string]bool{filepath.Clean(l.Root): true}

	vdfPath := filepath.Join(l.Root, "steamapps", "libraryfolders.vdf")
	data, err := os.ReadFile(vdfPath)
	if err != nil {
		log.Debug().Str("path", vdfPath).Msg("no libraryfolders.vdf")
		return roots
	}
	doc, err := parseVDF(data)
	if err != nil {
		log.Warn().Str("path", vdfPath).Err(err).Msg("unparsable libraryfolders.vdf")
		return roots
	}

	folders := doc.Object("libraryfolders")
	if folders == nil {
		folders = doc.Object("LibraryFolders")
	}
	if folders == nil {
		return roots
	}
	for key, value := range folders {
		if !isNumericKey(key) {
			continue
		}
		var path string
		switch v := value.(type) {
		case string:
			// Pre-2021 format: numbered key maps straight to the path.
			path = v
		case vdfObject:
			path = v.String("path")
		}
		if path == "" {
			continue
		}
		clean := filepath.Clean(path)
		if seen[clean] {
			continue
		}
		seen[clean] = true
		roots = append(roots, clean)
	}
	sort.Strings(roots[1:])
	return roots
}

func isNumericKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// readManifest parses one appmanifest_*.acf into a raw entry.
func readManifest(path string, steamapps string) (inventory.RawEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return inventory.RawEntry{}, err
	}
	doc, err := parseVDF(data)
	if err != nil {
		return inventory.RawEntry{}, err
	}
	state := doc.Object("appstate")
	if state == nil {
		return inventory.RawEntry{}, errMalformedVDF
	}
	appID := strings.TrimSpace(state.String("appid"))
	name := strings.TrimSpace(state.String("name"))
	installDir := strings.TrimSpace(state.String("installdir"))
	if appID == "" || installDir == "" {
		return inventory.RawEntry{}, errMalformedVDF
	}
	return inventory.RawEntry{
		LocalID:     appID,
		Name:        name,
		InstallPath: filepath.Join(steamapps, "common", installDir),
	}, nil
}
