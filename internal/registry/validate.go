package registry

import (
	"fmt"
	"strings"

	"github.com/vortextricks/vortextricks/internal/messages"
)

// Registry key paths must start with a known hive.
var knownHives = map[string]bool{
	"HKEY_CLASSES_ROOT":   true,
	"HKEY_CURRENT_CONFIG": true,
	"HKEY_CURRENT_USER":   true,
	"HKEY_LOCAL_MACHINE":  true,
	"HKEY_USERS":          true,
	"HKCR":                true,
	"HKCU":                true,
	"HKLM":                true,
	"HKU":                 true,
}

// validate checks every game entry and rejects the catalog on the first
// violation. Duplicate game_id detection runs over the full list so the
// error can name both colliding positions.
func validate(games []GameSpec, source string) error {
	for i, g := range games {
		if strings.TrimSpace(g.GameID) == "" {
			return fmt.Errorf("%w: "+messages.RegistryGameIDRequiredFmt+" "+messages.RegistryValidationGuidance, ErrRegistryValidation, source, i)
		}
		if strings.TrimSpace(g.Name) == "" {
			return fmt.Errorf("%w: "+messages.RegistryNameRequiredFmt+" "+messages.RegistryValidationGuidance, ErrRegistryValidation, source, i, g.GameID)
		}
		if !g.HasStoreIdentifier() {
			return fmt.Errorf("%w: "+messages.RegistryNoStoreIDFmt+" "+messages.RegistryValidationGuidance, ErrRegistryValidation, source, i, g.GameID)
		}
		for _, sid := range g.SteamAppIDs {
			if strings.TrimSpace(sid) == "" {
				return fmt.Errorf("%w: "+messages.RegistryEmptySteamAppIDFmt+" "+messages.RegistryValidationGuidance, ErrRegistryValidation, source, i, g.GameID)
			}
		}
		for _, entry := range g.RegistryEntries {
			if !wellFormedKey(entry.Key) {
				return fmt.Errorf("%w: "+messages.RegistryBadRegistryKeyFmt+" "+messages.RegistryValidationGuidance, ErrRegistryValidation, source, i, g.GameID, entry.Key)
			}
			if strings.TrimSpace(entry.Value) == "" {
				return fmt.Errorf("%w: "+messages.RegistryEmptyValueNameFmt+" "+messages.RegistryValidationGuidance, ErrRegistryValidation, source, i, g.GameID, entry.Key)
			}
		}
	}

	seen := make(map[string]int, len(games))
	for i, g := range games {
		if first, ok := seen[g.GameID]; ok {
			return fmt.Errorf("%w: "+messages.RegistryDuplicateGameIDFmt, ErrDuplicateGameID, source, g.GameID, first, i)
		}
		seen[g.GameID] = i
	}
	return nil
}

// hiveAliases maps short hive names to their canonical form. Expanding them
// at load time keeps key comparison against live prefix state exact.
var hiveAliases = map[string]string{
	"HKCR": "HKEY_CLASSES_ROOT",
	"HKCU": "HKEY_CURRENT_USER",
	"HKLM": "HKEY_LOCAL_MACHINE",
	"HKU":  "HKEY_USERS",
}

// canonicalizeKeys rewrites hive aliases in validated registry entries.
func canonicalizeKeys(games []GameSpec) {
	for gi := range games {
		for ei := range games[gi].RegistryEntries {
			key := games[gi].RegistryEntries[ei].Key
			hive, rest, ok := strings.Cut(key, `\`)
			if !ok {
				continue
			}
			if full, aliased := hiveAliases[hive]; aliased {
				games[gi].RegistryEntries[ei].Key = full + `\` + rest
			}
		}
	}
}

// wellFormedKey reports whether key follows HIVE\Sub\Key syntax.
func wellFormedKey(key string) bool {
	parts := strings.Split(key, `\`)
	if len(parts) < 2 {
		return false
	}
	if !knownHives[parts[0]] {
		return false
	}
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			return false
		}
	}
	return true
}
