package messages

// Registry messages for catalog loading and validation.
const (
	RegistryMissingFileFmt = "missing game registry %s: %w"
	RegistryInvalidTOMLFmt = "invalid game registry %s: %w"

	RegistryUnrecognizedKeysFmt = "%s: unrecognized registry keys: %w"
	RegistryGameIDRequiredFmt   = "%s: games[%d].game_id is required"
	RegistryNameRequiredFmt     = "%s: games[%d] (%s): name is required"
	RegistryNoStoreIDFmt        = "%s: games[%d] (%s): at least one store identifier is required (steamapp_ids, gog_id, epic_id, ms_id)"
	RegistryEmptySteamAppIDFmt  = "%s: games[%d] (%s): steamapp_ids must not contain empty entries"
	RegistryBadRegistryKeyFmt   = "%s: games[%d] (%s): registry entry %q is not of the form HIVE\\Sub\\Key"
	RegistryEmptyValueNameFmt   = "%s: games[%d] (%s): registry entry %q has an empty value name"
	RegistryDuplicateGameIDFmt  = "%s: duplicate game_id %q (games[%d] and games[%d])"

	// RegistryValidationGuidance is appended to validation errors.
	RegistryValidationGuidance = "(fix games.toml; the registry is rejected as a whole on any entry error)"
)
