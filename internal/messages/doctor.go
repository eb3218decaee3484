package messages

// Doctor messages for the doctor command.
const (
	DoctorHealthCheckFmt = "Checking VortexTricks health in %s...\n"

	DoctorCheckNameRegistry = "Registry"
	DoctorCheckNameSteam    = "Steam"
	DoctorCheckNameHeroic   = "Heroic"
	DoctorCheckNameBackend  = "Backend"
	DoctorCheckNameVortex   = "Vortex"

	DoctorRegistryLoadFailedFmt = "Failed to load game registry: %v"
	DoctorRegistryLoadRecommend = "Fix games.toml; every entry must validate before any provisioning runs."
	DoctorRegistryLoadedFmt     = "Game registry loaded (%d games)"

	DoctorSteamFoundFmt    = "Steam library found: %s"
	DoctorSteamMissingFmt  = "Steam library not found under %s"
	DoctorSteamRecommend   = "Install Steam or point VORTEXTRICKS_STEAM_ROOT at the library root."
	DoctorHeroicFoundFmt   = "Heroic configuration found: %s"
	DoctorHeroicMissingFmt = "Heroic configuration not found at %s"
	DoctorHeroicRecommend  = "Install Heroic (flatpak) if you want GOG games registered."

	DoctorBackendBottlesFmt = "Bottles backend available: %s"
	DoctorBackendWine       = "Plain WINE backend available"
	DoctorBackendMissing    = "No usable backend (bottles-cli, flatpak Bottles, or wine)"
	DoctorBackendRecommend  = "Install Bottles or WINE, then re-run doctor."

	DoctorVortexInstalledFmt = "Vortex installed in %s"
	DoctorVortexMissingFmt   = "Vortex not installed in %s"
	DoctorVortexRecommend    = "Run `vortextricks sync` to download and install Vortex."
	DoctorVortexProbeFmt     = "Could not probe Vortex in %s: %v"

	DoctorStatusOKLabel   = "[ OK ]"
	DoctorStatusWarnLabel = "[WARN]"
	DoctorStatusFailLabel = "[FAIL]"

	DoctorResultLineFmt        = "%s %s: %s\n"
	DoctorRecommendationPrefix = "       -> "
	DoctorRecommendationIndent = "          "

	DoctorFailureSummary = "Doctor found problems."
	DoctorFailureError   = "doctor checks failed"
	DoctorSuccessSummary = "All doctor checks passed."
)
