package messages

// Store boundary messages for Steam/Heroic enumeration and backend detection.
const (
	SteamRootNotFoundFmt    = "steam library not found under %s"
	SteamLibraryReadErrFmt  = "reading steam library %s: %w"
	SteamManifestSkippedFmt = "skipping unreadable app manifest %s: %v"

	HeroicNotFoundFmt         = "heroic configuration not found at %s"
	HeroicInstalledReadErrFmt = "reading %s: %w"
	HeroicInstalledDecodeFmt  = "decoding %s: %w"
	HeroicInstalledShapeFmt   = "%s: expected \"installed\" to be a list"

	GamesDBRequestErrFmt = "fetching GOG sorting title for %s: %w"
	GamesDBStatusFmt     = "fetching GOG sorting title for %s: unexpected status %s"
	GamesDBDecodeErrFmt  = "decoding GOG sorting title for %s: %w"

	BottlesNotFound        = "could not locate bottles-cli or flatpak"
	BottlesUnhealthy       = "bottles-cli health-check failed"
	BottlesListErrFmt      = "listing bottles: %w"
	BottlesDecodeErrFmt    = "decoding bottles-cli output: %w"
	BottlesCreateErrFmt    = "creating bottle %s: %w"
	BottlesPathErrFmt      = "resolving bottles path: %w"
	BottlesNoSysWineRunner = "no sys-wine runner found, using default runner"
	BottlesProgramsErrFmt  = "listing programs in bottle %s: %w"

	WineNotFound          = "could not locate bottles-cli or wine"
	WineInstallHintFmt    = "WINE can be installed with: %s"
	WinePrefixInitErrFmt  = "initializing wine prefix %s: %w"
	WineRegistryAddErrFmt = "reg add %s failed: %w"
)
