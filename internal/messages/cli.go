package messages

// CLI messages for command definitions and top-level output.
const (
	RootUse   = "vortextricks"
	RootShort = "Set up Vortex and register Steam/GOG games inside a WINE environment"

	SyncUse   = "sync"
	SyncShort = "Reconcile game libraries, provision environments, and install Vortex"

	PlanUse   = "plan"
	PlanShort = "Show the provisioning work that a sync would perform"

	DoctorUse   = "doctor"
	DoctorShort = "Check stores, registry, and environment state for common problems"

	VersionTemplate  = "{{.Version}}\n"
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"

	FlagDryRun             = "dry-run"
	FlagDryRunUsage        = "compute and print the provisioning plan without executing it"
	FlagPrefer             = "prefer"
	FlagPreferUsage        = "non-interactive duplicate resolution: steam, gog, or split"
	FlagRegistry           = "registry"
	FlagRegistryUsage      = "path to the game registry (default: games.toml next to the binary)"
	FlagVerbose            = "verbose"
	FlagVerboseUsage       = "enable debug logging"
	FlagVortexVersion      = "vortex-version"
	FlagVortexVersionUsage = "pin the Vortex installer version instead of querying the latest release"

	PreferInvalidFmt        = "invalid --prefer value %q (want steam, gog, or split)"
	PreferSplitNeedsBottles = "--prefer split requires the Bottles backend"

	SyncNoGamesFound        = "No registered games found in any store; nothing to do."
	SyncUnresolvedHeader    = "Unresolved duplicates (re-run interactively or pass --prefer):"
	SyncUnresolvedItemFmt   = "  %s (Steam=%s, GOG=%s)"
	SyncPlanHeaderFmt       = "Plan for environment %s (runner %s):"
	SyncPlanCreateEnv       = "  create environment"
	SyncPlanRegistryFmt     = "  write %s\\%s = %s"
	SyncPlanSymlinkFmt      = "  link %s -> %s"
	SyncPlanConflictFmt     = "  conflict: %s"
	SyncPlanUpToDate        = "  nothing to do"
	SyncCompleted           = "Sync completed."
	SyncCompletedWithIssues = "Sync completed with failures or skipped items."

	SyncResultLineFmt   = "%s %s: %s"
	SyncStatusOKLabel   = "[ OK ]"
	SyncStatusSkipLabel = "[SKIP]"
	SyncStatusFailLabel = "[FAIL]"
)
