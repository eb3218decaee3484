package messages

// Plan messages for the environment planner.
const (
	PlanProberRequired       = "planning requires a state prober"
	PlanProbeFailedFmt       = "probing state of %s: %w"
	PlanCompatPrefixFmt      = "probing compat prefix for %s (%s): %w"
	PlanRegistryConflictFmt  = "registry key %q wanted by both %q and %q"
	PlanUnresolvedOutcomeFmt = "identity %q reached the planner without a resolution"
)

// Provision messages for the executor.
const (
	ProvisionEnvironmentRequired = "execution requires an environment capability"
	ProvisionCreateFailedFmt     = "creating environment %s: %w"
	ProvisionRegistryWriteFmt    = "writing %s\\%s in %s: %v"
	ProvisionSymlinkFmt          = "linking %s -> %s: %v"

	ProvisionCreatedEnvironmentFmt = "created environment %s"
	ProvisionRegistrySkippedFmt    = "registry writes for %s skipped: %s"
	ProvisionRegistryEntryWroteFmt = "wrote %s\\%s in %s"
	ProvisionSymlinkReplacedFmt    = "linked %s -> %s"
	ProvisionNothingToDoFmt        = "environment %s is up to date"
	ProvisionSkippedAfterCreateFmt = "skipped after environment creation failure: %s"
)
