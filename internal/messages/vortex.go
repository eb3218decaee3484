package messages

// Vortex messages for release lookup and installer coordination.
const (
	VortexCreateRequestErrFmt         = "failed to create release request: %w"
	VortexFetchLatestReleaseErrFmt    = "failed to fetch latest Vortex release: %w"
	VortexFetchLatestReleaseStatusFmt = "failed to fetch latest Vortex release: unexpected status %s"
	VortexDecodeLatestReleaseErrFmt   = "failed to decode latest Vortex release: %w"
	VortexLatestReleaseMissingTag     = "latest Vortex release has no tag name"
	VortexInvalidReleaseTagFmt        = "invalid Vortex release tag %q: %w"

	VortexDownloadErrFmt      = "downloading %s: %w"
	VortexDownloadStatusFmt   = "downloading %s: unexpected status %s"
	VortexDownloadWriteErrFmt = "writing installer to %s: %w"
	VortexInstallerRequired   = "ensure requires an installer capability"
	VortexProbeFailedFmt      = "probing Vortex in %s: %v"
	VortexInstallFailedFmt    = "installing Vortex into %s: %v"
	VortexInstallNotEffective = "installer finished but Vortex is still missing"
	VortexAlreadyInstalledFmt = "Vortex already installed in %s"
	VortexInstalledFmt        = "installed Vortex %s into %s"
)
