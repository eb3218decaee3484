package messages

// Wizard messages for the interactive duplicate-resolution prompt.
const (
	WizardRequiresTerminal = "duplicate resolution requires an interactive terminal"

	WizardDuplicateTitleFmt = "%s is installed in both stores. Which copy should Vortex manage?"
	WizardChoiceSteamFmt    = "Use the Steam version (AppID %s)"
	WizardChoiceGogFmt      = "Use the GOG version (AppID %s)"
	WizardChoiceSplit       = "Keep both in separate bottles"

	WizardCancelled        = "duplicate resolution cancelled"
	WizardNotADuplicateFmt = "%s is not present in both stores"
	WizardUnknownOptionFmt = "unrecognized selection %q"
)
