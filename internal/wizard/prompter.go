package wizard

import (
	"errors"
	"fmt"

	"github.com/vortextricks/vortextricks/internal/inventory"
	"github.com/vortextricks/vortextricks/internal/messages"
	"github.com/vortextricks/vortextricks/internal/reconcile"
)

// UI is the prompt surface the resolver needs.
type UI interface {
	Select(title string, options []string, current *string) error
}

// Prompter asks the user to resolve cross-store duplicates. AllowSplit
// offers the separate-bottles choice, which only the Bottles backend can
// honor.
type Prompter struct {
	UI         UI
	AllowSplit bool
}

// ResolveDuplicate presents the duplicate and maps the picked option back
// to a resolution choice. A cancelled or non-interactive prompt declines
// with the recoverable resolution-required error so the identity is held
// back instead of aborting the run.
func (p *Prompter) ResolveDuplicate(id reconcile.Identity) (reconcile.Choice, error) {
	steam := id.Occurrence(inventory.StoreSteam)
	gog := id.Occurrence(inventory.StoreGOG)
	if steam == nil || gog == nil {
		return 0, fmt.Errorf(messages.WizardNotADuplicateFmt, id.GameID)
	}

	steamOption := fmt.Sprintf(messages.WizardChoiceSteamFmt, steam.LocalID)
	gogOption := fmt.Sprintf(messages.WizardChoiceGogFmt, gog.LocalID)
	options := []string{steamOption, gogOption}
	if p.AllowSplit {
		options = append(options, messages.WizardChoiceSplit)
	}

	picked := steamOption
	title := fmt.Sprintf(messages.WizardDuplicateTitleFmt, id.DisplayName())
	if err := p.UI.Select(title, options, &picked); err != nil {
		if errors.Is(err, errCancelled) || errors.Is(err, errNotInteractive) {
			return 0, fmt.Errorf("%w: %s", reconcile.ErrResolutionRequired, err)
		}
		return 0, err
	}

	switch picked {
	case steamOption:
		return reconcile.ChoiceUseSteam, nil
	case gogOption:
		return reconcile.ChoiceUseGOG, nil
	case messages.WizardChoiceSplit:
		return reconcile.ChoiceSplit, nil
	default:
		return 0, fmt.Errorf(messages.WizardUnknownOptionFmt, picked)
	}
}
