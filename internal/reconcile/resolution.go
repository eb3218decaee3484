package reconcile

import (
	"errors"
	"fmt"

	"github.com/vortextricks/vortextricks/internal/inventory"
	"github.com/vortextricks/vortextricks/internal/messages"
)

// ErrResolutionRequired marks a colliding identity that could not be
// resolved because no interactive input was available. It is recoverable:
// the affected identity is held back while every other identity proceeds.
var ErrResolutionRequired = errors.New("resolution required")

// State tracks a colliding identity through resolution.
type State int

// Resolution states. Non-colliding identities are born Resolved; collisions
// move Unresolved -> AwaitingChoice -> Resolved, or stay AwaitingChoice when
// no choice can be obtained. Nothing is persisted across runs: a re-run with
// no new input re-enters AwaitingChoice for the same identities.
const (
	StateUnresolved State = iota
	StateAwaitingChoice
	StateResolved
)

// Choice is the user's answer for one colliding identity.
type Choice int

// Resolution choices.
const (
	ChoiceUseSteam Choice = iota
	ChoiceUseGOG
	ChoiceSplit
)

// Prompter supplies resolution choices for colliding identities. It is the
// only interactive capability the core consumes; a non-interactive caller
// can inject a constant implementation to make runs deterministic.
type Prompter interface {
	ResolveDuplicate(id Identity) (Choice, error)
}

// PrompterFunc adapts a function into a Prompter.
type PrompterFunc func(id Identity) (Choice, error)

// ResolveDuplicate calls the wrapped function.
func (f PrompterFunc) ResolveDuplicate(id Identity) (Choice, error) {
	return f(id)
}

// OutcomeKind distinguishes the two resolution shapes.
type OutcomeKind int

// Outcome kinds.
const (
	UseSingle OutcomeKind = iota
	SplitBottles
)

// Outcome is the immutable result of resolving one identity. UseSingle
// keeps exactly Primary; SplitBottles keeps Primary (Steam) and Secondary
// (GOG) in separate environments.
type Outcome struct {
	Kind      OutcomeKind
	Primary   inventory.InstalledGame
	Secondary *inventory.InstalledGame
}

// Resolution pairs an identity with its final state and outcome. Outcome is
// nil unless State is StateResolved.
type Resolution struct {
	Identity Identity
	State    State
	Outcome  *Outcome
}

// Resolve walks every identity through the resolution state machine.
// Non-colliding identities resolve immediately to UseSingle. Colliding
// identities ask the prompter; when prompter is nil or declines with
// ErrResolutionRequired, the identity stays AwaitingChoice and is returned
// in pending; the engine never silently picks a winner. Any other prompter
// error aborts the run.
func Resolve(identities []Identity, prompter Prompter) (resolved []Resolution, pending []Identity, err error) {
	for _, id := range identities {
		if !id.Colliding() {
			resolved = append(resolved, Resolution{
				Identity: id,
				State:    StateResolved,
				Outcome:  &Outcome{Kind: UseSingle, Primary: id.Occurrences[0]},
			})
			continue
		}

		if prompter == nil {
			pending = append(pending, id)
			continue
		}

		choice, promptErr := prompter.ResolveDuplicate(id)
		if promptErr != nil {
			if errors.Is(promptErr, ErrResolutionRequired) {
				pending = append(pending, id)
				continue
			}
			return nil, nil, fmt.Errorf(messages.ReconcilePrompterFailedFmt, id.GameID, promptErr)
		}

		outcome, outcomeErr := outcomeFor(id, choice)
		if outcomeErr != nil {
			return nil, nil, outcomeErr
		}
		resolved = append(resolved, Resolution{Identity: id, State: StateResolved, Outcome: outcome})
	}
	return resolved, pending, nil
}

// outcomeFor maps a choice onto the identity's occurrences.
func outcomeFor(id Identity, choice Choice) (*Outcome, error) {
	steam := id.Occurrence(inventory.StoreSteam)
	gog := id.Occurrence(inventory.StoreGOG)
	switch choice {
	case ChoiceUseSteam:
		return &Outcome{Kind: UseSingle, Primary: *steam}, nil
	case ChoiceUseGOG:
		return &Outcome{Kind: UseSingle, Primary: *gog}, nil
	case ChoiceSplit:
		return &Outcome{Kind: SplitBottles, Primary: *steam, Secondary: gog}, nil
	default:
		return nil, fmt.Errorf(messages.ReconcileUnknownChoiceFmt, choice, id.GameID)
	}
}
