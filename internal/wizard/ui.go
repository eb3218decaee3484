// Package wizard renders the interactive duplicate-resolution prompt.
package wizard

import (
	"errors"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/vortextricks/vortextricks/internal/messages"
	"github.com/vortextricks/vortextricks/internal/terminal"
)

// errCancelled is returned when the user aborts the prompt with Ctrl+C or
// Esc. Callers treat it as "stop asking, hold collisions back".
var errCancelled = errors.New(messages.WizardCancelled)

// errNotInteractive is returned when a prompt runs without a terminal.
var errNotInteractive = errors.New(messages.WizardRequiresTerminal)

// HuhUI renders single-choice prompts with charmbracelet/huh.
type HuhUI struct {
	isTerminal func() bool
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// NewHuhUI creates a HuhUI using the default terminal check.
func NewHuhUI() *HuhUI {
	return &HuhUI{isTerminal: terminal.IsInteractive}
}

// ensureInteractive returns an error when the UI is invoked without a terminal.
func (ui *HuhUI) ensureInteractive() error {
	checker := ui.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if checker() {
		return nil
	}
	return errNotInteractive
}

// promptKeyMap returns the keymap for resolution prompts. Both Esc and
// Ctrl+C abort; a single prompt has no back navigation to distinguish.
func promptKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"))

	// Duplicate lists are tiny; filter mode would only shadow Esc.
	km.Select.Filter.SetEnabled(false)
	km.Select.SetFilter.SetEnabled(false)
	km.Select.ClearFilter.SetEnabled(false)

	return km
}

// runForm validates terminal availability and runs the provided form.
func (ui *HuhUI) runForm(form *huh.Form) error {
	if err := ui.ensureInteractive(); err != nil {
		return err
	}

	form.WithKeyMap(promptKeyMap())
	form.WithProgramOptions(
		tea.WithOutput(os.Stderr),
		tea.WithReportFocus(),
		tea.WithFilter(func(_ tea.Model, msg tea.Msg) tea.Msg {
			// huh's CancelCmd emits InterruptMsg; convert to QuitMsg so the
			// renderer clears the form on the graceful shutdown path.
			if _, ok := msg.(tea.InterruptMsg); ok {
				return tea.QuitMsg{}
			}
			return msg
		}),
	)

	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		return errCancelled
	}
	return err
}

// Select renders a single-choice prompt and stores the picked value.
func (ui *HuhUI) Select(title string, options []string, current *string) error {
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o, o)
	}

	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(opts...).
				Value(current),
		),
	))
}
