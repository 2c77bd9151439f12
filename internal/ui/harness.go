package ui

import (
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives the UI model programmatically for integration tests.
type Harness struct {
	model *Model
	quit  bool
}

// NewHarness creates a harness for the provided model. The filter caret is
// made static so no blink timers are scheduled.
func NewHarness(model *Model) *Harness {
	if model != nil {
		model.filterCursor.SetMode(cursor.CursorStatic)
	}
	return &Harness{model: model}
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

// Type sends each rune of text as a key press.
func (h *Harness) Type(text string) {
	for _, r := range text {
		if r == ' ' {
			h.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Press sends a single non-rune key.
func (h *Harness) Press(t tea.KeyType) {
	h.Send(tea.KeyMsg{Type: t})
}

// Quit reports whether the model asked the program to exit.
func (h *Harness) Quit() bool {
	return h.quit
}

// processCmd runs cmd and feeds its messages back into the model, expanding
// batches. Quit is recorded instead of delivered.
func (h *Harness) processCmd(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		switch msg := msg.(type) {
		case nil:
			continue
		case tea.QuitMsg:
			h.quit = true
			continue
		case tea.BatchMsg:
			queue = append(queue, msg...)
			continue
		}
		mdl, follow := h.model.Update(msg)
		if updated, ok := mdl.(*Model); ok {
			h.model = updated
		}
		queue = append(queue, follow)
	}
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
