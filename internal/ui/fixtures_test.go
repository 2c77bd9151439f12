package ui

import (
	"context"
	"testing"

	"github.com/atomicstack/action-picker/internal/action"
	"github.com/atomicstack/action-picker/internal/favorites"
	"github.com/atomicstack/action-picker/internal/runner"
	tea "github.com/charmbracelet/bubbletea"
)

func sampleSpecs() []action.Spec {
	return []action.Spec{
		{
			Category: "Math/Add",
			Text:     "Add",
			Tooltip:  "Adds two values",
			Icon:     "add",
			TypeIcon: "float",
			Contexts: []string{"vim"},
			Handler:  &action.Handler{Kind: action.HandlerPrint, Command: "add"},
		},
		{
			Category: "Math/Subtract",
			Text:     "Subtract",
			Handler:  &action.Handler{Kind: action.HandlerPrint, Command: "subtract"},
		},
		{
			Category: "Scene/AddChild",
			Text:     "Add Child",
			Contexts: []string{"zsh"},
			Handler:  &action.Handler{Kind: action.HandlerTmux, Command: "display-message child"},
		},
		{Category: "Info/About", Text: "About"},
	}
}

type recordingExecutor struct {
	handlers []*action.Handler
	err      error
}

func (r *recordingExecutor) Run(_ context.Context, h *action.Handler) runner.Result {
	r.handlers = append(r.handlers, h)
	return runner.Result{Handler: h, Info: "ran " + h.Describe(), Err: r.err}
}

type memoryPrefs map[string]any

func (p memoryPrefs) Set(_ context.Context, key string, value any) error {
	p[key] = value
	return nil
}

type fixture struct {
	store *action.Store
	index *favorites.Index
	exec  *recordingExecutor
	prefs memoryPrefs
}

func newFixture(t *testing.T, favs ...string) *fixture {
	t.Helper()
	index, err := favorites.NewIndex(context.Background(), favorites.NewMemory(favs...))
	if err != nil {
		t.Fatalf("favorites index: %v", err)
	}
	store := action.NewStore(index)
	store.Register(sampleSpecs()...)
	return &fixture{store: store, index: index, exec: &recordingExecutor{}, prefs: memoryPrefs{}}
}

// model builds a model with opts, filling in the fixture's collaborators.
func (f *fixture) model(opts Options) *Model {
	opts.Favorites = f.index
	opts.Executor = f.exec
	opts.Preferences = f.prefs
	return NewModel(f.store, opts)
}

func (f *fixture) harness(opts Options) *Harness {
	return NewHarness(f.model(opts))
}

func altKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func rowLabels(m *Model) []string {
	labels := make([]string, 0, len(m.list.Rows))
	for _, row := range m.list.Rows {
		labels = append(labels, row.Node.Label)
	}
	return labels
}
