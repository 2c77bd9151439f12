package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/atomicstack/action-picker/internal/action"
	"github.com/atomicstack/action-picker/internal/backend"
	"github.com/atomicstack/action-picker/internal/data/dispatcher"
	"github.com/atomicstack/action-picker/internal/picker"
	"github.com/atomicstack/action-picker/internal/runner"
	"github.com/atomicstack/action-picker/internal/theme"
	"github.com/atomicstack/action-picker/internal/tree"
	"github.com/atomicstack/action-picker/internal/ui/command"
	uistate "github.com/atomicstack/action-picker/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	headerSeparator = "→"
	rootTitle       = "actions"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Source supplies filtered records and the current editing context.
type Source interface {
	picker.Loader
	Context() string
}

// Preferences persists UI toggles between runs.
type Preferences interface {
	Set(ctx context.Context, key string, value any) error
}

// Options configures a Model.
type Options struct {
	Width            int
	Height           int
	ShowFooter       bool
	Verbose          bool
	ShowIcons        bool
	ShowTooltips     bool
	ContextSensitive bool

	Favorites   picker.Favorites
	Preferences Preferences
	Executor    command.Executor
	Watcher     *backend.Watcher
	Dispatcher  *dispatcher.Dispatcher
}

// Model implements the Bubble Tea model for the action picker.
type Model struct {
	ctx    context.Context
	source Source
	picker *picker.Controller

	list   *uistate.List
	prompt uistate.Prompt
	fold   uistate.Collapse
	// focusPath remembers a focused category row across rebuilds.
	focusPath string

	loading        bool
	pendingID      string
	pendingLabel   string
	errMsg         string
	infoMsg        string
	infoExpire     time.Time
	width          int
	height         int
	fixedWidth     bool
	fixedHeight    bool
	backend        *backend.Watcher
	backendState   map[backend.Kind]error
	backendLastErr string
	showFooter     bool
	verbose        bool
	showIcons      bool
	showTooltips   bool

	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler

	bus         *command.Bus
	dispatcher  *dispatcher.Dispatcher
	preferences Preferences

	selection selection
	result    *runner.Result
}

// selection collects what the controller reported during one Confirm.
type selection struct {
	node      *tree.Node
	handler   *action.Handler
	activated bool
	closed    bool
}

// notifier adapts the model to picker.Notifier.
type notifier struct {
	m *Model
}

func (n notifier) ActionSelected(h *action.Handler) {
	n.m.selection.handler = h
	n.m.selection.activated = true
}

func (n notifier) Closed() {
	n.m.selection.closed = true
}

// NewModel opens a picker session over source and prepares the first view.
func NewModel(source Source, opts Options) *Model {
	m := &Model{
		ctx:          context.Background(),
		source:       source,
		list:         uistate.NewList(),
		backend:      opts.Watcher,
		backendState: map[backend.Kind]error{},
		showFooter:   opts.ShowFooter,
		verbose:      opts.Verbose,
		showIcons:    opts.ShowIcons,
		showTooltips: opts.ShowTooltips,
		bus:          command.New(opts.Executor),
		dispatcher:   opts.Dispatcher,
		preferences:  opts.Preferences,
	}
	m.picker = picker.New(source, opts.Favorites, notifier{m: m})
	m.picker.Open(action.Filter{}.WithContextSensitive(opts.ContextSensitive))
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.refreshRows()
	m.registerHandlers()
	return m
}

// Picker exposes the selection controller.
func (m *Model) Picker() *picker.Controller {
	return m.picker
}

// Result returns the outcome of the activated handler, or nil when the
// picker closed without running one.
func (m *Model) Result() *runner.Result {
	return m.result
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(runner.Result{}):     m.handleRunnerResultMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// collapsed reports the fold predicate for the current view. Folding is
// suspended while keywords are active so every match stays visible.
func (m *Model) collapsed() func(*tree.Node) bool {
	if len(m.picker.Filter().Keywords) > 0 {
		return nil
	}
	return m.fold.IsCollapsed
}

// refreshRows re-flattens the controller's tree and restores the focused
// row: the highlighted leaf, or its nearest visible ancestor, or a
// previously focused category.
func (m *Model) refreshRows() {
	rows := tree.Flatten(m.picker.Tree(), m.collapsed())
	var focus *tree.Node
	if current := m.picker.Current(); current != nil {
		for n := current; n != nil && n.Parent != nil; n = n.Parent {
			if tree.Index(rows, n) >= 0 {
				focus = n
				break
			}
		}
	} else if m.focusPath != "" {
		focus = categoryRow(rows, m.focusPath)
	}
	m.list.SetRows(rows, focus)
	m.syncViewport()
}

func categoryRow(rows []tree.Row, path string) *tree.Node {
	for _, row := range rows {
		if !row.Node.IsLeaf() && row.Node.Path() == path {
			return row.Node
		}
	}
	return nil
}

func (m *Model) syncViewport() {
	m.list.EnsureCursorVisible(m.maxVisibleItems())
}
