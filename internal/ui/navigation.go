package ui

import (
	"fmt"

	"github.com/atomicstack/action-picker/internal/logging"
	"github.com/atomicstack/action-picker/internal/logging/events"
	"github.com/atomicstack/action-picker/internal/settings"
	"github.com/atomicstack/action-picker/internal/tree"
	"github.com/atomicstack/action-picker/internal/ui/command"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.loading {
		if key.Matches(keyMsg, keys.Quit) {
			return tea.Quit
		}
		return nil
	}
	if m.handleTextInput(keyMsg) {
		return nil
	}
	switch {
	case key.Matches(keyMsg, keys.Quit), key.Matches(keyMsg, keys.Cancel):
		return m.handleCancel()
	case key.Matches(keyMsg, keys.Confirm):
		return m.handleEnterKey()
	case key.Matches(keyMsg, keys.Up):
		m.moveCursor(m.list.MoveUp)
	case key.Matches(keyMsg, keys.Down):
		m.moveCursor(m.list.MoveDown)
	case key.Matches(keyMsg, keys.PageUp):
		m.moveCursor(func() bool { return m.list.MovePageUp(m.maxVisibleItems()) })
	case key.Matches(keyMsg, keys.PageDown):
		m.moveCursor(func() bool { return m.list.MovePageDown(m.maxVisibleItems()) })
	case key.Matches(keyMsg, keys.Home):
		m.moveCursor(m.list.MoveHome)
	case key.Matches(keyMsg, keys.End):
		m.moveCursor(m.list.MoveEnd)
	case key.Matches(keyMsg, keys.Fold):
		m.toggleFold(m.list.Current())
	case key.Matches(keyMsg, keys.CollapseAll):
		m.collapseAll()
	case key.Matches(keyMsg, keys.ExpandAll):
		m.expandAll()
	case key.Matches(keyMsg, keys.ToggleFavorite):
		m.toggleFavorite()
	case key.Matches(keyMsg, keys.ToggleContext):
		m.toggleContext()
	}
	return nil
}

func (m *Model) moveCursor(move func() bool) {
	if !move() {
		m.syncViewport()
		return
	}
	m.focusRow()
	m.syncViewport()
}

// focusRow pushes the row under the cursor into the controller. Leaves are
// highlighted; categories are only remembered by path.
func (m *Model) focusRow() {
	node := m.list.Current()
	if node == nil {
		return
	}
	events.UI.Cursor(m.list.Cursor, node.Label)
	if node.IsLeaf() {
		m.focusPath = ""
		m.picker.Highlight(node)
		return
	}
	m.focusPath = node.Path()
}

func (m *Model) handleEnterKey() tea.Cmd {
	node := m.list.Current()
	switch {
	case node == nil:
		if !m.picker.NothingSelected() {
			m.setInfo("Nothing selected.")
			return nil
		}
	case !node.IsLeaf():
		m.toggleFold(node)
		return nil
	default:
		m.picker.Highlight(node)
		if !m.picker.Confirm() {
			return nil
		}
	}
	return m.activationCmd()
}

// activationCmd turns the controller's notification into a queued handler.
func (m *Model) activationCmd() tea.Cmd {
	sel := m.selection
	if !sel.activated {
		if sel.closed {
			return tea.Quit
		}
		return nil
	}
	node := m.picker.Current()
	req := command.Request{Handler: sel.handler}
	if node != nil {
		req.ID = node.Category()
		req.Label = node.Label
	}
	m.loading = true
	m.pendingID = req.ID
	m.pendingLabel = req.Label
	m.errMsg = ""
	m.forceClearInfo()
	return m.bus.Execute(m.ctx, req)
}

func (m *Model) handleCancel() tea.Cmd {
	m.picker.Cancel()
	m.prompt.Clear()
	return tea.Quit
}

// toggleFold folds or unfolds a category. On a leaf it folds the parent
// category and moves the cursor onto it.
func (m *Model) toggleFold(node *tree.Node) {
	if node == nil {
		return
	}
	if node.IsLeaf() {
		node = node.Parent
		if node == nil || node.Parent == nil {
			return
		}
	}
	if len(m.picker.Filter().Keywords) > 0 {
		m.setInfo("Folding is disabled while searching.")
		return
	}
	collapsed := m.fold.Toggle(node)
	events.UI.Collapse(node.Path(), collapsed)
	if collapsed {
		m.focusPath = node.Path()
	}
	m.refreshRows()
	if collapsed && m.list.Current() == nil {
		m.list.Focus(node)
	}
}

func (m *Model) collapseAll() {
	if m.fold.CollapseAll(m.picker.Tree()) == 0 {
		return
	}
	events.UI.CollapseAll(true)
	m.refreshRows()
}

// expandAll unfolds everything and brings the remembered selection back
// under the cursor.
func (m *Model) expandAll() {
	if !m.fold.ExpandAll() {
		return
	}
	events.UI.CollapseAll(false)
	m.refreshRows()
}

func (m *Model) toggleFavorite() {
	node := m.list.Current()
	if node == nil || !node.IsLeaf() {
		m.setInfo("Select an action to pin it.")
		return
	}
	label := node.Label
	favorite, err := m.picker.ToggleFavorite(m.ctx, node)
	if err != nil {
		logging.Error(err)
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.refreshRows()
	if favorite {
		m.setInfo(fmt.Sprintf("Added %s to favorites", label))
	} else {
		m.setInfo(fmt.Sprintf("Removed %s from favorites", label))
	}
}

func (m *Model) toggleContext() {
	enabled := !m.picker.Filter().ContextSensitive
	m.picker.SetContextSensitive(enabled)
	m.refreshRows()
	if m.preferences != nil {
		if err := m.preferences.Set(m.ctx, settings.ContextSensitive, enabled); err != nil {
			logging.Error(err)
			m.errMsg = fmt.Sprintf("save context setting: %v", err)
		}
	}
	if enabled {
		m.setInfo("Context-sensitive filtering on")
	} else {
		m.setInfo("Context-sensitive filtering off")
	}
}
