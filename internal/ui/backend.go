package ui

import (
	"github.com/atomicstack/action-picker/internal/backend"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent feeds an event to the dispatcher and rebuilds the tree
// when the action set or the editing context changed.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if m.backendState == nil {
		m.backendState = make(map[backend.Kind]error)
	}
	m.backendState[evt.Kind] = evt.Err
	if m.dispatcher == nil {
		return
	}
	res := m.dispatcher.Handle(evt)
	if evt.Err != nil {
		m.backendLastErr = evt.Err.Error()
		return
	}
	if res.CatalogUpdated || (res.ContextChanged && m.picker.Filter().ContextSensitive) {
		m.picker.Refresh()
		m.refreshRows()
	}
	if warn, _ := m.hasBackendIssue(); !warn {
		m.backendLastErr = ""
	}
}

func (m *Model) hasBackendIssue() (bool, string) {
	for _, err := range m.backendState {
		if err != nil {
			msg := m.backendLastErr
			if msg == "" {
				msg = err.Error()
			}
			return true, msg
		}
	}
	return false, ""
}
