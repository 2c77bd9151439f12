package ui

import (
	"github.com/atomicstack/action-picker/internal/runner"
	tea "github.com/charmbracelet/bubbletea"
)

// handleRunnerResultMsg records the handler outcome and ends the program.
// The picker is closed once an action is activated, so failures are
// reported by the caller after the terminal is released.
func (m *Model) handleRunnerResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(runner.Result)
	if !ok {
		return nil
	}
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	m.result = &result
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		return tea.Quit
	}
	if result.Info != "" && m.verbose {
		m.setInfo(result.Info)
	} else {
		m.forceClearInfo()
	}
	return tea.Quit
}
