package ui

import (
	"unicode"

	"github.com/atomicstack/action-picker/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const filterPlaceholder = "(type to search)"

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(before int) {
	if before != m.prompt.CursorPos() {
		m.filterCursorDirty = true
	}
}

// handleTextInput applies filter editing keys. It reports whether the key
// was consumed.
func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	before := m.prompt.CursorPos()
	switch msg.String() {
	case "ctrl+u":
		if !m.prompt.Clear() {
			return false
		}
		events.Filter.Cleared()
		m.keywordsChanged(before)
		return true
	case "ctrl+w":
		if !m.prompt.DeleteWordBackward() {
			return false
		}
		events.Filter.WordBackspace(m.prompt.Text)
		m.keywordsChanged(before)
		return true
	case "ctrl+a":
		if !m.prompt.MoveStart() {
			return false
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(m.prompt.Cursor)
		return true
	case "ctrl+e":
		if !m.prompt.MoveEnd() {
			return false
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(m.prompt.Cursor)
		return true
	case "alt+b":
		if !m.prompt.MoveWordBackward() {
			return false
		}
		m.noteFilterCursorChange(before)
		events.Filter.CursorWord(m.prompt.Cursor)
		return true
	case "alt+f":
		if !m.prompt.MoveWordForward() {
			return false
		}
		m.noteFilterCursorChange(before)
		events.Filter.CursorWord(m.prompt.Cursor)
		return true
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if !m.prompt.DeleteRuneBackward() {
			return false
		}
		events.Filter.Backspace(m.prompt.Text)
		m.keywordsChanged(before)
		return true
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false
			}
		}
		return m.appendToFilter(string(msg.Runes))
	case tea.KeySpace:
		return m.appendToFilter(" ")
	case tea.KeyLeft:
		if !m.prompt.MoveRuneBackward() {
			return false
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(m.prompt.Cursor)
		return true
	case tea.KeyRight:
		if !m.prompt.MoveRuneForward() {
			return false
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(m.prompt.Cursor)
		return true
	}
	return false
}

func (m *Model) appendToFilter(text string) bool {
	before := m.prompt.CursorPos()
	if !m.prompt.Insert(text) {
		return false
	}
	events.Filter.Append(m.prompt.Text)
	m.keywordsChanged(before)
	return true
}

// keywordsChanged rebuilds the tree for the edited prompt text.
func (m *Model) keywordsChanged(before int) {
	m.noteFilterCursorChange(before)
	m.forceClearInfo()
	m.errMsg = ""
	m.picker.SetKeywords(m.prompt.Text)
	m.refreshRows()
}

func (m *Model) filterPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	text := m.prompt.Text
	if text == "" {
		runes := []rune(filterPlaceholder)
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(string(runes[0]))
		return prompt + caret + render(styles.FilterPlaceholder, string(runes[1:]))
	}
	runes := []rune(text)
	pos := m.prompt.CursorPos()
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + m.renderFilterCursor(caretRune) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy()
	base = base.Inline(true)

	if m.filterCursor.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}
