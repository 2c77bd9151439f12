package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/action-picker/internal/logging/events"
	"github.com/atomicstack/action-picker/internal/picker"
	"github.com/atomicstack/action-picker/internal/theme"
	"github.com/atomicstack/action-picker/internal/tree"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: m.header(), style: styles.Header})

	visible, start := m.list.Visible(m.maxVisibleItems())
	if len(m.list.Rows) == 0 {
		msg := "(no actions)"
		if m.prompt.Text != "" {
			msg = fmt.Sprintf("No matches for %q", m.prompt.Text)
		}
		lines = append(lines, styledLine{text: msg, style: styles.Info})
	}
	for i, row := range visible {
		lines = append(lines, m.buildRowLine(row, start+i == m.list.Cursor))
	}
	if tip := m.tooltip(); tip != "" {
		lines = append(lines, styledLine{text: tip, style: styles.Tooltip})
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: footerText(), style: styles.Footer})
	}
	// Reserve 2 rows for the bottom bar (status + prompt).
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	bottom := []styledLine{m.statusLine(), {text: m.filterPrompt()}}
	lines = append(lines, applyWidth(bottom, m.width)...)
	return renderLines(lines)
}

// header renders "actions" plus the editing context when filtering by it.
func (m *Model) header() string {
	title := rootTitle
	if n := m.picker.Len(); n > 0 {
		title = fmt.Sprintf("%s (%d)", rootTitle, n)
	}
	if !m.picker.Filter().ContextSensitive {
		return title
	}
	ctx := ""
	if m.source != nil {
		ctx = m.source.Context()
	}
	if ctx == "" {
		ctx = "no context"
	}
	return title + headerSeparator + ctx
}

// buildRowLine constructs a single styledLine for a tree row. Only the
// indicator column is highlighted separately.
func (m *Model) buildRowLine(row tree.Row, selected bool) styledLine {
	node := row.Node
	indicator := "▌"
	var b strings.Builder
	b.WriteString(indicator)
	b.WriteString(" ")
	b.WriteString(strings.Repeat("  ", row.Depth))

	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if node.IsLeaf() {
		if m.showIcons {
			b.WriteString(leafIcons(node))
			b.WriteString(" ")
		}
		b.WriteString(node.Label)
		if node.Record.Favorite && !node.InFavorites() {
			b.WriteString(" ")
			b.WriteString(theme.FavoriteGlyph)
		}
		if selected {
			lineStyle = styles.SelectedItem
		}
	} else {
		if m.fold.IsCollapsed(node) && m.collapsed() != nil {
			b.WriteString("▸ ")
		} else {
			b.WriteString("▾ ")
		}
		if m.showIcons {
			b.WriteString(categoryIcon(node))
			b.WriteString(" ")
		}
		b.WriteString(node.Label)
		lineStyle = styles.Category
		if selected {
			lineStyle = styles.SelectedCategory
		}
	}
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
	}
	text := b.String()
	if m.width > 0 {
		if pad := m.width - lipgloss.Width(text); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          text,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func categoryIcon(node *tree.Node) string {
	if node.Bucket {
		return theme.FavoriteGlyph
	}
	return theme.Icon(node.Label)
}

// leafIcons renders the action icon followed by its type icon when set.
func leafIcons(node *tree.Node) string {
	spec := node.Record.Spec
	icon := theme.Icon(spec.Icon)
	if spec.TypeIcon != "" {
		icon += theme.Icon(spec.TypeIcon)
	}
	return icon
}

func (m *Model) tooltip() string {
	if !m.showTooltips {
		return ""
	}
	node := m.list.Current()
	if node == nil || !node.IsLeaf() {
		return ""
	}
	return strings.TrimSpace(node.Record.Spec.Tooltip)
}

func (m *Model) statusLine() styledLine {
	switch {
	case m.errMsg != "":
		return styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	case m.loading:
		return styledLine{text: fmt.Sprintf("Running %s…", m.pendingLabel), style: styles.Loading}
	}
	if warn, msg := m.hasBackendIssue(); warn {
		return styledLine{text: fmt.Sprintf("Warning: %s", msg), style: styles.Error}
	}
	if m.picker.State() == picker.Idle && m.picker.Filter().HasKeywords() {
		if best := picker.BestMatch(m.picker.Tree(), m.picker.Filter().Keywords); best != nil {
			return styledLine{text: fmt.Sprintf("enter runs %s", best.Label), style: styles.Info}
		}
	}
	return styledLine{}
}

func footerText() string {
	bindings := keys.footerBindings()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		help := b.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return strings.Join(parts, "  ")
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height)
	m.syncViewport()
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 3 // header plus the status and prompt rows
	if m.tooltip() != "" {
		used++
	}
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = truncateText(line.text, width)
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

// truncateText clamps text to width display cells. The filter prompt
// carries ANSI styling, so measurement and cutting are escape-aware.
func truncateText(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	if width == 1 {
		return truncate.String(text, 1)
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
