package table

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Format returns the rows padded according to the widest entry in each
// column. Rows may be ragged; missing cells render as empty. Trailing
// padding is trimmed.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	var widths []int
	for _, row := range rows {
		for c, cell := range row {
			if c >= len(widths) {
				widths = append(widths, 0)
			}
			if w := lipgloss.Width(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c := range widths {
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			if c > 0 {
				b.WriteString("  ")
			}
			pad := strings.Repeat(" ", widths[c]-lipgloss.Width(cell))
			if c < len(alignments) && alignments[c] == AlignRight {
				b.WriteString(pad)
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				b.WriteString(pad)
			}
		}
		out[i] = strings.TrimRight(b.String(), " ")
	}
	return out
}

// Write formats rows and writes them to w, one line each.
func Write(w io.Writer, rows [][]string, alignments []Alignment) error {
	for _, line := range Format(rows, alignments) {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}
