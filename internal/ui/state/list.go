package state

import "github.com/atomicstack/action-picker/internal/tree"

// List is the visible row window over the flattened tree. Cursor is -1 when
// no row is focused.
type List struct {
	Rows           []tree.Row
	Cursor         int
	ViewportOffset int
}

// NewList returns an empty list with no focused row.
func NewList() *List {
	return &List{Cursor: -1}
}

// SetRows replaces the rows and focuses focus when it is visible. A nil
// focus, or one that is hidden, leaves no row focused.
func (l *List) SetRows(rows []tree.Row, focus *tree.Node) {
	prevOffset := l.ViewportOffset
	l.Rows = rows
	l.Cursor = tree.Index(rows, focus)
	if len(rows) == 0 || prevOffset < 0 || prevOffset > len(rows)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}

// Current returns the focused node or nil.
func (l *List) Current() *tree.Node {
	if l.Cursor < 0 || l.Cursor >= len(l.Rows) {
		return nil
	}
	return l.Rows[l.Cursor].Node
}

// Focus moves the cursor onto node. It reports whether node is visible.
func (l *List) Focus(node *tree.Node) bool {
	idx := tree.Index(l.Rows, node)
	if idx < 0 {
		return false
	}
	l.Cursor = idx
	return true
}

// MoveUp moves one row up, wrapping to the last row. From no focus it
// lands on the last row.
func (l *List) MoveUp() bool {
	n := len(l.Rows)
	if n == 0 {
		return false
	}
	if l.Cursor > 0 {
		l.Cursor--
	} else {
		l.Cursor = n - 1
	}
	return true
}

// MoveDown moves one row down, wrapping to the first row.
func (l *List) MoveDown() bool {
	n := len(l.Rows)
	if n == 0 {
		return false
	}
	if l.Cursor >= 0 && l.Cursor < n-1 {
		l.Cursor++
	} else {
		l.Cursor = 0
	}
	return true
}

// MoveHome moves the cursor to the first row.
func (l *List) MoveHome() bool {
	if len(l.Rows) == 0 {
		l.Cursor = -1
		return false
	}
	old := l.Cursor
	l.Cursor = 0
	return old != l.Cursor
}

// MoveEnd moves the cursor to the last row.
func (l *List) MoveEnd() bool {
	n := len(l.Rows)
	if n == 0 {
		l.Cursor = -1
		return false
	}
	old := l.Cursor
	l.Cursor = n - 1
	return old != l.Cursor
}

// MovePageUp moves the cursor up by the visible page size.
func (l *List) MovePageUp(maxVisible int) bool {
	return l.moveBy(-l.pageSize(maxVisible))
}

// MovePageDown moves the cursor down by the visible page size.
func (l *List) MovePageDown(maxVisible int) bool {
	return l.moveBy(l.pageSize(maxVisible))
}

func (l *List) moveBy(delta int) bool {
	if len(l.Rows) == 0 {
		l.Cursor = -1
		return false
	}
	old := l.Cursor
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	l.Cursor += delta
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Rows) {
		l.Cursor = len(l.Rows) - 1
	}
	return l.Cursor != old
}

func (l *List) pageSize(maxVisible int) int {
	total := len(l.Rows)
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays
// visible. With no focus the offset is only clamped.
func (l *List) EnsureCursorVisible(maxVisible int) {
	if len(l.Rows) == 0 {
		l.Cursor = -1
		l.ViewportOffset = 0
		return
	}
	if l.Cursor >= len(l.Rows) {
		l.Cursor = len(l.Rows) - 1
	}
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := len(l.Rows) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.ViewportOffset > maxOffset {
		l.ViewportOffset = maxOffset
	}
	if l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
	if l.Cursor < 0 {
		return
	}
	if l.Cursor < l.ViewportOffset {
		l.ViewportOffset = l.Cursor
	}
	upper := l.ViewportOffset + maxVisible - 1
	if l.Cursor > upper {
		l.ViewportOffset = l.Cursor - maxVisible + 1
		if l.ViewportOffset < 0 {
			l.ViewportOffset = 0
		}
		if l.ViewportOffset > maxOffset {
			l.ViewportOffset = maxOffset
		}
	}
}

// Visible returns the rows inside the viewport and the index of the first.
func (l *List) Visible(maxVisible int) ([]tree.Row, int) {
	if maxVisible <= 0 || len(l.Rows) <= maxVisible {
		return l.Rows, 0
	}
	start := l.ViewportOffset
	if start < 0 {
		start = 0
	}
	if start+maxVisible > len(l.Rows) {
		start = len(l.Rows) - maxVisible
		if start < 0 {
			start = 0
		}
		l.ViewportOffset = start
	}
	return l.Rows[start : start+maxVisible], start
}
