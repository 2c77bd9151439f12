package state

import (
	"testing"

	"github.com/atomicstack/action-picker/internal/action"
	"github.com/atomicstack/action-picker/internal/tree"
)

func sampleTree() *tree.Node {
	return tree.Build([]action.Record{
		{Spec: action.Spec{Category: "Math/Add", Text: "Add"}},
		{Spec: action.Spec{Category: "Math/Subtract", Text: "Subtract"}},
		{Spec: action.Spec{Category: "Flow/Branch", Text: "Branch"}},
		{Spec: action.Spec{Category: "Flow/Wait", Text: "Wait"}},
	})
}

func newTestList(root *tree.Node) *List {
	l := NewList()
	l.SetRows(tree.Flatten(root, nil), nil)
	return l
}

func TestListStartsWithoutFocus(t *testing.T) {
	l := newTestList(sampleTree())
	if l.Cursor != -1 || l.Current() != nil {
		t.Fatalf("expected no focus, got %d", l.Cursor)
	}
	if len(l.Rows) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(l.Rows))
	}
}

func TestListWrapsAround(t *testing.T) {
	l := newTestList(sampleTree())
	if !l.MoveDown() || l.Cursor != 0 {
		t.Fatalf("expected first row from no focus, got %d", l.Cursor)
	}
	if !l.MoveUp() || l.Cursor != len(l.Rows)-1 {
		t.Fatalf("expected wrap to last row, got %d", l.Cursor)
	}
	if !l.MoveDown() || l.Cursor != 0 {
		t.Fatalf("expected wrap to first row, got %d", l.Cursor)
	}

	empty := NewList()
	if empty.MoveDown() || empty.MoveUp() {
		t.Fatal("expected no movement for empty list")
	}
}

func TestListHomeEndPaging(t *testing.T) {
	l := newTestList(sampleTree())
	if !l.MoveEnd() || l.Cursor != 5 {
		t.Fatalf("expected cursor 5, got %d", l.Cursor)
	}
	if !l.MoveHome() || l.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", l.Cursor)
	}
	if !l.MovePageDown(2) || l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
	if !l.MovePageDown(10) || l.Cursor != 5 {
		t.Fatalf("expected clamp at end, got %d", l.Cursor)
	}
	if l.MovePageDown(2) {
		t.Fatal("expected no movement past end")
	}
	if !l.MovePageUp(2) || l.Cursor != 3 {
		t.Fatalf("expected cursor 3 after page up, got %d", l.Cursor)
	}
}

func TestListSetRowsKeepsFocus(t *testing.T) {
	root := sampleTree()
	l := newTestList(root)
	wait := tree.Find(root, "Flow/Wait")
	if !l.Focus(wait) {
		t.Fatal("expected Wait to be visible")
	}

	var fold Collapse
	fold.Toggle(root.Children[0])
	l.SetRows(tree.Flatten(root, fold.IsCollapsed), wait)
	if l.Current() != wait {
		t.Fatalf("expected focus kept on Wait, got %v", l.Current())
	}

	fold.Toggle(wait.Parent)
	l.SetRows(tree.Flatten(root, fold.IsCollapsed), wait)
	if l.Cursor != -1 {
		t.Fatalf("expected hidden focus to clear cursor, got %d", l.Cursor)
	}
}

func TestListEnsureCursorVisible(t *testing.T) {
	l := newTestList(sampleTree())
	l.Cursor = 5
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 4 {
		t.Fatalf("expected offset 4, got %d", l.ViewportOffset)
	}
	rows, start := l.Visible(2)
	if start != 4 || len(rows) != 2 {
		t.Fatalf("unexpected window %d/%d", start, len(rows))
	}
	l.Cursor = 0
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 0 {
		t.Fatalf("expected offset 0, got %d", l.ViewportOffset)
	}
	l.Cursor = -1
	l.ViewportOffset = 9
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 4 {
		t.Fatalf("expected clamped offset 4, got %d", l.ViewportOffset)
	}
}
