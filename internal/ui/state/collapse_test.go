package state

import (
	"testing"

	"github.com/atomicstack/action-picker/internal/tree"
)

func TestCollapseToggleSurvivesRebuild(t *testing.T) {
	var fold Collapse
	root := sampleTree()
	math := root.Children[0]
	if !fold.Toggle(math) {
		t.Fatal("expected Math to fold")
	}
	rebuilt := sampleTree()
	if !fold.IsCollapsed(rebuilt.Children[0]) {
		t.Fatal("expected fold state keyed by path")
	}
	rows := tree.Flatten(rebuilt, fold.IsCollapsed)
	if len(rows) != 4 {
		t.Fatalf("expected Math children hidden, got %d rows", len(rows))
	}
	if fold.Toggle(math) {
		t.Fatal("expected second toggle to unfold")
	}
	if fold.Toggle(tree.FirstLeaf(root)) {
		t.Fatal("expected leaves to be ignored")
	}
}

func TestCollapseAllAndReveal(t *testing.T) {
	var fold Collapse
	root := sampleTree()
	if n := fold.CollapseAll(root); n != 2 {
		t.Fatalf("expected 2 folded categories, got %d", n)
	}
	if rows := tree.Flatten(root, fold.IsCollapsed); len(rows) != 2 {
		t.Fatalf("expected only top-level rows, got %d", len(rows))
	}
	wait := tree.Find(root, "Flow/Wait")
	if !fold.Reveal(wait) {
		t.Fatal("expected reveal to unfold Flow")
	}
	if fold.IsCollapsed(wait.Parent) || !fold.IsCollapsed(root.Children[0]) {
		t.Fatal("expected only the ancestor of Wait to unfold")
	}
	if !fold.ExpandAll() || fold.Len() != 0 {
		t.Fatalf("expected everything unfolded, got %d", fold.Len())
	}
	if fold.ExpandAll() {
		t.Fatal("expected no change on second expand")
	}
}
