package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/action-picker/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func TestViewRendersTree(t *testing.T) {
	m := newFixture(t).model(Options{})
	view := m.View()
	for _, want := range []string{"actions (4)", "▾ Math", "Subtract", "Add Child", "(type to search)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestViewMarksFavorites(t *testing.T) {
	m := newFixture(t, "Math/Add").model(Options{})
	view := m.View()
	if !strings.Contains(view, "Favorites") || !strings.Contains(view, "<Math> Add") {
		t.Fatalf("expected favorites bucket in view, got:\n%s", view)
	}
	if !strings.Contains(view, "Add "+theme.FavoriteGlyph) {
		t.Fatalf("expected favorite marker on main tree leaf, got:\n%s", view)
	}
}

func TestViewRendersIcons(t *testing.T) {
	m := newFixture(t).model(Options{ShowIcons: true})
	view := m.View()
	if !strings.Contains(view, theme.Icon("math")+" Math") {
		t.Fatalf("expected category icon, got:\n%s", view)
	}
	if !strings.Contains(view, theme.Icon("add")+theme.Icon("float")+" Add") {
		t.Fatalf("expected action and type icons, got:\n%s", view)
	}
	if !strings.Contains(view, theme.Icon(theme.FallbackIcon)+" About") {
		t.Fatalf("expected fallback icon for About, got:\n%s", view)
	}
}

func TestViewShowsTooltipForHighlightedAction(t *testing.T) {
	h := newFixture(t).harness(Options{ShowTooltips: true})
	h.Press(tea.KeyDown)
	if strings.Contains(h.View(), "Adds two values") {
		t.Fatalf("expected no tooltip on a category row")
	}
	h.Press(tea.KeyDown)
	if !strings.Contains(h.View(), "Adds two values") {
		t.Fatalf("expected tooltip, got:\n%s", h.View())
	}

	hidden := newFixture(t).harness(Options{})
	hidden.Press(tea.KeyDown)
	hidden.Press(tea.KeyDown)
	if strings.Contains(hidden.View(), "Adds two values") {
		t.Fatalf("expected tooltip hidden when disabled")
	}
}

func TestViewNoMatches(t *testing.T) {
	h := newFixture(t).harness(Options{})
	h.Type("zzz")
	if !strings.Contains(h.View(), `No matches for "zzz"`) {
		t.Fatalf("expected no-match message, got:\n%s", h.View())
	}
}

func TestViewShowsBestMatchHint(t *testing.T) {
	h := newFixture(t).harness(Options{})
	h.Type("sub")
	if !strings.Contains(h.View(), "enter runs Subtract") {
		t.Fatalf("expected best match hint, got:\n%s", h.View())
	}
}

func TestViewFooter(t *testing.T) {
	m := newFixture(t).model(Options{ShowFooter: true})
	if !strings.Contains(m.View(), "enter run") {
		t.Fatalf("expected footer hints, got:\n%s", m.View())
	}
	m = newFixture(t).model(Options{})
	if strings.Contains(m.View(), "enter run") {
		t.Fatalf("expected footer hidden by default")
	}
}

func TestViewFitsWidthAndHeight(t *testing.T) {
	m := newFixture(t).model(Options{Width: 16, Height: 6})
	view := m.View()
	lines := strings.Split(view, "\n")
	if len(lines) > 6 {
		t.Fatalf("expected at most 6 lines, got %d:\n%s", len(lines), view)
	}
	for _, line := range lines {
		if w := lipgloss.Width(line); w > 16 {
			t.Fatalf("line exceeds width (%d): %q", w, line)
		}
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("abcdef", 4); got != "abc…" {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := truncateText("abc", 4); got != "abc" {
		t.Fatalf("expected short text untouched, got %q", got)
	}
	if got := truncateText("abc", 0); got != "abc" {
		t.Fatalf("expected zero width to disable truncation, got %q", got)
	}
}
