package table

import (
	"bytes"
	"testing"
)

func TestFormatPadsColumns(t *testing.T) {
	lines := Format([][]string{
		{"KEY", "VALUE"},
		{"ui/show_tooltips", "true"},
		{"ui/x", "false"},
	}, nil)
	want := []string{
		"KEY               VALUE",
		"ui/show_tooltips  true",
		"ui/x              false",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestFormatRightAlignAndRaggedRows(t *testing.T) {
	lines := Format([][]string{
		{"a", "1", "x"},
		{"bb", "22"},
	}, []Alignment{AlignLeft, AlignRight})
	if lines[0] != "a    1  x" {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if lines[1] != "bb  22" {
		t.Fatalf("unexpected second line %q", lines[1])
	}
}

func TestFormatWideRunes(t *testing.T) {
	lines := Format([][]string{{"日", "x"}, {"abc", "y"}}, nil)
	if lines[0] != "日   x" {
		t.Fatalf("unexpected line %q", lines[0])
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, [][]string{{"a", "b"}}, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.String() != "a  b\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
	if Format(nil, nil) != nil {
		t.Fatal("expected nil for no rows")
	}
}
