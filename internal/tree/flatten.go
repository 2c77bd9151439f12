package tree

import "strings"

// Row is one visible line of a flattened tree.
type Row struct {
	Node  *Node
	Depth int
}

// Flatten lists the visible nodes of root in display order. Children of
// nodes for which collapsed returns true are hidden. A nil collapsed shows
// everything.
func Flatten(root *Node, collapsed func(*Node) bool) []Row {
	var rows []Row
	Walk(root, func(n *Node, depth int) bool {
		rows = append(rows, Row{Node: n, Depth: depth})
		if n.IsLeaf() {
			return false
		}
		return collapsed == nil || !collapsed(n)
	})
	return rows
}

// Index returns the position of node in rows, or -1.
func Index(rows []Row, node *Node) int {
	if node == nil {
		return -1
	}
	for i, row := range rows {
		if row.Node == node {
			return i
		}
	}
	return -1
}

// Dump renders the tree as indented text: categories end with "/", leaves
// are prefixed with "-" and favorites are marked with "*".
func Dump(root *Node) string {
	var b strings.Builder
	for _, row := range Flatten(root, nil) {
		b.WriteString(strings.Repeat("  ", row.Depth))
		n := row.Node
		switch {
		case n.IsLeaf():
			b.WriteString("- ")
			b.WriteString(n.Label)
			if n.Record.Favorite && !n.InFavorites() {
				b.WriteString(" *")
			}
		default:
			b.WriteString(n.Label)
			b.WriteString("/")
		}
		b.WriteByte('\n')
	}
	return b.String()
}
