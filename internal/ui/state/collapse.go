package state

import "github.com/atomicstack/action-picker/internal/tree"

// Collapse tracks which category rows are folded, keyed by category path so
// the state survives tree rebuilds.
type Collapse struct {
	closed map[string]struct{}
}

// IsCollapsed reports whether node is a folded category.
func (c *Collapse) IsCollapsed(node *tree.Node) bool {
	if c == nil || node == nil || node.IsLeaf() || len(c.closed) == 0 {
		return false
	}
	_, ok := c.closed[node.Path()]
	return ok
}

// Toggle flips the fold state of a category and returns the new state.
// Leaves are ignored.
func (c *Collapse) Toggle(node *tree.Node) bool {
	if node == nil || node.IsLeaf() {
		return false
	}
	if c.closed == nil {
		c.closed = make(map[string]struct{})
	}
	path := node.Path()
	if _, ok := c.closed[path]; ok {
		delete(c.closed, path)
		return false
	}
	c.closed[path] = struct{}{}
	return true
}

// CollapseAll folds every category below root.
func (c *Collapse) CollapseAll(root *tree.Node) int {
	if c.closed == nil {
		c.closed = make(map[string]struct{})
	}
	count := 0
	tree.Walk(root, func(n *tree.Node, _ int) bool {
		if !n.IsLeaf() {
			c.closed[n.Path()] = struct{}{}
			count++
		}
		return true
	})
	return count
}

// ExpandAll unfolds everything.
func (c *Collapse) ExpandAll() bool {
	if len(c.closed) == 0 {
		return false
	}
	for path := range c.closed {
		delete(c.closed, path)
	}
	return true
}

// Reveal unfolds every ancestor of node so it becomes visible.
func (c *Collapse) Reveal(node *tree.Node) bool {
	if node == nil || len(c.closed) == 0 {
		return false
	}
	changed := false
	for p := node.Parent; p != nil && p.Parent != nil; p = p.Parent {
		path := p.Path()
		if _, ok := c.closed[path]; ok {
			delete(c.closed, path)
			changed = true
		}
	}
	return changed
}

// Len returns the number of folded categories.
func (c *Collapse) Len() int {
	return len(c.closed)
}
