package tree

import (
	"strings"

	"github.com/atomicstack/action-picker/internal/action"
)

// FavoritesLabel is the label of the synthetic favorites bucket.
const FavoritesLabel = "Favorites"

// Node is a category or a leaf in the action tree. Categories carry no
// record and are never selectable.
type Node struct {
	Label      string
	Children   []*Node
	Record     *action.Record
	Selectable bool
	Bucket     bool
	Parent     *Node
}

// IsLeaf reports whether the node was produced from an action record.
func (n *Node) IsLeaf() bool {
	return n != nil && n.Record != nil
}

// Category returns the record category path for leaves and "" otherwise.
func (n *Node) Category() string {
	if !n.IsLeaf() {
		return ""
	}
	return n.Record.Spec.Category
}

// Handler returns the leaf handler, which may be nil.
func (n *Node) Handler() *action.Handler {
	if !n.IsLeaf() {
		return nil
	}
	return n.Record.Spec.Handler
}

// InFavorites reports whether the node sits inside the favorites bucket.
func (n *Node) InFavorites() bool {
	for p := n; p != nil; p = p.Parent {
		if p.Bucket {
			return true
		}
	}
	return false
}

// Path joins the labels from below the root down to the node with "/".
func (n *Node) Path() string {
	if n == nil || n.Parent == nil {
		return ""
	}
	labels := make([]string, 0, 4)
	for p := n; p != nil && p.Parent != nil; p = p.Parent {
		labels = append(labels, p.Label)
	}
	for i, j := 0, len(labels)-1; i < j; i, j = i+1, j-1 {
		labels[i], labels[j] = labels[j], labels[i]
	}
	return strings.Join(labels, "/")
}

func (n *Node) addChild(child *Node) *Node {
	child.Parent = n
	n.Children = append(n.Children, child)
	return child
}

func (n *Node) findCategory(label string) *Node {
	for _, child := range n.Children {
		if child.Bucket || child.IsLeaf() {
			continue
		}
		if strings.EqualFold(child.Label, label) {
			return child
		}
	}
	return nil
}

// Build converts records into a tree rooted at a synthetic root. The last
// category segment is replaced by the record text as the leaf label.
func Build(records []action.Record) *Node {
	root := &Node{}
	var favorites *Node
	for _, rec := range records {
		if rec.Favorite && favorites == nil {
			favorites = root.addChild(&Node{Label: FavoritesLabel, Bucket: true})
		}
	}
	for i := range records {
		rec := records[i]
		parent := insertCategories(root, rec.Spec.Segments())
		leaf := parent.addChild(newLeaf(rec, rec.Spec.Text))
		if rec.Favorite && favorites != nil {
			favorites.addChild(newLeaf(rec, favoriteText(leaf)))
		}
	}
	prune(root)
	return root
}

func insertCategories(root *Node, segments []string) *Node {
	parent := root
	if len(segments) <= 1 {
		return parent
	}
	categories := segments[:len(segments)-1]
	for i, segment := range categories {
		if existing := parent.findCategory(segment); existing != nil {
			parent = existing
			continue
		}
		for _, label := range categories[i:] {
			parent = parent.addChild(&Node{Label: label})
		}
		break
	}
	return parent
}

func newLeaf(rec action.Record, text string) *Node {
	dup := rec
	return &Node{Label: text, Record: &dup, Selectable: true}
}

// favoriteText renders "<A/B/C> label" from the ancestors of leaf.
func favoriteText(leaf *Node) string {
	return "<" + leaf.Parent.Path() + "> " + leaf.Label
}

// prune removes categories left without children, depth-first so empty
// chains collapse in a single traversal.
func prune(n *Node) {
	kept := n.Children[:0]
	for _, child := range n.Children {
		prune(child)
		if !child.IsLeaf() && len(child.Children) == 0 {
			child.Parent = nil
			continue
		}
		kept = append(kept, child)
	}
	for i := len(kept); i < len(n.Children); i++ {
		n.Children[i] = nil
	}
	n.Children = kept
}

// Find returns the first leaf whose category equals category. The main tree
// is searched before the favorites bucket.
func Find(root *Node, category string) *Node {
	if root == nil || category == "" {
		return nil
	}
	var bucket *Node
	for _, child := range root.Children {
		if child.Bucket {
			bucket = child
			continue
		}
		if found := findLeaf(child, category); found != nil {
			return found
		}
	}
	if bucket != nil {
		return findLeaf(bucket, category)
	}
	return nil
}

func findLeaf(n *Node, category string) *Node {
	if n.IsLeaf() && n.Record.Spec.Category == category {
		return n
	}
	for _, child := range n.Children {
		if found := findLeaf(child, category); found != nil {
			return found
		}
	}
	return nil
}

// FirstLeaf descends through first children until it reaches a leaf.
func FirstLeaf(root *Node) *Node {
	n := root
	for n != nil {
		if n.IsLeaf() {
			return n
		}
		if len(n.Children) == 0 {
			return nil
		}
		n = n.Children[0]
	}
	return nil
}

// Leaves returns every leaf in depth-first order.
func Leaves(root *Node) []*Node {
	var out []*Node
	Walk(root, func(n *Node, _ int) bool {
		if n.IsLeaf() {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Walk visits nodes below root depth-first. Returning false from fn skips
// the node's children.
func Walk(root *Node, fn func(n *Node, depth int) bool) {
	if root == nil {
		return
	}
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		for _, child := range n.Children {
			if fn(child, depth) {
				visit(child, depth+1)
			}
		}
	}
	visit(root, 0)
}

// Equal compares two trees structurally: labels, selectability and the
// identity of attached records.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Label != b.Label || a.Selectable != b.Selectable || a.Bucket != b.Bucket {
		return false
	}
	if a.IsLeaf() != b.IsLeaf() {
		return false
	}
	if a.IsLeaf() {
		if a.Record.Spec.Key() != b.Record.Spec.Key() || a.Record.Favorite != b.Record.Favorite {
			return false
		}
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
