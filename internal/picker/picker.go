// Package picker drives selection and activation over the action tree. It
// owns the current filter and rebuilds the tree from scratch on every change.
package picker

import (
	"context"

	"github.com/google/uuid"

	"github.com/atomicstack/action-picker/internal/action"
	"github.com/atomicstack/action-picker/internal/logging"
	"github.com/atomicstack/action-picker/internal/logging/events"
	"github.com/atomicstack/action-picker/internal/tree"
)

// State is the controller's selection state.
type State int

const (
	Idle State = iota
	Highlighted
	Activated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Highlighted:
		return "highlighted"
	case Activated:
		return "activated"
	default:
		return "unknown"
	}
}

// Notifier receives the controller's outward events.
type Notifier interface {
	ActionSelected(handler *action.Handler)
	Closed()
}

// Loader supplies filtered action records.
type Loader interface {
	Load(filter action.Filter) []action.Record
	Has(category string) bool
}

// Favorites flips favorite membership.
type Favorites interface {
	Toggle(ctx context.Context, category string) (bool, error)
}

// Controller is the selection/activation state machine.
type Controller struct {
	loader    Loader
	favorites Favorites
	notifier  Notifier

	filter     action.Filter
	root       *tree.Node
	records    int
	state      State
	current    *tree.Node
	remembered string
	session    string
}

// New builds a controller. favorites may be nil, which disables toggling.
func New(loader Loader, favorites Favorites, notifier Notifier) *Controller {
	return &Controller{
		loader:    loader,
		favorites: favorites,
		notifier:  notifier,
		root:      &tree.Node{},
	}
}

// Open starts a new session with filter and builds the first tree.
func (c *Controller) Open(filter action.Filter) {
	c.session = uuid.NewString()
	logging.SetSession(c.session)
	c.state = Idle
	c.current = nil
	c.remembered = ""
	c.filter = filter
	c.load()
	events.Picker.Open(c.filter.Query(), c.filter.ContextSensitive, c.records)
}

// Session returns the id of the current session.
func (c *Controller) Session() string { return c.session }

// State returns the current selection state.
func (c *Controller) State() State { return c.state }

// Filter returns the active filter.
func (c *Controller) Filter() action.Filter { return c.filter }

// Tree returns the root of the current tree.
func (c *Controller) Tree() *tree.Node { return c.root }

// Current returns the highlighted or activated node, or nil when idle.
func (c *Controller) Current() *tree.Node {
	if c.state == Idle {
		return nil
	}
	return c.current
}

// Remembered returns the category path restored after rebuilds.
func (c *Controller) Remembered() string { return c.remembered }

// Len returns the number of records in the current tree.
func (c *Controller) Len() int { return c.records }

// SetKeywords replaces the keyword facet from user text and rebuilds.
func (c *Controller) SetKeywords(text string) {
	if c.state == Activated {
		return
	}
	c.filter = c.filter.WithKeywords(text)
	c.rebuild()
}

// SetContextSensitive replaces the context facet and rebuilds.
func (c *Controller) SetContextSensitive(enabled bool) {
	if c.state == Activated {
		return
	}
	c.filter = c.filter.WithContextSensitive(enabled)
	c.rebuild()
}

// Refresh reloads with the unchanged filter, for example after the action
// set or the editing context changed.
func (c *Controller) Refresh() {
	if c.state == Activated {
		return
	}
	c.rebuild()
}

// Highlight selects node. Only selectable nodes are accepted.
func (c *Controller) Highlight(node *tree.Node) bool {
	if c.state == Activated || node == nil || !node.Selectable || !node.IsLeaf() {
		return false
	}
	c.current = node
	c.remembered = node.Category()
	c.state = Highlighted
	events.Picker.Highlight(c.remembered, node.Label)
	return true
}

// Confirm activates the highlighted node. When idle with keywords set, the
// best-ranked visible leaf is activated instead.
func (c *Controller) Confirm() bool {
	return c.confirm("confirm")
}

// NothingSelected handles a confirm gesture that landed on no row. It
// activates the current highlight, the same as Confirm.
func (c *Controller) NothingSelected() bool {
	return c.confirm("nothing-selected")
}

func (c *Controller) confirm(reason string) bool {
	switch c.state {
	case Highlighted:
		c.activate(c.current, reason)
		return true
	case Idle:
		if !c.filter.HasKeywords() {
			return false
		}
		if best := BestMatch(c.root, c.filter.Keywords); best != nil {
			c.activate(best, reason)
			return true
		}
	}
	return false
}

func (c *Controller) activate(node *tree.Node, reason string) {
	c.current = node
	c.state = Activated
	handler := node.Handler()
	events.Picker.Activate(node.Category(), handler.Describe())
	if c.notifier != nil {
		c.notifier.ActionSelected(handler)
	}
	c.close(reason)
}

// Cancel discards the remembered selection, clears the keywords and closes.
func (c *Controller) Cancel() {
	c.state = Idle
	c.current = nil
	c.close("cancel")
}

func (c *Controller) close(reason string) {
	c.remembered = ""
	c.filter = c.filter.WithKeywords("")
	events.Picker.Close(reason)
	if c.notifier != nil {
		c.notifier.Closed()
	}
}

// ToggleFavorite flips the favorite state of node's category and rebuilds.
// Categories absent from the store are ignored.
func (c *Controller) ToggleFavorite(ctx context.Context, node *tree.Node) (bool, error) {
	if c.state == Activated || c.favorites == nil || !node.IsLeaf() {
		return false, nil
	}
	category := node.Category()
	if !c.loader.Has(category) {
		events.Favorite.Skip(category)
		return false, nil
	}
	favorite, err := c.favorites.Toggle(ctx, category)
	if err != nil {
		return favorite, err
	}
	events.Favorite.Toggle(category, favorite)
	c.rebuild()
	return favorite, nil
}

func (c *Controller) load() {
	records := c.loader.Load(c.filter)
	c.records = len(records)
	c.root = tree.Build(records)
}

func (c *Controller) rebuild() {
	c.load()
	events.Picker.Rebuild(c.filter.Query(), c.filter.ContextSensitive, c.records)
	c.current = nil
	c.state = Idle
	if c.remembered == "" {
		return
	}
	found := tree.Find(c.root, c.remembered)
	events.Picker.Relocate(c.remembered, found != nil)
	if found != nil {
		c.current = found
		c.state = Highlighted
	}
}
