package action

import "strings"

// HandlerKind selects how an activated action is carried out.
type HandlerKind string

const (
	HandlerPrint     HandlerKind = "print"
	HandlerShell     HandlerKind = "shell"
	HandlerTmux      HandlerKind = "tmux"
	HandlerClipboard HandlerKind = "clipboard"
)

// Handler is the operation invoked when an action is activated. The picker
// never interprets it; a nil Handler marks an informational entry.
type Handler struct {
	Kind    HandlerKind
	Command string
}

// Describe renders a short label for status lines and traces.
func (h *Handler) Describe() string {
	if h == nil {
		return ""
	}
	if h.Command == "" {
		return string(h.Kind)
	}
	return string(h.Kind) + ": " + h.Command
}

// Spec describes a selectable action. Identity is Category plus Text.
type Spec struct {
	Category string
	Text     string
	Tooltip  string
	Icon     string
	TypeIcon string
	Contexts []string
	Handler  *Handler
}

// Key returns the identity of the spec.
func (s Spec) Key() string {
	return s.Category + "\x00" + s.Text
}

// Segments splits the category path on "/".
func (s Spec) Segments() []string {
	return strings.Split(s.Category, "/")
}

// AppliesTo reports whether the spec declares the given editing context.
func (s Spec) AppliesTo(context string) bool {
	context = strings.TrimSpace(context)
	if context == "" {
		return false
	}
	for _, c := range s.Contexts {
		if strings.EqualFold(strings.TrimSpace(c), context) {
			return true
		}
	}
	return false
}

// Record pairs a spec with its favorite flag for one load.
type Record struct {
	Spec     Spec
	Favorite bool
}
