package dispatcher

import (
	"github.com/atomicstack/action-picker/internal/action"
	"github.com/atomicstack/action-picker/internal/backend"
	"github.com/atomicstack/action-picker/internal/logging/events"
)

type Result struct {
	CatalogUpdated bool
	ContextChanged bool
}

// Dispatcher applies backend events to the action store.
type Dispatcher struct {
	store       *action.Store
	catalogPath string
	// pinned disables context updates when the context was fixed at start.
	pinned bool
}

func New(store *action.Store, catalogPath string, pinnedContext bool) *Dispatcher {
	return &Dispatcher{store: store, catalogPath: catalogPath, pinned: pinnedContext}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		if evt.Kind == backend.KindCatalog {
			events.Catalog.Error(d.catalogPath, evt.Err)
		}
		return res
	}
	switch evt.Kind {
	case backend.KindCatalog:
		if specs, ok := evt.Data.([]action.Spec); ok {
			d.store.Replace(specs)
			events.Catalog.Reload(d.catalogPath, len(specs))
			res.CatalogUpdated = true
		}
	case backend.KindContext:
		if d.pinned {
			return res
		}
		if ctx, ok := evt.Data.(string); ok && ctx != d.store.Context() {
			d.store.SetContext(ctx)
			events.Catalog.Context(ctx)
			res.ContextChanged = true
		}
	}
	return res
}
