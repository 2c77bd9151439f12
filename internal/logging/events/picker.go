package events

import "github.com/atomicstack/action-picker/internal/logging"

type PickerTracer struct{}

type FavoriteTracer struct{}

type CatalogTracer struct{}

var (
	Picker   = PickerTracer{}
	Favorite = FavoriteTracer{}
	Catalog  = CatalogTracer{}
)

func (PickerTracer) Open(query string, contextSensitive bool, records int) {
	logging.Trace("picker.open", map[string]interface{}{
		"query":             query,
		"context_sensitive": contextSensitive,
		"records":           records,
	})
}

func (PickerTracer) Rebuild(query string, contextSensitive bool, records int) {
	logging.Trace("picker.rebuild", map[string]interface{}{
		"query":             query,
		"context_sensitive": contextSensitive,
		"records":           records,
	})
}

func (PickerTracer) Highlight(category, label string) {
	logging.Trace("picker.highlight", map[string]interface{}{"category": category, "label": label})
}

// Relocate records the outcome of restoring the remembered selection.
func (PickerTracer) Relocate(category string, found bool) {
	logging.Trace("picker.relocate", map[string]interface{}{"category": category, "found": found})
}

func (PickerTracer) Activate(category, handler string) {
	logging.Trace("picker.activate", map[string]interface{}{"category": category, "handler": handler})
}

func (PickerTracer) Close(reason string) {
	logging.Trace("picker.close", map[string]interface{}{"reason": reason})
}

func (FavoriteTracer) Toggle(category string, favorite bool) {
	logging.Trace("favorite.toggle", map[string]interface{}{"category": category, "favorite": favorite})
}

func (FavoriteTracer) Skip(category string) {
	logging.Trace("favorite.skip", map[string]interface{}{"category": category})
}

func (CatalogTracer) Reload(path string, actions int) {
	logging.Trace("catalog.reload", map[string]interface{}{"path": path, "actions": actions})
}

func (CatalogTracer) Error(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("catalog.error", map[string]interface{}{"path": path, "error": err.Error()})
}

func (CatalogTracer) Context(context string) {
	logging.Trace("catalog.context", map[string]interface{}{"context": context})
}
