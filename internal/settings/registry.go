package settings

import (
	"context"
	"fmt"
)

// Setting is a registered key with its default value.
type Setting struct {
	Name        string
	Default     any
	Description string
}

const (
	ShowTypeIcons    = "ui/show_type_icons"
	ShowTooltips     = "ui/show_tooltips"
	ContextSensitive = "ui/context_sensitive"
	ActionFavorites  = "settings/action_favorites"
)

// Defaults lists every setting the picker reads.
var Defaults = []Setting{
	{Name: ShowTypeIcons, Default: true, Description: "render action type icons"},
	{Name: ShowTooltips, Default: true, Description: "show the highlighted action tooltip"},
	{Name: ContextSensitive, Default: false, Description: "start with context-sensitive filtering"},
	{Name: ActionFavorites, Default: []string{}, Description: "pinned action categories"},
}

// Deprecated lists keys written by earlier releases that are removed on start.
var Deprecated = []string{
	"ui/nodes/show_type_icons",
	"run/test_scene",
}

// Lookup returns the registered setting for name.
func Lookup(name string) (Setting, bool) {
	key := Key(name)
	for _, s := range Defaults {
		if Key(s.Name) == key {
			return s, true
		}
	}
	return Setting{}, false
}

// Initialize writes missing defaults and clears deprecated keys.
func (s *Store) Initialize(ctx context.Context) error {
	for _, name := range Deprecated {
		if err := s.Clear(ctx, name); err != nil {
			return err
		}
	}
	for _, setting := range Defaults {
		ok, err := s.Has(ctx, setting.Name)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		if err := s.Set(ctx, setting.Name, setting.Default); err != nil {
			return fmt.Errorf("default %s: %w", setting.Name, err)
		}
	}
	return nil
}
