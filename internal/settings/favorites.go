package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Favorites returns the persisted favorite categories.
func (s *Store) Favorites(ctx context.Context) ([]string, error) {
	var items []string
	if _, err := s.Get(ctx, ActionFavorites, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddFavorite appends category unless it is already present.
func (s *Store) AddFavorite(ctx context.Context, category string) error {
	return s.editFavorites(ctx, func(items []string) ([]string, bool) {
		for _, item := range items {
			if item == category {
				return items, false
			}
		}
		return append(items, category), true
	})
}

// RemoveFavorite drops category when present.
func (s *Store) RemoveFavorite(ctx context.Context, category string) error {
	return s.editFavorites(ctx, func(items []string) ([]string, bool) {
		for i, item := range items {
			if item == category {
				return append(items[:i], items[i+1:]...), true
			}
		}
		return items, false
	})
}

func (s *Store) editFavorites(ctx context.Context, edit func([]string) ([]string, bool)) error {
	return s.update(ctx, func(tx *sql.Tx) error {
		raw, ok, err := s.raw(ctx, tx, ActionFavorites)
		if err != nil {
			return err
		}
		items := []string{}
		if ok {
			if err := json.Unmarshal([]byte(raw), &items); err != nil {
				return fmt.Errorf("decode %s: %w", Key(ActionFavorites), err)
			}
		}
		next, changed := edit(items)
		if !changed {
			return nil
		}
		return s.set(ctx, tx, ActionFavorites, next)
	})
}
