// Package favorites keeps the set of pinned category paths in memory and
// writes every change through to a persistent backend.
package favorites

//go:generate mockgen -source=favorites.go -destination=mocks/mock_backend.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Backend persists favorite category paths.
type Backend interface {
	Favorites(ctx context.Context) ([]string, error)
	AddFavorite(ctx context.Context, category string) error
	RemoveFavorite(ctx context.Context, category string) error
}

// Index answers membership queries from memory. Add and Remove persist
// before returning.
type Index struct {
	mu      sync.RWMutex
	backend Backend
	order   []string
	members map[string]struct{}
}

// NewIndex loads the persisted favorites from backend.
func NewIndex(ctx context.Context, backend Backend) (*Index, error) {
	idx := &Index{backend: backend, members: make(map[string]struct{})}
	if err := idx.Reload(ctx); err != nil {
		return nil, err
	}
	return idx, nil
}

// Reload replaces the in-memory set with the backend contents.
func (i *Index) Reload(ctx context.Context) error {
	items, err := i.backend.Favorites(ctx)
	if err != nil {
		return fmt.Errorf("load favorites: %w", err)
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.order = i.order[:0]
	i.members = make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := i.members[item]; ok {
			continue
		}
		i.members[item] = struct{}{}
		i.order = append(i.order, item)
	}
	return nil
}

// IsFavorite reports whether category is pinned.
func (i *Index) IsFavorite(category string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	_, ok := i.members[category]
	return ok
}

// List returns the favorites in the order they were added.
func (i *Index) List() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return append([]string(nil), i.order...)
}

// Len returns the number of favorites.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.order)
}

// Add pins category. It reports false without touching the backend when the
// category is already a favorite.
func (i *Index) Add(ctx context.Context, category string) (bool, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, ok := i.members[category]; ok {
		return false, nil
	}
	if err := i.backend.AddFavorite(ctx, category); err != nil {
		return false, fmt.Errorf("add favorite %q: %w", category, err)
	}
	i.members[category] = struct{}{}
	i.order = append(i.order, category)
	return true, nil
}

// Remove unpins category. It reports false without touching the backend when
// the category is not a favorite.
func (i *Index) Remove(ctx context.Context, category string) (bool, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, ok := i.members[category]; !ok {
		return false, nil
	}
	if err := i.backend.RemoveFavorite(ctx, category); err != nil {
		return false, fmt.Errorf("remove favorite %q: %w", category, err)
	}
	delete(i.members, category)
	for n, item := range i.order {
		if item == category {
			i.order = append(i.order[:n], i.order[n+1:]...)
			break
		}
	}
	return true, nil
}

// Toggle flips membership of category and returns the new state.
func (i *Index) Toggle(ctx context.Context, category string) (bool, error) {
	if i.IsFavorite(category) {
		_, err := i.Remove(ctx, category)
		return err != nil, err
	}
	_, err := i.Add(ctx, category)
	return err == nil, err
}

// Memory is an in-process Backend.
type Memory struct {
	mu    sync.Mutex
	items []string
}

// NewMemory seeds an in-process backend.
func NewMemory(items ...string) *Memory {
	return &Memory{items: append([]string(nil), items...)}
}

func (m *Memory) Favorites(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.items...), nil
}

func (m *Memory) AddFavorite(_ context.Context, category string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item == category {
			return nil
		}
	}
	m.items = append(m.items, category)
	return nil
}

func (m *Memory) RemoveFavorite(_ context.Context, category string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for n, item := range m.items {
		if item == category {
			m.items = append(m.items[:n], m.items[n+1:]...)
			return nil
		}
	}
	return nil
}
