package action

import (
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 64

// FavoriteChecker reports whether a category path is a favorite.
type FavoriteChecker interface {
	IsFavorite(category string) bool
}

// Store holds the registered actions and answers filtered loads. Results for
// a given filter and context are cached until the action set changes.
type Store struct {
	mu        sync.RWMutex
	specs     []Spec
	context   string
	favorites FavoriteChecker
	cache     *lru.Cache[string, []int]
}

// NewStore constructs an empty store. favorites may be nil.
func NewStore(favorites FavoriteChecker) *Store {
	cache, err := lru.New[string, []int](defaultCacheSize)
	if err != nil {
		cache = nil
	}
	return &Store{favorites: favorites, cache: cache}
}

// Register appends specs in registration order.
func (s *Store) Register(specs ...Spec) {
	if len(specs) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, spec := range specs {
		s.specs = append(s.specs, cloneSpec(spec))
	}
	s.purgeLocked()
}

// Replace swaps the entire action set.
func (s *Store) Replace(specs []Spec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.specs = make([]Spec, 0, len(specs))
	for _, spec := range specs {
		s.specs = append(s.specs, cloneSpec(spec))
	}
	s.purgeLocked()
}

// Clear drops every registered action.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.specs = nil
	s.purgeLocked()
}

// Len returns the number of registered actions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.specs)
}

// SetContext sets the current editing context used by context-sensitive loads.
func (s *Store) SetContext(context string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	context = strings.TrimSpace(context)
	if context == s.context {
		return
	}
	s.context = context
	s.purgeLocked()
}

// Context returns the current editing context.
func (s *Store) Context() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.context
}

// Has reports whether any registered action uses the category path.
func (s *Store) Has(category string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, spec := range s.specs {
		if spec.Category == category {
			return true
		}
	}
	return false
}

// Categories returns the distinct category paths in registration order.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{}, len(s.specs))
	out := make([]string, 0, len(s.specs))
	for _, spec := range s.specs {
		if _, ok := seen[spec.Category]; ok {
			continue
		}
		seen[spec.Category] = struct{}{}
		out = append(out, spec.Category)
	}
	return out
}

// Load returns the records passing the filter in registration order. The
// favorite flag is recomputed on every call.
func (s *Store) Load(filter Filter) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	indexes := s.matchLocked(filter)
	records := make([]Record, 0, len(indexes))
	for _, idx := range indexes {
		spec := s.specs[idx]
		favorite := false
		if s.favorites != nil {
			favorite = s.favorites.IsFavorite(spec.Category)
		}
		records = append(records, Record{Spec: cloneSpec(spec), Favorite: favorite})
	}
	return records
}

func (s *Store) matchLocked(filter Filter) []int {
	key := filter.cacheKey(s.context)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			return cached
		}
	}
	indexes := make([]int, 0, len(s.specs))
	for i, spec := range s.specs {
		if filter.ContextSensitive && !spec.AppliesTo(s.context) {
			continue
		}
		if !filter.Matches(spec) {
			continue
		}
		indexes = append(indexes, i)
	}
	if s.cache != nil {
		s.cache.Add(key, indexes)
	}
	return indexes
}

func (s *Store) purgeLocked() {
	if s.cache != nil {
		s.cache.Purge()
	}
}

func cloneSpec(spec Spec) Spec {
	dup := spec
	if spec.Contexts != nil {
		dup.Contexts = append([]string(nil), spec.Contexts...)
	}
	if spec.Handler != nil {
		h := *spec.Handler
		dup.Handler = &h
	}
	return dup
}
