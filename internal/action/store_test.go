package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type favoriteSet map[string]bool

func (f favoriteSet) IsFavorite(category string) bool { return f[category] }

func sampleSpecs() []Spec {
	return []Spec{
		{Category: "Math/Add", Text: "Add"},
		{Category: "Scene/AddChild", Text: "Add Child", Contexts: []string{"vim"}},
		{Category: "Math/Subtract", Text: "Subtract", Contexts: []string{"VIM", "zsh"}},
	}
}

func categories(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Spec.Category)
	}
	return out
}

func TestLoadKeywordFilterIsCaseInsensitiveSubstring(t *testing.T) {
	store := NewStore(nil)
	store.Register(sampleSpecs()...)

	records := store.Load(Filter{}.WithKeywords("add"))
	assert.Equal(t, []string{"Math/Add", "Scene/AddChild"}, categories(records))

	records = store.Load(Filter{}.WithKeywords("ADD scene"))
	assert.Equal(t, []string{"Scene/AddChild"}, categories(records))

	records = store.Load(Filter{}.WithKeywords("add nothing"))
	assert.Empty(t, records)
}

func TestLoadEmptyFilterPassesEverythingInRegistrationOrder(t *testing.T) {
	store := NewStore(nil)
	store.Register(sampleSpecs()...)
	records := store.Load(Filter{})
	assert.Equal(t, []string{"Math/Add", "Scene/AddChild", "Math/Subtract"}, categories(records))
	assert.Equal(t, records, store.Load(Filter{}))
}

func TestLoadContextSensitive(t *testing.T) {
	store := NewStore(nil)
	store.Register(sampleSpecs()...)
	store.SetContext("vim")

	filter := Filter{ContextSensitive: true}
	assert.Equal(t, []string{"Scene/AddChild", "Math/Subtract"}, categories(store.Load(filter)))

	store.SetContext("zsh")
	assert.Equal(t, []string{"Math/Subtract"}, categories(store.Load(filter)))

	store.SetContext("")
	assert.Empty(t, store.Load(filter))

	combined := filter.WithKeywords("sub")
	store.SetContext("vim")
	assert.Equal(t, []string{"Math/Subtract"}, categories(store.Load(combined)))
}

func TestLoadDoesNotMutateFilter(t *testing.T) {
	store := NewStore(nil)
	store.Register(sampleSpecs()...)
	filter := Filter{Keywords: []string{"math"}, ContextSensitive: false}
	_ = store.Load(filter)
	assert.Equal(t, []string{"math"}, filter.Keywords)
	assert.False(t, filter.ContextSensitive)
}

func TestLoadRecomputesFavorites(t *testing.T) {
	favs := favoriteSet{"Math/Add": true}
	store := NewStore(favs)
	store.Register(sampleSpecs()...)

	records := store.Load(Filter{})
	require.Len(t, records, 3)
	assert.True(t, records[0].Favorite)
	assert.False(t, records[1].Favorite)

	favs["Math/Add"] = false
	favs["Math/Subtract"] = true
	records = store.Load(Filter{})
	assert.False(t, records[0].Favorite)
	assert.True(t, records[2].Favorite)
}

func TestReplaceInvalidatesCachedLoads(t *testing.T) {
	store := NewStore(nil)
	store.Register(sampleSpecs()...)
	require.Len(t, store.Load(Filter{}.WithKeywords("math")), 2)

	store.Replace([]Spec{{Category: "Flow/Branch", Text: "Branch"}})
	assert.Empty(t, store.Load(Filter{}.WithKeywords("math")))
	assert.True(t, store.Has("Flow/Branch"))
	assert.False(t, store.Has("Math/Add"))

	store.Clear()
	assert.Equal(t, 0, store.Len())
}

func TestLoadReturnsIndependentCopies(t *testing.T) {
	store := NewStore(nil)
	store.Register(Spec{Category: "A/B", Text: "B", Handler: &Handler{Kind: HandlerPrint, Command: "b"}})
	records := store.Load(Filter{})
	records[0].Spec.Handler.Command = "changed"
	again := store.Load(Filter{})
	assert.Equal(t, "b", again[0].Spec.Handler.Command)
}

func TestCategoriesDistinct(t *testing.T) {
	store := NewStore(nil)
	store.Register(
		Spec{Category: "A/B", Text: "one"},
		Spec{Category: "A/B", Text: "two"},
		Spec{Category: "C", Text: "three"},
	)
	assert.Equal(t, []string{"A/B", "C"}, store.Categories())
}
