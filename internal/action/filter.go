package action

import (
	"strconv"
	"strings"
)

// Filter selects which actions a load returns. Values are replaced on every
// edit; use WithKeywords and WithContextSensitive to derive a new one.
type Filter struct {
	Keywords         []string
	ContextSensitive bool
}

// ParseKeywords tokenizes user input into lowercase keywords. A single
// leading and trailing space is trimmed, the rest is split on single spaces
// and empty tokens are dropped.
func ParseKeywords(text string) []string {
	text = strings.TrimPrefix(text, " ")
	text = strings.TrimSuffix(text, " ")
	if text == "" {
		return nil
	}
	parts := strings.Split(text, " ")
	keywords := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		lower := strings.ToLower(part)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		keywords = append(keywords, lower)
	}
	if len(keywords) == 0 {
		return nil
	}
	return keywords
}

// WithKeywords returns a copy of the filter with keywords parsed from text.
func (f Filter) WithKeywords(text string) Filter {
	return Filter{Keywords: ParseKeywords(text), ContextSensitive: f.ContextSensitive}
}

// WithContextSensitive returns a copy of the filter with the toggle replaced.
func (f Filter) WithContextSensitive(enabled bool) Filter {
	return Filter{Keywords: append([]string(nil), f.Keywords...), ContextSensitive: enabled}
}

// HasKeywords reports whether any keyword is set.
func (f Filter) HasKeywords() bool {
	return len(f.Keywords) > 0
}

// Query joins the keywords back into a single search string.
func (f Filter) Query() string {
	return strings.Join(f.Keywords, " ")
}

// Matches applies the keyword facet: every keyword must be a substring of
// the category path or the label.
func (f Filter) Matches(spec Spec) bool {
	if len(f.Keywords) == 0 {
		return true
	}
	category := strings.ToLower(spec.Category)
	text := strings.ToLower(spec.Text)
	for _, kw := range f.Keywords {
		if !strings.Contains(category, kw) && !strings.Contains(text, kw) {
			return false
		}
	}
	return true
}

func (f Filter) cacheKey(context string) string {
	var b strings.Builder
	b.WriteString(strconv.FormatBool(f.ContextSensitive))
	if f.ContextSensitive {
		b.WriteByte(0x1f)
		b.WriteString(strings.ToLower(context))
	}
	for _, kw := range f.Keywords {
		b.WriteByte(0x1f)
		b.WriteString(kw)
	}
	return b.String()
}
