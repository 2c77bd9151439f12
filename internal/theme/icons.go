package theme

import "strings"

// FallbackIcon names the glyph used when an icon name is unknown.
const FallbackIcon = "object"

// FavoriteGlyph marks the favorites bucket and favorite leaves.
const FavoriteGlyph = "★"

var glyphs = map[string]string{
	"object":   "◇",
	"int":      "#",
	"float":    "≈",
	"bool":     "◐",
	"string":   "\"",
	"vector":   "→",
	"color":    "●",
	"array":    "[]",
	"dict":     "{}",
	"signal":   "⚡",
	"flow":     "»",
	"math":     "∑",
	"add":      "+",
	"subtract": "−",
	"multiply": "×",
	"divide":   "÷",
	"scene":    "▣",
	"node":     "○",
	"function": "ƒ",
	"variable": "𝑥",
	"shell":    "$",
	"tmux":     "▤",
	"copy":     "⎘",
	"info":     "ℹ",
	"favorite": FavoriteGlyph,
}

// aliases map category and type names to glyph names.
var aliases = map[string]string{
	"integer":   "int",
	"boolean":   "bool",
	"real":      "float",
	"str":       "string",
	"favorites": "favorite",
	"clipboard": "copy",
	"print":     "info",
}

// Icon returns the glyph for name. Lookup is case-insensitive and unknown
// names fall back to the object glyph.
func Icon(name string) string {
	if glyph, ok := Lookup(name); ok {
		return glyph
	}
	return glyphs[FallbackIcon]
}

// Lookup returns the glyph for name without falling back.
func Lookup(name string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return "", false
	}
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	glyph, ok := glyphs[key]
	return glyph, ok
}
