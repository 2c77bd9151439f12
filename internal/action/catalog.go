package action

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Actions []catalogEntry `yaml:"actions"`
}

type catalogEntry struct {
	Category string          `yaml:"category"`
	Text     string          `yaml:"text"`
	Tooltip  string          `yaml:"tooltip"`
	Icon     string          `yaml:"icon"`
	TypeIcon string          `yaml:"type_icon"`
	Contexts []string        `yaml:"contexts"`
	Handler  *catalogHandler `yaml:"handler"`
}

type catalogHandler struct {
	Kind    string `yaml:"kind"`
	Command string `yaml:"command"`
}

// LoadCatalog reads action specs from a YAML catalog file.
func LoadCatalog(path string) ([]Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	specs, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return specs, nil
}

// ParseCatalog decodes a YAML catalog document.
func ParseCatalog(data []byte) ([]Spec, error) {
	var doc catalogFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	specs := make([]Spec, 0, len(doc.Actions))
	for i, entry := range doc.Actions {
		spec, err := entry.spec()
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i+1, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func (e catalogEntry) spec() (Spec, error) {
	category := strings.Trim(strings.TrimSpace(e.Category), "/")
	text := strings.TrimSpace(e.Text)
	if category == "" {
		return Spec{}, fmt.Errorf("category is required")
	}
	if text == "" {
		return Spec{}, fmt.Errorf("text is required for %q", category)
	}
	spec := Spec{
		Category: category,
		Text:     text,
		Tooltip:  strings.TrimSpace(e.Tooltip),
		Icon:     strings.TrimSpace(e.Icon),
		TypeIcon: strings.TrimSpace(e.TypeIcon),
		Contexts: e.Contexts,
	}
	if e.Handler != nil {
		kind := HandlerKind(strings.ToLower(strings.TrimSpace(e.Handler.Kind)))
		switch kind {
		case HandlerPrint, HandlerShell, HandlerTmux, HandlerClipboard:
		case "":
			kind = HandlerPrint
		default:
			return Spec{}, fmt.Errorf("unknown handler kind %q for %q", e.Handler.Kind, category)
		}
		spec.Handler = &Handler{Kind: kind, Command: e.Handler.Command}
	}
	return spec, nil
}
