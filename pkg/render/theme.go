package render

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

const (
	// DefaultTheme names the built-in manifest.
	DefaultTheme = "policygen"
	// DefaultLinkColor is the anchor colour used when no theme says otherwise.
	DefaultLinkColor = "#2a4d7c"
	// LinkColorToken is the manifest token holding the anchor colour.
	LinkColorToken = "link"
	// NoLinkColor is the token value that leaves anchors uncoloured. go-theme
	// rejects empty token values, so the absence of a colour is spelled out.
	NoLinkColor = "none"
)

// DefaultManifest describes the built-in theme. The plain variant leaves
// anchors uncoloured so host stylesheets apply.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultTheme,
		Version: "1.0.0",
		Tokens: map[string]string{
			LinkColorToken: DefaultLinkColor,
		},
		Variants: map[string]theme.Variant{
			"plain": {Tokens: map[string]string{LinkColorToken: NoLinkColor}},
			"dark":  {Tokens: map[string]string{LinkColorToken: "#8ab4f8"}},
		},
	}
}

// Selector resolves theme selections from a fixed set of manifests. It
// satisfies theme.ThemeSelector.
type Selector struct {
	manifests map[string]*theme.Manifest
	fallback  string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector registers manifests with a go-theme registry for validation and
// keeps them for selection. The first manifest is the fallback for empty names.
// With no manifests the built-in one is used.
func NewSelector(manifests ...*theme.Manifest) (*Selector, error) {
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{DefaultManifest()}
	}

	registry := theme.NewRegistry()
	sel := &Selector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("render: register theme %q: %w", manifest.Name, err)
		}
		if sel.fallback == "" {
			sel.fallback = manifest.Name
		}
		sel.manifests[manifest.Name] = manifest
	}
	if sel.fallback == "" {
		return nil, fmt.Errorf("render: no theme manifests supplied")
	}
	return sel, nil
}

// Select returns the named manifest and variant. Unknown variants are
// rejected so typos surface instead of silently using base tokens.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.fallback
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("render: theme %q not found", name)
	}
	variant = strings.TrimSpace(variant)
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("render: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// LinkColor reads the anchor colour from a selection, preferring the variant
// token over the manifest token. A nil selection yields DefaultLinkColor.
func LinkColor(selection *theme.Selection) string {
	if selection == nil || selection.Manifest == nil {
		return DefaultLinkColor
	}
	if selection.Variant != "" {
		if v, ok := selection.Manifest.Variants[selection.Variant]; ok {
			if color, ok := v.Tokens[LinkColorToken]; ok {
				return linkColorValue(color)
			}
		}
	}
	if color, ok := selection.Manifest.Tokens[LinkColorToken]; ok {
		return linkColorValue(color)
	}
	return DefaultLinkColor
}

func linkColorValue(token string) string {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case NoLinkColor, "inherit":
		return ""
	}
	return strings.TrimSpace(token)
}
