// Package theming bridges go-theme manifests into formkit configuration.
//
// Manifest tokens use dotted names. "color.<name>" (or "colors.<name>")
// becomes a theme colour, "font.family" sets the font family and "mode"
// sets the colour mode. Variant tokens override the manifest's base tokens.
package theming

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/config"
)

// CSSVarPrefix prefixes every custom property produced by CSSVars.
const CSSVarPrefix = "formkit-"

// ErrNoSelection is returned when a selector yields no manifest.
var ErrNoSelection = errors.New("theming: selection has no manifest")

// Tokens flattens the manifest tokens for the selection's variant.
func Tokens(selection *theme.Selection) map[string]string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	tokens := maps.Clone(selection.Manifest.Tokens)
	if tokens == nil {
		tokens = map[string]string{}
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		maps.Copy(tokens, variant.Tokens)
	}
	return tokens
}

// FromSelection converts the selected manifest into a theme patch.
func FromSelection(selection *theme.Selection) config.Config {
	return FromTokens(Tokens(selection))
}

// FromTokens converts flat tokens into a theme patch. Unknown tokens are
// ignored here but still reach the page through CSSVars.
func FromTokens(tokens map[string]string) config.Config {
	if len(tokens) == 0 {
		return config.Config{}
	}
	t := &config.Theme{}
	for key, value := range tokens {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		switch name := normalizeKey(key); {
		case strings.HasPrefix(name, "color."):
			if t.Colors == nil {
				t.Colors = map[string]string{}
			}
			t.Colors[strings.TrimPrefix(name, "color.")] = value
		case name == "font.family":
			t.FontFamily = config.Ptr(value)
		case name == "mode":
			t.Mode = config.Ptr(value)
		}
	}
	if t.Colors == nil && t.FontFamily == nil && t.Mode == nil {
		return config.Config{}
	}
	return config.Config{Theme: t}
}

// CSSVars maps the configured theme onto custom property names suitable for
// the html renderer's WithCSSVars option.
func CSSVars(cfg *config.Config) map[string]string {
	if cfg == nil || cfg.Theme == nil {
		return nil
	}
	vars := make(map[string]string, len(cfg.Theme.Colors)+1)
	for name, value := range cfg.Theme.Colors {
		vars[CSSVarPrefix+"color-"+cssName(name)] = value
	}
	if cfg.Theme.FontFamily != nil && *cfg.Theme.FontFamily != "" {
		vars[CSSVarPrefix+"font-family"] = *cfg.Theme.FontFamily
	}
	if len(vars) == 0 {
		return nil
	}
	return vars
}

// Apply selects a theme and patches store with it. The selection is returned
// so callers can serve its assets.
func Apply(store *config.Store, selector theme.ThemeSelector, name, variant string) (*theme.Selection, error) {
	if store == nil {
		return nil, errors.New("theming: store is nil")
	}
	if selector == nil {
		return nil, errors.New("theming: selector is nil")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("theming: select %q: %w", name, err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil, ErrNoSelection
	}
	patch := FromSelection(selection)
	if err := config.Validate(&patch); err != nil {
		return nil, fmt.Errorf("theming: %s: %w", selection.Theme, err)
	}
	store.Configure(patch)
	return selection, nil
}

func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, prefix := range []string{"colors.", "colors-", "color-"} {
		if strings.HasPrefix(key, prefix) {
			return "color." + strings.TrimPrefix(key, prefix)
		}
	}
	switch key {
	case "fontfamily", "font", "font-family":
		return "font.family"
	}
	return key
}

func cssName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), ".", "-")
}
