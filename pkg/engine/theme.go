package engine

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// themeContext flattens a go-theme selection into the map exposed to
// templates under the "theme" global. Variant values override the base
// manifest, tokens double as CSS custom properties, and asset files are
// resolved against the manifest prefix.
func themeContext(sel *theme.Selection) map[string]any {
	if sel == nil || sel.Manifest == nil {
		return nil
	}

	manifest := sel.Manifest
	tokens := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		tokens[key] = value
	}
	templates := make(map[string]string, len(manifest.Templates))
	for key, value := range manifest.Templates {
		templates[key] = value
	}
	prefix := manifest.Assets.Prefix
	files := make(map[string]string, len(manifest.Assets.Files))
	for key, value := range manifest.Assets.Files {
		files[key] = value
	}

	if variant, ok := manifest.Variants[sel.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
		for key, value := range variant.Templates {
			templates[key] = value
		}
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
		for key, value := range variant.Assets.Files {
			files[key] = value
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}
	assets := make(map[string]string, len(files))
	for key, file := range files {
		assets[key] = strings.TrimSuffix(prefix, "/") + "/" + file
	}

	return map[string]any{
		"name":      sel.Theme,
		"variant":   sel.Variant,
		"tokens":    tokens,
		"css_vars":  cssVars,
		"templates": templates,
		"assets":    assets,
	}
}
