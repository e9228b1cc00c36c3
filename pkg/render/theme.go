package render

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ResolveThemeConfig selects a theme and flattens the manifest (base plus
// variant overrides plus chrome fallbacks) into a renderer configuration.
// A nil selector resolves to a nil config without error.
func ResolveThemeConfig(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme %q: %w", name, err)
	}
	if selection == nil {
		return nil, nil
	}

	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: defaultChromePartials(),
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
	}

	manifest := selection.Manifest
	if manifest == nil {
		cfg.AssetURL = func(string) string { return "" }
		return cfg, nil
	}

	mergeStringMap(cfg.Tokens, manifest.Tokens)
	mergeStringMap(cfg.Partials, manifest.Templates)

	assetPrefix := manifest.Assets.Prefix
	assetFiles := map[string]string{}
	mergeStringMap(assetFiles, manifest.Assets.Files)

	if selection.Variant != "" {
		if v, ok := manifest.Variants[selection.Variant]; ok {
			mergeStringMap(cfg.Tokens, v.Tokens)
			mergeStringMap(cfg.Partials, v.Templates)
			mergeStringMap(assetFiles, v.Assets.Files)
			if strings.TrimSpace(v.Assets.Prefix) != "" {
				assetPrefix = v.Assets.Prefix
			}
		}
	}

	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+key] = value
	}

	cfg.AssetURL = assetResolver(assetPrefix, assetFiles)
	return cfg, nil
}

// ThemeData converts a renderer configuration into the template context
// injected under the "theme" key.
func ThemeData(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return nil
	}
	return map[string]any{
		"name":           cfg.Theme,
		"variant":        cfg.Variant,
		"tokens":         copyStringMap(cfg.Tokens),
		"partials":       copyStringMap(cfg.Partials),
		"css_vars":       copyStringMap(cfg.CSSVars),
		"css_vars_style": cssVarsStyle(cfg.CSSVars),
	}
}

func defaultChromePartials() map[string]string {
	return map[string]string{
		"chrome.page":    "adminpage/page",
		"chrome.header":  "adminpage/header",
		"chrome.notices": "adminpage/notices",
		"chrome.footer":  "adminpage/footer",
	}
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		key = strings.TrimSpace(key)
		if key == "" {
			return ""
		}
		file, ok := files[key]
		if !ok || strings.TrimSpace(file) == "" {
			return ""
		}
		base := strings.TrimRight(strings.TrimSpace(prefix), "/")
		if base == "" {
			return file
		}
		return base + "/" + strings.TrimLeft(file, "/")
	}
}

func mergeStringMap(dst map[string]string, src map[string]string) {
	for key, value := range src {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		dst[key] = value
	}
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s:%s;", key, vars[key])
	}
	return b.String()
}
