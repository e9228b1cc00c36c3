package render

import (
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"
)

type stubSelector struct {
	selection *theme.Selection
	err       error
}

func (s stubSelector) Select(_, _ string, _ ...theme.QueryOption) (*theme.Selection, error) {
	return s.selection, s.err
}

func TestResolveThemeConfig_NilSelector(t *testing.T) {
	cfg, err := ResolveThemeConfig(nil, "acme", "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg != nil {
		t.Fatalf("expected nil config")
	}
}

func TestResolveThemeConfig_MergesVariant(t *testing.T) {
	manifest := &theme.Manifest{
		Name:   "acme",
		Tokens: map[string]string{"brand": "#123456"},
		Templates: map[string]string{
			"chrome.header": "themes/acme/header",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files:  map[string]string{"stylesheet": "theme.css"},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens:    map[string]string{"brand": "#654321"},
				Templates: map[string]string{"chrome.footer": "themes/acme/dark/footer"},
				Assets:    theme.Assets{Files: map[string]string{"stylesheet": "theme.dark.css"}},
			},
		},
	}
	selector := stubSelector{selection: &theme.Selection{Theme: "acme", Variant: "dark", Manifest: manifest}}

	cfg, err := ResolveThemeConfig(selector, "acme", "dark")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Tokens["brand"] != "#654321" {
		t.Fatalf("variant token not applied: %q", cfg.Tokens["brand"])
	}
	if cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("css var not derived: %q", cfg.CSSVars["--brand"])
	}
	if cfg.Partials["chrome.header"] != "themes/acme/header" {
		t.Fatalf("base partial override missing: %q", cfg.Partials["chrome.header"])
	}
	if cfg.Partials["chrome.footer"] != "themes/acme/dark/footer" {
		t.Fatalf("variant partial override missing: %q", cfg.Partials["chrome.footer"])
	}
	if cfg.Partials["chrome.notices"] != "adminpage/notices" {
		t.Fatalf("fallback partial missing: %q", cfg.Partials["chrome.notices"])
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/themes/acme/theme.dark.css" {
		t.Fatalf("unexpected asset url: %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url for unknown asset, got %q", got)
	}
}

func TestThemeData_BuildsTemplateContext(t *testing.T) {
	cfg := &theme.RendererConfig{
		Theme:   "acme",
		Variant: "dark",
		Tokens:  map[string]string{"brand": "#123456"},
		CSSVars: map[string]string{"--brand": "#123456", "--accent": "#abcdef"},
	}

	data := ThemeData(cfg)
	if data["name"] != "acme" || data["variant"] != "dark" {
		t.Fatalf("unexpected identity: %+v", data)
	}
	if diff := cmp.Diff(map[string]string{"brand": "#123456"}, data["tokens"]); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	style, _ := data["css_vars_style"].(string)
	if !strings.Contains(style, "--accent:#abcdef;") || !strings.Contains(style, "--brand:#123456;") {
		t.Fatalf("unexpected style string: %q", style)
	}

	if ThemeData(nil) != nil {
		t.Fatalf("expected nil data for nil config")
	}
}
