package menu

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-adminpage/pkg/page"
)

// ManifestPage declares one page inside a menu manifest.
type ManifestPage struct {
	Slug       string         `yaml:"slug" json:"slug"`
	Title      string         `yaml:"title" json:"title"`
	MenuTitle  string         `yaml:"menu_title" json:"menu_title"`
	Capability string         `yaml:"capability" json:"capability"`
	Icon       string         `yaml:"icon" json:"icon"`
	Position   int            `yaml:"position" json:"position"`
	Children   []ManifestPage `yaml:"children" json:"children"`
}

// Manifest is a declarative menu description loaded from YAML or JSON.
type Manifest struct {
	Pages []ManifestPage `yaml:"pages" json:"pages"`
}

// LoadManifestFS walks fsys and merges every manifest file (.yml, .yaml,
// .json) found. Duplicate slugs across files are an error.
func LoadManifestFS(fsys fs.FS) (*Manifest, error) {
	manifest := &Manifest{}
	if fsys == nil {
		return manifest, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isManifestFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("menu: read %s: %w", path, err)
		}

		var doc Manifest
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("menu: parse %s: %w", path, err)
		}
		manifest.Pages = append(manifest.Pages, doc.Pages...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := manifest.Validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// ParseManifest decodes a single manifest document.
func ParseManifest(data []byte) (*Manifest, error) {
	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("menu: parse manifest: %w", err)
	}
	if err := manifest.Validate(); err != nil {
		return nil, err
	}
	return &manifest, nil
}

// Validate checks the manifest for empty or duplicate slugs and missing
// titles. Children deeper than one level are rejected.
func (m *Manifest) Validate() error {
	if m == nil {
		return fmt.Errorf("menu: manifest is nil")
	}
	seen := map[string]struct{}{}

	var check func(pages []ManifestPage, depth int) error
	check = func(pages []ManifestPage, depth int) error {
		for _, entry := range pages {
			slug := strings.TrimSpace(entry.Slug)
			if slug == "" {
				return fmt.Errorf("menu: manifest entry with empty slug")
			}
			if _, dup := seen[slug]; dup {
				return fmt.Errorf("menu: duplicate slug %q in manifest", slug)
			}
			seen[slug] = struct{}{}
			if strings.TrimSpace(entry.Title) == "" {
				return fmt.Errorf("menu: page %q has no title", slug)
			}
			if len(entry.Children) > 0 {
				if depth > 0 {
					return fmt.Errorf("menu: page %q nests deeper than one level", slug)
				}
				if err := check(entry.Children, depth+1); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return check(m.Pages, 0)
}

// BuildMenu constructs pages from the manifest and registers them. The
// shared options apply to every page before its manifest values.
func (m *Manifest) BuildMenu(shared ...page.OptionFn) (*Menu, error) {
	if m == nil {
		return nil, fmt.Errorf("menu: manifest is nil")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	menu := New()
	var build func(entries []ManifestPage, parent string) error
	build = func(entries []ManifestPage, parent string) error {
		for _, entry := range entries {
			fns := append([]page.OptionFn{}, shared...)
			fns = append(fns,
				page.WithPageTitle(entry.Title),
				page.WithMenuTitle(entry.MenuTitle),
				page.WithCapability(entry.Capability),
				page.WithIcon(entry.Icon),
				page.WithPosition(entry.Position),
			)
			if parent != "" {
				fns = append(fns, page.WithParent(parent))
			}

			p, err := page.New(entry.Slug, fns...)
			if err != nil {
				return fmt.Errorf("menu: build page %q: %w", entry.Slug, err)
			}
			if _, err := menu.Add(p); err != nil {
				return err
			}
			if err := build(entry.Children, entry.Slug); err != nil {
				return err
			}
		}
		return nil
	}
	if err := build(m.Pages, ""); err != nil {
		return nil, err
	}
	return menu, nil
}

func isManifestFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml", ".json":
		return true
	default:
		return false
	}
}
