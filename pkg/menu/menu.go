// Package menu registers admin pages into a navigable menu and mounts their
// handlers on an HTTP mux.
package menu

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-adminpage/pkg/page"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Entry is one rendered menu item.
type Entry struct {
	Slug     string
	Title    string
	Icon     string
	Position int
	URL      string
	Children []Entry
}

// Menu holds registered pages in insertion order and assigns hook suffixes.
type Menu struct {
	mu     sync.RWMutex
	pages  []*page.Page
	bySlug map[string]*page.Page
}

// New creates an empty menu.
func New() *Menu {
	return &Menu{bySlug: make(map[string]*page.Page)}
}

// Add registers a page and returns its hook suffix. Duplicate slugs fail,
// and child pages require their parent to be registered first.
func (m *Menu) Add(p *page.Page) (string, error) {
	if m == nil {
		return "", fmt.Errorf("menu: menu is nil")
	}
	if p == nil {
		return "", fmt.Errorf("menu: page is required")
	}
	slug := p.Slug()

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.bySlug[slug]; exists {
		return "", fmt.Errorf("menu: page %q already registered", slug)
	}

	hook := "toplevel_page_" + slug
	if parent := p.Parent(); parent != "" {
		parentPage, ok := m.bySlug[parent]
		if !ok {
			return "", fmt.Errorf("menu: parent %q of page %q is not registered", parent, slug)
		}
		if parentPage.Parent() != "" {
			return "", fmt.Errorf("menu: parent %q is itself a child page", parent)
		}
		hook = parent + "_page_" + slug
	}

	p.BindHook(hook)
	m.pages = append(m.pages, p)
	m.bySlug[slug] = p
	return hook, nil
}

// Get retrieves a registered page by slug.
func (m *Menu) Get(slug string) (*page.Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.bySlug[strings.TrimSpace(slug)]
	if !ok {
		return nil, fmt.Errorf("menu: page %q not found", slug)
	}
	return p, nil
}

// Has reports whether a slug is registered.
func (m *Menu) Has(slug string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.bySlug[strings.TrimSpace(slug)]
	return ok
}

// Entries returns the menu tree sorted by position, ties broken by
// registration order.
func (m *Menu) Entries() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	type ordered struct {
		entry Entry
		order int
	}
	var roots []ordered
	children := map[string][]ordered{}

	for order, p := range m.pages {
		entry := Entry{
			Slug:     p.Slug(),
			Title:    p.MenuTitle(),
			Icon:     p.Icon(),
			Position: p.Position(),
			URL:      p.URL(),
		}
		if parent := p.Parent(); parent != "" {
			children[parent] = append(children[parent], ordered{entry: entry, order: order})
			continue
		}
		roots = append(roots, ordered{entry: entry, order: order})
	}

	sortEntries := func(items []ordered) []Entry {
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].entry.Position == items[j].entry.Position {
				return items[i].order < items[j].order
			}
			return items[i].entry.Position < items[j].entry.Position
		})
		out := make([]Entry, 0, len(items))
		for _, item := range items {
			out = append(out, item.entry)
		}
		return out
	}

	out := make([]Entry, 0, len(roots))
	for _, root := range sortEntries(roots) {
		root.Children = sortEntries(children[root.Slug])
		out = append(out, root)
	}
	return out
}

// RegisterRoutes mounts every registered page handler under basePath and
// returns the mounted patterns in registration order.
func (m *Menu) RegisterRoutes(mux Mux, basePath string) ([]string, error) {
	if m == nil {
		return nil, fmt.Errorf("menu: menu is nil")
	}
	if mux == nil {
		return nil, fmt.Errorf("menu: missing mux")
	}

	// BindMount mutates each page, so this takes the write lock.
	m.mu.Lock()
	defer m.mu.Unlock()

	patterns := make([]string, 0, len(m.pages))
	for _, p := range m.pages {
		p.BindMount(basePath)
		pattern := p.URL()
		mux.Handle(pattern, p.Handler())
		patterns = append(patterns, pattern)
	}
	return patterns, nil
}
