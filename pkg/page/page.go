// Package page implements the admin page base: menu metadata, nonce-guarded
// action routing, flash notices across redirects, and template rendering.
package page

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/goliatone/go-adminpage/pkg/flash"
	"github.com/goliatone/go-adminpage/pkg/screen"
	"github.com/goliatone/go-adminpage/pkg/user"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)

// ValidSlug reports whether slug can name a page: lowercase alphanumerics
// separated by single dashes or underscores.
func ValidSlug(slug string) bool {
	return slugPattern.MatchString(strings.TrimSpace(slug))
}

// ActionRequest carries the verified request an action handler receives.
type ActionRequest struct {
	Screen  screen.Screen
	User    user.User
	Request *http.Request
}

// ActionResult is returned by action handlers. RedirectTo overrides the
// default redirect back to the page; Message is persisted as a flash notice
// for the acting user.
type ActionResult struct {
	RedirectTo string
	Message    *flash.Message
}

// Page is one admin screen: a slug, menu placement, registered actions, and
// a rendered body.
type Page struct {
	slug string
	opts Options

	hookSuffix string
	mountBase  string
}

// New constructs a page for slug with default options plus any overrides.
func New(slug string, fns ...OptionFn) (*Page, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, fmt.Errorf("page: slug is required")
	}
	if !slugPattern.MatchString(slug) {
		return nil, fmt.Errorf("page: invalid slug %q", slug)
	}

	opts := NewOptions(fns...)
	if opts.PageTitle == "" {
		opts.PageTitle = titleFromSlug(slug)
	}
	if opts.MenuTitle == "" {
		opts.MenuTitle = opts.PageTitle
	}
	return &Page{slug: slug, opts: opts}, nil
}

// Slug returns the page identifier.
func (p *Page) Slug() string {
	if p == nil {
		return ""
	}
	return p.slug
}

// Parent returns the parent slug, empty for top-level pages.
func (p *Page) Parent() string {
	if p == nil {
		return ""
	}
	return p.opts.Parent
}

// PageTitle returns the header title.
func (p *Page) PageTitle() string {
	if p == nil {
		return ""
	}
	return p.opts.PageTitle
}

// MenuTitle returns the menu entry title.
func (p *Page) MenuTitle() string {
	if p == nil {
		return ""
	}
	return p.opts.MenuTitle
}

// Capability returns the capability required to view the page.
func (p *Page) Capability() string {
	if p == nil {
		return ""
	}
	return p.opts.Capability
}

// Position returns the menu ordering hint.
func (p *Page) Position() int {
	if p == nil {
		return 0
	}
	return p.opts.Position
}

// Icon returns the menu icon reference.
func (p *Page) Icon() string {
	if p == nil {
		return ""
	}
	return p.opts.Icon
}

// HookSuffix returns the handle assigned at menu registration, empty until
// the page is registered.
func (p *Page) HookSuffix() string {
	if p == nil {
		return ""
	}
	return p.hookSuffix
}

// Actions returns the registered action names, unordered.
func (p *Page) Actions() []string {
	if p == nil {
		return nil
	}
	names := make([]string, 0, len(p.opts.Actions))
	for name := range p.opts.Actions {
		names = append(names, name)
	}
	return names
}

// BindHook records the hook suffix assigned by the menu. Called once during
// registration.
func (p *Page) BindHook(hookSuffix string) {
	if p == nil {
		return
	}
	p.hookSuffix = strings.TrimSpace(hookSuffix)
}

// BindMount records the base path the page was mounted under.
func (p *Page) BindMount(basePath string) {
	if p == nil {
		return
	}
	p.mountBase = strings.TrimSpace(basePath)
}

func (p *Page) basePath() string {
	if p.mountBase != "" {
		return p.mountBase
	}
	return p.opts.BasePath
}

func (p *Page) currentUser(r *http.Request) (user.User, bool) {
	if p.opts.Users == nil {
		return user.User{}, false
	}
	return p.opts.Users.CurrentUser(r)
}

func titleFromSlug(slug string) string {
	parts := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}
