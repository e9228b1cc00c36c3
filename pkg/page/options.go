package page

import (
	"context"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-adminpage/pkg/flash"
	"github.com/goliatone/go-adminpage/pkg/nonce"
	"github.com/goliatone/go-adminpage/pkg/render"
	"github.com/goliatone/go-adminpage/pkg/user"
)

// ActionFunc handles one named page action after nonce verification.
type ActionFunc func(ctx context.Context, req ActionRequest) (ActionResult, error)

// Options hold the full page configuration.
type Options struct {
	PageTitle  string
	MenuTitle  string
	Capability string
	Parent     string
	Position   int
	Icon       string
	BasePath   string

	Actions map[string]ActionFunc

	Engine      render.Engine
	Suggestions []string

	ThemeSelector theme.ThemeSelector
	ThemeName     string
	ThemeVariant  string

	Users    user.Resolver
	Nonces   *nonce.Service
	Messages *flash.Store
}

// OptionFn mutates Options during construction.
type OptionFn func(*Options)

// DefaultOptions returns the baseline page configuration.
func DefaultOptions() Options {
	return Options{
		BasePath: "/admin",
		Actions:  map[string]ActionFunc{},
	}
}

// NewOptions applies fns over the defaults and normalizes the result.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.BasePath == "" {
		opts.BasePath = "/admin"
	}
	if opts.Actions == nil {
		opts.Actions = map[string]ActionFunc{}
	}
	if opts.Suggestions != nil {
		opts.Suggestions = append([]string{}, opts.Suggestions...)
	}
	return opts
}

// WithPageTitle sets the title rendered in the page header.
func WithPageTitle(title string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.PageTitle = title
	}
}

// WithMenuTitle sets the title shown in the admin menu.
func WithMenuTitle(title string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MenuTitle = title
	}
}

// WithCapability sets the capability required to view the page.
func WithCapability(capability string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Capability = strings.TrimSpace(capability)
	}
}

// WithParent nests the page under a parent slug.
func WithParent(parentSlug string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Parent = strings.TrimSpace(parentSlug)
	}
}

// WithPosition orders the page inside the menu.
func WithPosition(position int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Position = position
	}
}

// WithIcon sets the menu icon reference.
func WithIcon(icon string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Icon = strings.TrimSpace(icon)
	}
}

// WithBasePath overrides the admin base path used before menu registration.
func WithBasePath(basePath string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.BasePath = strings.TrimSpace(basePath)
	}
}

// WithAction registers a named action handler. Blank names and nil handlers
// are ignored.
func WithAction(name string, fn ActionFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		name = strings.TrimSpace(name)
		if name == "" || fn == nil {
			return
		}
		if o.Actions == nil {
			o.Actions = map[string]ActionFunc{}
		}
		o.Actions[name] = fn
	}
}

// WithEngine sets the template engine used to render the page body.
func WithEngine(engine render.Engine) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Engine = engine
	}
}

// WithTemplateSuggestions prepends template suggestions tried before the
// page defaults.
func WithTemplateSuggestions(suggestions ...string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Suggestions = append(o.Suggestions, suggestions...)
	}
}

// WithThemeSelector resolves a theme for every render of this page.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ThemeSelector = selector
		o.ThemeName = strings.TrimSpace(name)
		o.ThemeVariant = strings.TrimSpace(variant)
	}
}

// WithUserResolver sets the current-user lookup.
func WithUserResolver(resolver user.Resolver) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Users = resolver
	}
}

// WithNonceService sets the nonce issuer/verifier guarding actions.
func WithNonceService(service *nonce.Service) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Nonces = service
	}
}

// WithMessageStore sets the flash store drained on render.
func WithMessageStore(store *flash.Store) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Messages = store
	}
}
