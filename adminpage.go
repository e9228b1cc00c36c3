// Package adminpage helps plugins build admin dashboard pages: menu
// registration, nonce-guarded action routing, flash notices that survive
// redirects, and rendering contracts for template engines and form fields.
package adminpage

import (
	"fmt"

	"github.com/goliatone/go-adminpage/pkg/fields"
	"github.com/goliatone/go-adminpage/pkg/flash"
	"github.com/goliatone/go-adminpage/pkg/menu"
	"github.com/goliatone/go-adminpage/pkg/nonce"
	"github.com/goliatone/go-adminpage/pkg/options"
	"github.com/goliatone/go-adminpage/pkg/page"
	"github.com/goliatone/go-adminpage/pkg/render"
	"github.com/goliatone/go-adminpage/pkg/user"
)

// Page is the admin page base; alias exported via the root package for
// convenience.
type Page = page.Page

// ActionRequest carries the verified request an action handler receives.
type ActionRequest = page.ActionRequest

// ActionResult is returned by action handlers.
type ActionResult = page.ActionResult

// Message is a flash notice persisted until its owner reads it.
type Message = flash.Message

// Engine is the template-engine contract consumers implement.
type Engine = render.Engine

// Field is the form-field contract consumers implement.
type Field = fields.Field

// Menu aliases the page menu registry.
type Menu = menu.Menu

// User describes the authenticated visitor of an admin page.
type User = user.User

// KitOption configures a Kit before construction.
type KitOption func(*Kit)

// WithOptionsStore swaps the backing key-value store. Defaults to the
// in-memory store.
func WithOptionsStore(store options.Store) KitOption {
	return func(k *Kit) {
		if store == nil {
			return
		}
		k.backend = store
	}
}

// WithUserResolver sets the current-user lookup shared by every page the
// kit creates.
func WithUserResolver(resolver user.Resolver) KitOption {
	return func(k *Kit) {
		k.Users = resolver
	}
}

// Kit bundles the menu, nonce service, and flash store a dashboard needs,
// and wires them into every page it creates.
type Kit struct {
	Menu     *menu.Menu
	Nonces   *nonce.Service
	Messages *flash.Store
	Users    user.Resolver

	backend options.Store
}

// NewKit constructs a Kit from a nonce signing key plus any overrides.
func NewKit(signingKey []byte, kitOptions ...KitOption) (*Kit, error) {
	nonces, err := nonce.New(signingKey)
	if err != nil {
		return nil, fmt.Errorf("adminpage: nonce service: %w", err)
	}

	kit := &Kit{
		Menu:    menu.New(),
		Nonces:  nonces,
		backend: options.NewMemoryStore(),
	}
	for _, opt := range kitOptions {
		if opt == nil {
			continue
		}
		opt(kit)
	}

	messages, err := flash.NewStore(kit.backend)
	if err != nil {
		return nil, fmt.Errorf("adminpage: flash store: %w", err)
	}
	kit.Messages = messages
	return kit, nil
}

// AddPage creates a page wired to the kit's services and registers it in
// the menu. Page options may override any of the kit defaults.
func (k *Kit) AddPage(slug string, fns ...page.OptionFn) (*page.Page, error) {
	if k == nil {
		return nil, fmt.Errorf("adminpage: kit is nil")
	}

	wired := []page.OptionFn{
		page.WithNonceService(k.Nonces),
		page.WithMessageStore(k.Messages),
	}
	if k.Users != nil {
		wired = append(wired, page.WithUserResolver(k.Users))
	}
	wired = append(wired, fns...)

	p, err := page.New(slug, wired...)
	if err != nil {
		return nil, err
	}
	if _, err := k.Menu.Add(p); err != nil {
		return nil, err
	}
	return p, nil
}

// RegisterRoutes mounts every kit page under basePath on mux.
func (k *Kit) RegisterRoutes(mux menu.Mux, basePath string) ([]string, error) {
	if k == nil {
		return nil, fmt.Errorf("adminpage: kit is nil")
	}
	return k.Menu.RegisterRoutes(mux, basePath)
}
