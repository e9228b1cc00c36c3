package user

import (
	"net/http"
	"strings"
)

// DefaultCookieName is the session cookie read by the cookie resolver.
const DefaultCookieName = "admin_session"

// Resolver looks up the user behind a request. Implementations return
// ok=false for anonymous visitors.
type Resolver interface {
	CurrentUser(r *http.Request) (User, bool)
}

// LookupFunc maps a session id to a user.
type LookupFunc func(sessionID string) (User, bool)

// CookieResolver resolves users from a session cookie via a lookup function.
type CookieResolver struct {
	cookieName string
	lookup     LookupFunc
}

// NewCookieResolver builds a resolver reading cookieName (DefaultCookieName
// when empty) and resolving its value through lookup.
func NewCookieResolver(cookieName string, lookup LookupFunc) *CookieResolver {
	cookieName = strings.TrimSpace(cookieName)
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return &CookieResolver{cookieName: cookieName, lookup: lookup}
}

// CurrentUser implements Resolver.
func (c *CookieResolver) CurrentUser(r *http.Request) (User, bool) {
	if c == nil || c.lookup == nil || r == nil {
		return User{}, false
	}
	cookie, err := r.Cookie(c.cookieName)
	if err != nil || cookie == nil {
		return User{}, false
	}
	sessionID := strings.TrimSpace(cookie.Value)
	if sessionID == "" {
		return User{}, false
	}
	return c.lookup(sessionID)
}

// StaticResolver always resolves to the same user. Intended for tests and
// single-operator tools.
type StaticResolver struct {
	User User
}

// CurrentUser implements Resolver.
func (s StaticResolver) CurrentUser(*http.Request) (User, bool) {
	if strings.TrimSpace(s.User.ID) == "" {
		return User{}, false
	}
	return s.User, true
}
