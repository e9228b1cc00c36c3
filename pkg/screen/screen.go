// Package screen identifies which admin page and action a request targets.
package screen

import (
	"context"
	"net/http"
	"strings"
)

// Screen describes the admin page a request resolved to.
type Screen struct {
	Slug       string
	Parent     string
	Action     string
	HookSuffix string
}

// IsZero reports whether the screen carries no page information.
func (s Screen) IsZero() bool {
	return s.Slug == "" && s.Action == "" && s.HookSuffix == ""
}

// FromRequest derives a Screen from the request path under basePath. The
// last path segment is the page slug; the segment before it (when not the
// base itself) is the parent slug. The action comes from the query or,
// for form posts, the parsed form.
func FromRequest(r *http.Request, basePath string) Screen {
	if r == nil || r.URL == nil {
		return Screen{}
	}

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, normalizeBase(basePath)), "/")
	segments := []string{}
	for _, segment := range strings.Split(path, "/") {
		if segment = strings.TrimSpace(segment); segment != "" {
			segments = append(segments, segment)
		}
	}

	var s Screen
	switch len(segments) {
	case 0:
	case 1:
		s.Slug = segments[0]
	default:
		s.Parent = segments[len(segments)-2]
		s.Slug = segments[len(segments)-1]
	}

	s.Action = strings.TrimSpace(r.URL.Query().Get("action"))
	if s.Action == "" && r.Form != nil {
		s.Action = strings.TrimSpace(r.Form.Get("action"))
	}
	return s
}

func normalizeBase(basePath string) string {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" || basePath == "/" {
		return "/"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/")
}

type contextKey struct{}

// WithScreen stashes the screen on the context.
func WithScreen(ctx context.Context, s Screen) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the screen stashed by WithScreen, if any.
func FromContext(ctx context.Context) (Screen, bool) {
	if ctx == nil {
		return Screen{}, false
	}
	s, ok := ctx.Value(contextKey{}).(Screen)
	return s, ok
}
