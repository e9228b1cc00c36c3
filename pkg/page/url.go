package page

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-adminpage/pkg/nonce"
	"github.com/goliatone/go-adminpage/pkg/render"
)

// Request parameter names used by the action router.
const (
	ActionParam = "action"
	NonceParam  = "_nonce"
)

// URL returns the page path under its mount base.
func (p *Page) URL() string {
	if p == nil {
		return ""
	}
	segments := []string{}
	if p.opts.Parent != "" {
		segments = append(segments, p.opts.Parent)
	}
	segments = append(segments, p.slug)
	return joinPath(p.basePath(), segments...)
}

// ActionURL returns the page URL carrying an action parameter and a nonce
// issued for userID. Without a nonce service the URL is still built, but the
// router will refuse it.
func (p *Page) ActionURL(action, userID string) string {
	if p == nil {
		return ""
	}
	action = strings.TrimSpace(action)

	values := url.Values{}
	values.Set(ActionParam, action)
	if p.opts.Nonces != nil {
		values.Set(NonceParam, p.opts.Nonces.Issue(nonce.Scope(p.slug, action), userID))
	}
	return p.URL() + "?" + values.Encode()
}

// ActionFields returns the hidden form fields a POST form needs to trigger
// action: the action name plus a nonce issued for userID. Forms built this
// way submit to the plain page URL.
func (p *Page) ActionFields(action, userID string) []render.HiddenField {
	if p == nil {
		return nil
	}
	action = strings.TrimSpace(action)

	fields := []render.HiddenField{render.Hidden(ActionParam, action)}
	if p.opts.Nonces != nil {
		fields = append(fields, render.Hidden(NonceParam, p.opts.Nonces.Issue(nonce.Scope(p.slug, action), userID)))
	}
	return fields
}

func joinPath(basePath string, segments ...string) string {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" || basePath == "/" {
		basePath = ""
	} else {
		if !strings.HasPrefix(basePath, "/") {
			basePath = "/" + basePath
		}
		basePath = strings.TrimRight(basePath, "/")
	}

	var b strings.Builder
	b.WriteString(basePath)
	for _, segment := range segments {
		segment = strings.Trim(strings.TrimSpace(segment), "/")
		if segment == "" {
			continue
		}
		b.WriteString("/")
		b.WriteString(segment)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}
