package page

import (
	"fmt"
	"html"
	"net/http"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-adminpage/pkg/flash"
	"github.com/goliatone/go-adminpage/pkg/nonce"
	"github.com/goliatone/go-adminpage/pkg/render"
	"github.com/goliatone/go-adminpage/pkg/screen"
	"github.com/goliatone/go-adminpage/pkg/user"
)

// Handler returns the net/http handler serving the page. Requests carrying
// an action parameter go through the nonce-guarded router; everything else
// renders the page body.
func (p *Page) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p == nil || r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead && r.Method != http.MethodPost {
			w.Header().Set("Allow", strings.Join([]string{http.MethodGet, http.MethodHead, http.MethodPost}, ", "))
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		_ = r.ParseForm()

		action := requestValue(r, ActionParam)
		scr := screen.Screen{
			Slug:       p.slug,
			Parent:     p.opts.Parent,
			Action:     action,
			HookSuffix: p.hookSuffix,
		}
		r = r.WithContext(screen.WithScreen(r.Context(), scr))

		usr, authenticated := p.currentUser(r)

		if action != "" {
			p.routeAction(w, r, scr, usr, authenticated)
			return
		}

		if !authenticated || !usr.Can(p.opts.Capability) {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		p.renderBody(w, r, usr)
	})
}

// routeAction dispatches a named action. Every outcome redirects: a missing
// nonce service, a failed nonce check, and an unknown action are all
// indistinguishable from success on the wire.
func (p *Page) routeAction(w http.ResponseWriter, r *http.Request, scr screen.Screen, usr user.User, authenticated bool) {
	target := p.URL()
	defer func() {
		http.Redirect(w, r, target, http.StatusSeeOther)
	}()

	if !authenticated || !usr.Can(p.opts.Capability) {
		return
	}
	if p.opts.Nonces == nil {
		return
	}
	token := requestValue(r, NonceParam)
	if !p.opts.Nonces.Verify(token, nonce.Scope(p.slug, scr.Action), usr.ID) {
		return
	}
	fn, ok := p.opts.Actions[scr.Action]
	if !ok {
		return
	}

	result, err := fn(r.Context(), ActionRequest{Screen: scr, User: usr, Request: r})
	if err != nil {
		p.addMessage(r, usr.ID, flash.Error(err.Error()))
		return
	}
	if result.Message != nil {
		p.addMessage(r, usr.ID, *result.Message)
	}
	if redirect := strings.TrimSpace(result.RedirectTo); redirect != "" {
		target = redirect
	}
}

func (p *Page) renderBody(w http.ResponseWriter, r *http.Request, usr user.User) {
	messages := p.drainMessages(r, usr.ID)

	themeCfg, err := render.ResolveThemeConfig(p.opts.ThemeSelector, p.opts.ThemeName, p.opts.ThemeVariant)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := map[string]any{
		"page": map[string]any{
			"slug":        p.slug,
			"title":       p.opts.PageTitle,
			"parent":      p.opts.Parent,
			"url":         p.URL(),
			"hook_suffix": p.hookSuffix,
		},
		"user": map[string]any{
			"id":   usr.ID,
			"name": usr.Name,
		},
		"notices":      noticeData(messages),
		"notices_html": flash.NoticeHTML(messages),
	}
	if themeData := render.ThemeData(themeCfg); themeData != nil {
		data["theme"] = themeData
	}

	if p.opts.Engine == nil {
		p.writeFallbackBody(w, data)
		return
	}

	body, err := p.opts.Engine.Render(p.suggestions(themeCfg), data)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

// suggestions orders template candidates from most to least specific: caller
// overrides, the slug template, the theme's page partial, then the shared
// default.
func (p *Page) suggestions(themeCfg *theme.RendererConfig) []string {
	out := append([]string{}, p.opts.Suggestions...)
	out = append(out, "adminpage/"+p.slug)
	if themeCfg != nil {
		if partial := strings.TrimSpace(themeCfg.Partials["chrome.page"]); partial != "" {
			out = append(out, partial)
		}
	}
	out = append(out, "adminpage/page")
	return dedupe(out)
}

func (p *Page) writeFallbackBody(w http.ResponseWriter, data map[string]any) {
	pageData, _ := data["page"].(map[string]any)
	title, _ := pageData["title"].(string)
	noticesHTML, _ := data["notices_html"].(string)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<div class=\"wrap\"><h1>%s</h1>\n%s</div>\n", html.EscapeString(title), noticesHTML)
}

func (p *Page) addMessage(r *http.Request, userID string, message flash.Message) {
	if p.opts.Messages == nil {
		return
	}
	_ = p.opts.Messages.Add(r.Context(), userID, message)
}

func (p *Page) drainMessages(r *http.Request, userID string) []flash.Message {
	if p.opts.Messages == nil {
		return nil
	}
	messages, err := p.opts.Messages.Drain(r.Context(), userID)
	if err != nil {
		return nil
	}
	return messages
}

func noticeData(messages []flash.Message) []map[string]any {
	out := make([]map[string]any, 0, len(messages))
	for _, message := range messages {
		out = append(out, map[string]any{
			"text":      flash.SanitizeText(message.Text),
			"category":  string(message.Category),
			"timestamp": message.Timestamp,
		})
	}
	return out
}

func requestValue(r *http.Request, name string) string {
	if r == nil {
		return ""
	}
	if r.Form != nil {
		if value := strings.TrimSpace(r.Form.Get(name)); value != "" {
			return value
		}
	}
	if r.URL != nil {
		return strings.TrimSpace(r.URL.Query().Get(name))
	}
	return ""
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, value := range in {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
