package page

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-adminpage/pkg/flash"
	"github.com/goliatone/go-adminpage/pkg/nonce"
	"github.com/goliatone/go-adminpage/pkg/options"
	"github.com/goliatone/go-adminpage/pkg/render"
	"github.com/goliatone/go-adminpage/pkg/user"
)

type pageFixture struct {
	page   *Page
	nonces *nonce.Service
	store  *flash.Store
	calls  *int
}

func newFixture(t *testing.T, extra ...OptionFn) pageFixture {
	t.Helper()

	nonces, err := nonce.New([]byte("test-key"), nonce.WithClock(func() time.Time {
		return time.Unix(1_700_000_000, 0)
	}))
	if err != nil {
		t.Fatalf("nonce service: %v", err)
	}
	store, err := flash.NewStore(options.NewMemoryStore())
	if err != nil {
		t.Fatalf("flash store: %v", err)
	}

	calls := 0
	fns := []OptionFn{
		WithCapability("manage_options"),
		WithUserResolver(user.StaticResolver{User: user.User{
			ID:           "user-1",
			Name:         "Alex",
			Capabilities: []string{"manage_options"},
		}}),
		WithNonceService(nonces),
		WithMessageStore(store),
		WithAction("save", func(_ context.Context, _ ActionRequest) (ActionResult, error) {
			calls++
			message := flash.Success("saved")
			return ActionResult{Message: &message}, nil
		}),
	}
	fns = append(fns, extra...)

	p, err := New("settings", fns...)
	if err != nil {
		t.Fatalf("new page: %v", err)
	}
	return pageFixture{page: p, nonces: nonces, store: store, calls: &calls}
}

func (f pageFixture) get(t *testing.T, rawURL string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, rawURL, nil)
	rec := httptest.NewRecorder()
	f.page.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandler_ValidNonceRunsActionOnceAndRedirects(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, f.page.ActionURL("save", "user-1"))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/admin/settings" {
		t.Fatalf("unexpected redirect target: %q", got)
	}
	if *f.calls != 1 {
		t.Fatalf("expected action to run once, ran %d times", *f.calls)
	}

	messages, err := f.store.Drain(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if len(messages) != 1 || messages[0].Text != "saved" {
		t.Fatalf("expected persisted flash message, got %+v", messages)
	}
}

func TestHandler_InvalidNonceRedirectsWithoutRunning(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/admin/settings?action=save&_nonce=deadbeef0000")

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if *f.calls != 0 {
		t.Fatalf("action ran despite invalid nonce")
	}
}

func TestHandler_UnknownActionRedirectsWithoutError(t *testing.T) {
	f := newFixture(t)

	token := f.nonces.Issue(nonce.Scope("settings", "destroy"), "user-1")
	rec := f.get(t, "/admin/settings?action=destroy&_nonce="+token)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if *f.calls != 0 {
		t.Fatalf("registered action ran for unknown action name")
	}
}

func TestHandler_NonceBoundToUser(t *testing.T) {
	f := newFixture(t)

	token := f.nonces.Issue(nonce.Scope("settings", "save"), "someone-else")
	rec := f.get(t, "/admin/settings?action=save&_nonce="+token)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if *f.calls != 0 {
		t.Fatalf("action ran with another user's nonce")
	}
}

func TestHandler_PostFormAction(t *testing.T) {
	f := newFixture(t)

	token := f.nonces.Issue(nonce.Scope("settings", "save"), "user-1")
	form := url.Values{ActionParam: {"save"}, NonceParam: {token}}
	req := httptest.NewRequest(http.MethodPost, "/admin/settings", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	f.page.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if *f.calls != 1 {
		t.Fatalf("expected action to run once, ran %d times", *f.calls)
	}
}

func TestHandler_ActionErrorPersistsErrorNotice(t *testing.T) {
	f := newFixture(t, WithAction("explode", func(context.Context, ActionRequest) (ActionResult, error) {
		return ActionResult{}, context.DeadlineExceeded
	}))

	token := f.nonces.Issue(nonce.Scope("settings", "explode"), "user-1")
	rec := f.get(t, "/admin/settings?action=explode&_nonce="+token)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	messages, err := f.store.Drain(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if len(messages) != 1 || messages[0].Category != flash.CategoryError {
		t.Fatalf("expected error notice, got %+v", messages)
	}
}

func TestHandler_ActionRedirectOverride(t *testing.T) {
	f := newFixture(t, WithAction("jump", func(context.Context, ActionRequest) (ActionResult, error) {
		return ActionResult{RedirectTo: "/admin/elsewhere"}, nil
	}))

	token := f.nonces.Issue(nonce.Scope("settings", "jump"), "user-1")
	rec := f.get(t, "/admin/settings?action=jump&_nonce="+token)

	if got := rec.Header().Get("Location"); got != "/admin/elsewhere" {
		t.Fatalf("unexpected redirect target: %q", got)
	}
}

func TestHandler_RenderDrainsFlashMessages(t *testing.T) {
	f := newFixture(t)

	if err := f.store.Add(context.Background(), "user-1", flash.Success("saved")); err != nil {
		t.Fatalf("add: %v", err)
	}

	rec := f.get(t, "/admin/settings")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "notice-success") {
		t.Fatalf("notice missing from body: %s", rec.Body.String())
	}

	rec = f.get(t, "/admin/settings")
	if strings.Contains(rec.Body.String(), "notice-success") {
		t.Fatalf("notice survived a second render")
	}
}

func TestHandler_MessagesDoNotLeakBetweenUsers(t *testing.T) {
	f := newFixture(t)

	if err := f.store.Add(context.Background(), "other-user", flash.Success("private")); err != nil {
		t.Fatalf("add: %v", err)
	}

	rec := f.get(t, "/admin/settings")
	if strings.Contains(rec.Body.String(), "private") {
		t.Fatalf("another user's message leaked: %s", rec.Body.String())
	}

	messages, err := f.store.Drain(context.Background(), "other-user")
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("other user's bucket should be untouched, got %+v", messages)
	}
}

func TestHandler_AnonymousRenderForbidden(t *testing.T) {
	p, err := New("settings", WithCapability("manage_options"))
	if err != nil {
		t.Fatalf("new page: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/settings", nil)
	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestHandler_AnonymousActionRedirects(t *testing.T) {
	f := newFixture(t)
	p, err := New("settings",
		WithNonceService(f.nonces),
		WithAction("save", func(context.Context, ActionRequest) (ActionResult, error) {
			t.Fatalf("action should not run for anonymous requests")
			return ActionResult{}, nil
		}),
	)
	if err != nil {
		t.Fatalf("new page: %v", err)
	}

	token := f.nonces.Issue(nonce.Scope("settings", "save"), "user-1")
	req := httptest.NewRequest(http.MethodGet, "/admin/settings?action=save&_nonce="+token, nil)
	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
}

func TestHandler_CustomEngineReceivesData(t *testing.T) {
	var gotSuggestions []string
	engine := render.EngineFunc(func(suggestions []string, data map[string]any) (string, error) {
		gotSuggestions = suggestions
		pageData, _ := data["page"].(map[string]any)
		title, _ := pageData["title"].(string)
		return "<html>" + title + "</html>", nil
	})

	f := newFixture(t, WithEngine(engine), WithTemplateSuggestions("custom/settings"))
	rec := f.get(t, "/admin/settings")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Settings") {
		t.Fatalf("engine output missing: %s", rec.Body.String())
	}
	if len(gotSuggestions) == 0 || gotSuggestions[0] != "custom/settings" {
		t.Fatalf("caller suggestions should come first: %v", gotSuggestions)
	}
	if gotSuggestions[len(gotSuggestions)-1] != "adminpage/page" {
		t.Fatalf("shared default should come last: %v", gotSuggestions)
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodDelete, "/admin/settings", nil)
	rec := httptest.NewRecorder()
	f.page.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
