package adminpage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-adminpage/pkg/flash"
	"github.com/goliatone/go-adminpage/pkg/page"
	"github.com/goliatone/go-adminpage/pkg/user"
)

func TestNewKit_RequiresSigningKey(t *testing.T) {
	if _, err := NewKit(nil); err == nil {
		t.Fatal("expected error for missing signing key")
	}
}

func TestKit_AddPageAndServe(t *testing.T) {
	kit, err := NewKit([]byte("0123456789abcdef0123456789abcdef"),
		WithUserResolver(user.StaticResolver{User: user.User{
			ID:           "user-1",
			Name:         "Ada",
			Capabilities: []string{"manage_options"},
		}}),
	)
	if err != nil {
		t.Fatalf("NewKit: %v", err)
	}

	ran := 0
	p, err := kit.AddPage("settings",
		page.WithCapability("manage_options"),
		page.WithAction("save", func(ctx context.Context, req ActionRequest) (ActionResult, error) {
			ran++
			saved := flash.Success("Settings saved.")
			return ActionResult{Message: &saved}, nil
		}),
	)
	if err != nil {
		t.Fatalf("AddPage: %v", err)
	}

	mux := http.NewServeMux()
	patterns, err := kit.RegisterRoutes(mux, "/admin")
	if err != nil {
		t.Fatalf("RegisterRoutes: %v", err)
	}
	if len(patterns) != 1 || patterns[0] != "/admin/settings" {
		t.Fatalf("unexpected patterns %v", patterns)
	}

	// Trigger the action with a signed URL.
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p.ActionURL("save", "user-1"), nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("action status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if ran != 1 {
		t.Fatalf("action ran %d times, want 1", ran)
	}

	// The follow-up render surfaces the persisted notice once.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/settings", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("render status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Settings saved.") {
		t.Fatalf("render body missing notice: %q", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/settings", nil))
	if strings.Contains(rec.Body.String(), "Settings saved.") {
		t.Fatal("notice rendered twice")
	}
}

func TestKit_AddPageRejectsDuplicateSlug(t *testing.T) {
	kit, err := NewKit([]byte("0123456789abcdef0123456789abcdef"))
	if err != nil {
		t.Fatalf("NewKit: %v", err)
	}
	if _, err := kit.AddPage("tools"); err != nil {
		t.Fatalf("first AddPage: %v", err)
	}
	if _, err := kit.AddPage("tools"); err == nil {
		t.Fatal("expected duplicate slug error")
	}
}
