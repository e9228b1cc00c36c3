package fields

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func textField(name, markup string) Field {
	return FieldFunc{
		FieldName: name,
		RenderFn: func(map[string]any) (string, error) {
			return markup, nil
		},
	}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register(textField("title", "<input name=\"title\">")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(textField("title", "")); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected nil field to fail")
	}
	if err := reg.Register(textField("  ", "")); err == nil {
		t.Fatalf("expected empty name to fail")
	}

	field, err := reg.Get("title")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if field.Name() != "title" {
		t.Fatalf("unexpected field: %q", field.Name())
	}
	if _, err := reg.Get("missing"); err == nil {
		t.Fatalf("expected missing field error")
	}
}

func TestRegistry_ListSorted(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := reg.Register(textField(name, "")); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	if diff := cmp.Diff([]string{"alpha", "mid", "zeta"}, reg.List()); diff != "" {
		t.Fatalf("unexpected list (-want +got):\n%s", diff)
	}
	if !reg.Has("mid") || reg.Has("missing") {
		t.Fatalf("unexpected Has results")
	}
}

func TestRegistry_RenderAll(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(textField("b", "[b]")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(textField("a", "[a]")); err != nil {
		t.Fatalf("register: %v", err)
	}

	out, err := reg.RenderAll(nil)
	if err != nil {
		t.Fatalf("render all: %v", err)
	}
	if out != "[a][b]" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRegistry_RenderAllPropagatesError(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(FieldFunc{
		FieldName: "broken",
		RenderFn: func(map[string]any) (string, error) {
			return "", fmt.Errorf("boom")
		},
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := reg.RenderAll(nil); err == nil {
		t.Fatalf("expected render error to propagate")
	}
}
