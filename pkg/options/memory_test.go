package options

import (
	"context"
	"testing"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Set(ctx, "site.title", []byte("Example")); err != nil {
		t.Fatalf("set: %v", err)
	}

	value, found, err := store.Get(ctx, "site.title")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found {
		t.Fatalf("expected value to be found")
	}
	if string(value) != "Example" {
		t.Fatalf("unexpected value: %q", value)
	}
}

func TestMemoryStore_MissingKey(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, found, err := store.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatalf("expected missing key")
	}
	if err := store.Delete(ctx, "missing"); err != nil {
		t.Fatalf("delete missing key: %v", err)
	}
}

func TestMemoryStore_DeleteRemovesValue(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, _ := store.Get(ctx, "k"); found {
		t.Fatalf("expected key to be gone")
	}
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	original := []byte("abc")
	if err := store.Set(ctx, "k", original); err != nil {
		t.Fatalf("set: %v", err)
	}
	original[0] = 'z'

	value, _, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(value) != "abc" {
		t.Fatalf("stored value aliased caller slice: %q", value)
	}
	value[0] = 'y'

	again, _, _ := store.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("returned value aliased store slice: %q", again)
	}
}

func TestMemoryStore_EmptyKeyRejected(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, _, err := store.Get(ctx, "  "); err == nil {
		t.Fatalf("expected error for empty key")
	}
	if err := store.Set(ctx, "", nil); err == nil {
		t.Fatalf("expected error for empty key")
	}
}
