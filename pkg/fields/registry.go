package fields

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry stores fields by name, providing discovery and duplication
// safeguards for pages that compose their body from registered controls.
type Registry struct {
	mu     sync.RWMutex
	fields map[string]Field
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{fields: make(map[string]Field)}
}

// Register adds a field by its Name(). Duplicate names return an error.
func (r *Registry) Register(field Field) error {
	if field == nil {
		return fmt.Errorf("fields: field is required")
	}
	name := strings.TrimSpace(field.Name())
	if name == "" {
		return fmt.Errorf("fields: field name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.fields[name]; exists {
		return fmt.Errorf("fields: field %q already registered", name)
	}

	r.fields[name] = field
	return nil
}

// Get retrieves a field by name.
func (r *Registry) Get(name string) (Field, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	field, ok := r.fields[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("fields: field %q not found", name)
	}
	return field, nil
}

// Has reports whether a field is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.fields[strings.TrimSpace(name)]
	return ok
}

// List returns a sorted list of field names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RenderAll renders every registered field in name order, concatenating the
// markup. The first render error aborts the walk.
func (r *Registry) RenderAll(data map[string]any) (string, error) {
	var b strings.Builder
	for _, name := range r.List() {
		field, err := r.Get(name)
		if err != nil {
			return "", err
		}
		out, err := field.Render(data)
		if err != nil {
			return "", fmt.Errorf("fields: render %q: %w", name, err)
		}
		b.WriteString(out)
	}
	return b.String(), nil
}
