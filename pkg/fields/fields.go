// Package fields defines the form-field contract consumers implement and a
// registry pages use to discover fields by name. Concrete field renderers
// live in consumer code.
package fields

// Field is a single named form control. Render receives the template data
// for the surrounding page and returns the control's markup.
type Field interface {
	Name() string
	Render(data map[string]any) (string, error)
}

// FieldFunc adapts a name and a render function to the Field interface.
type FieldFunc struct {
	FieldName string
	RenderFn  func(data map[string]any) (string, error)
}

// Name implements Field.
func (f FieldFunc) Name() string { return f.FieldName }

// Render implements Field.
func (f FieldFunc) Render(data map[string]any) (string, error) {
	if f.RenderFn == nil {
		return "", nil
	}
	return f.RenderFn(data)
}
