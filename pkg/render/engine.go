package render

// Engine is the template-engine seam consumers implement (or satisfy with
// the gotemplate adapter). Suggestions are candidate template names ordered
// from most to least specific; the first one the engine can resolve wins.
type Engine interface {
	Render(suggestions []string, data map[string]any) (string, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(suggestions []string, data map[string]any) (string, error)

// Render implements Engine.
func (f EngineFunc) Render(suggestions []string, data map[string]any) (string, error) {
	return f(suggestions, data)
}
