package navigation

import (
	"context"
	"fmt"
)

// Frame is a read-only snapshot of a session's navigation state, handed to
// the renderer of the current screen.
type Frame struct {
	SessionID string
	Entry     Entry
	CanGoBack bool
	History   []Screen
	State     SessionState
}

// Renderer builds the view for one screen.
type Renderer interface {
	Render(ctx context.Context, frame Frame) (any, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, frame Frame) (any, error)

func (f RendererFunc) Render(ctx context.Context, frame Frame) (any, error) {
	return f(ctx, frame)
}

// Registry maps every screen to its renderer.
type Registry struct {
	renderers map[Screen]Renderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[Screen]Renderer)}
}

// Register binds a renderer to a screen.
func (r *Registry) Register(screen Screen, renderer Renderer) *Registry {
	mustBeValid(screen)
	r.renderers[screen] = renderer
	return r
}

// Validate reports the first screen of the closed set without a renderer.
// Call it once at startup.
func (r *Registry) Validate() error {
	for _, s := range Screens() {
		if _, ok := r.renderers[s]; !ok {
			return fmt.Errorf("navigation: no renderer registered for screen %s", s)
		}
	}
	return nil
}

// Render invokes the renderer of frame's current screen. A screen without
// a renderer is a programming error and panics.
func (r *Registry) Render(ctx context.Context, frame Frame) (any, error) {
	renderer, ok := r.renderers[frame.Entry.Screen]
	if !ok {
		panic(fmt.Sprintf("navigation: screen %s not registered", frame.Entry.Screen))
	}
	view, err := renderer.Render(ctx, frame)
	if err != nil {
		return nil, fmt.Errorf("navigation: render %s: %w", frame.Entry.Screen, err)
	}
	return view, nil
}
