package render

import (
	"context"

	"github.com/goliatone/go-stepform/pkg/engine"
)

// Renderer turns the active step of an engine into a byte representation
// (HTML fragment, plain text, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, e *engine.Engine, options RenderOptions) ([]byte, error)
}
