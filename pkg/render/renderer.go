package render

import (
	"context"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// Renderer converts a form document into a byte representation (HTML, plain
// text, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form schema.Form, options Options) ([]byte, error)
}
