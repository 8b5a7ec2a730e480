package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/response"
)

// Options describe per-request data that renderers can use to customise
// their output without mutating the form document.
type Options struct {
	// Step selects which step of a multi-step form to render. Single-step
	// forms ignore it.
	Step int
	// Values pre-populates rendered controls from previously collected
	// responses keyed by field id.
	Values response.Snapshot
	// Errors surfaces server-side validation feedback keyed by field id.
	// Messages under an empty key are treated as form-level.
	Errors map[string][]string
	// Hidden injects extra hidden inputs (tokens, version fields) alongside
	// the schema-driven controls. HTML renderers emit them verbatim.
	Hidden []HiddenField
	// Theme carries design tokens through to renderers that support them.
	Theme *theme.RendererConfig
}
