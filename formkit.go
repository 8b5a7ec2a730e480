// Package formkit builds, edits, validates, and renders dynamic form
// documents: a typed field catalog, atomic schema editing with multi-step
// support, response collection with presence-only required semantics, and
// renderers for HTML and the terminal. The root package re-exports the most
// used types and offers one-call entry points; the pkg tree holds the
// composable pieces.
package formkit

import (
	"context"

	"github.com/goliatone/go-formkit/pkg/flow"
	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/html"
	"github.com/goliatone/go-formkit/pkg/response"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/template"
)

// Form is the authored schema document.
type Form = schema.Form

// Field is a single form control definition.
type Field = schema.Field

// Step groups field ids for multi-step forms.
type Step = schema.Step

// FieldKind enumerates the supported control types.
type FieldKind = schema.FieldKind

// ValidationRule carries optional min/max/pattern constraints.
type ValidationRule = schema.ValidationRule

// FormTemplate is a reusable field layout.
type FormTemplate = schema.FormTemplate

// Value is a collected answer, scalar or option list.
type Value = response.Value

// Snapshot is a read-only view of collected answers.
type Snapshot = response.Snapshot

// Session drives a respondent through a form step by step.
type Session = flow.Session

// Receipt acknowledges a submission.
type Receipt = flow.Receipt

// Submitter is the outbound submission boundary.
type Submitter = flow.Submitter

// RenderOptions describes per-request renderer inputs.
type RenderOptions = render.Options

// NewSession snapshots the form and starts a fill session at the first step.
func NewSession(form Form) *Session {
	return flow.NewSession(form)
}

// BuiltinTemplates loads the embedded registration and feedback templates.
func BuiltinTemplates() (*template.Catalog, error) {
	return template.BuiltinCatalog()
}

// ApplyTemplate replaces the form's fields with fresh copies of the
// template's, regenerating ids, and resets any step structure.
func ApplyTemplate(form Form, tpl FormTemplate) (Form, error) {
	return template.Apply(form, tpl)
}

// RenderHTML renders the form with the built-in HTML renderer. It is the
// simplest entry point for callers that just want markup.
func RenderHTML(ctx context.Context, form Form, options RenderOptions) ([]byte, error) {
	renderer, err := html.New()
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, form, options)
}

// ImportOpenAPI converts an OpenAPI operation request body into a form.
func ImportOpenAPI(ctx context.Context, document []byte, options openapi.Options) (Form, error) {
	return openapi.ImportForm(ctx, document, options)
}
