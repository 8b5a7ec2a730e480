package template

import (
	"fmt"

	"github.com/goliatone/go-formkit/pkg/editor"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// ApplicationError reports a template that could not be applied; the target
// form is left unchanged.
type ApplicationError struct {
	TemplateID string
	Err        error
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("template: apply %q: %v", e.TemplateID, e.Err)
}

func (e *ApplicationError) Unwrap() error {
	return e.Err
}

// Apply replaces the form's field set with a deep copy of the template's
// fields and resets any multi-step structure. Title and description stay as
// authored. Field ids are regenerated on every application, so applying the
// same template twice can never collide with ids the first pass introduced.
func Apply(form schema.Form, tpl schema.FormTemplate) (schema.Form, error) {
	if err := tpl.Validate(); err != nil {
		return form, &ApplicationError{TemplateID: tpl.ID, Err: err}
	}

	next := form.Clone()
	next.Fields = make([]schema.Field, len(tpl.Fields))
	for i, field := range tpl.Fields {
		fresh := field.Clone()
		fresh.ID = editor.NewFieldID()
		next.Fields[i] = fresh
	}
	next.IsMultiStep = false
	next.Steps = nil

	if err := next.Validate(); err != nil {
		return form, &ApplicationError{TemplateID: tpl.ID, Err: err}
	}
	return next, nil
}

// ApplyByID resolves the template in the catalog and applies it.
func ApplyByID(catalog *Catalog, form schema.Form, templateID string) (schema.Form, error) {
	if catalog == nil {
		return form, &ApplicationError{TemplateID: templateID, Err: ErrNotFound}
	}
	tpl, err := catalog.Get(templateID)
	if err != nil {
		return form, &ApplicationError{TemplateID: templateID, Err: err}
	}
	return Apply(form, tpl)
}
