package editor

import (
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/goliatone/go-formkit/pkg/schema"
)

const fieldIDLength = 10

// NewFieldID mints a url-safe identifier suitable for field ids.
func NewFieldID() string {
	id, err := gonanoid.New(fieldIDLength)
	if err != nil {
		// gonanoid only fails when the system entropy source does; there is
		// no sensible recovery for id generation.
		panic(err)
	}
	return id
}

// AddOption configures AddField placement.
type AddOption func(*addConfig)

type addConfig struct {
	stepIndex int
	placed    bool
}

// AtStep appends the new field's id to the step at index. The option is
// ignored for single-step forms; an out-of-range index rejects the mutation.
func AtStep(index int) AddOption {
	return func(cfg *addConfig) {
		cfg.stepIndex = index
		cfg.placed = true
	}
}

// AddField appends field to the form's field list. A field with an empty id
// gets a freshly minted one. Duplicate ids, unknown kinds, and option-less
// select/radio fields reject the mutation.
func AddField(form schema.Form, field schema.Field, opts ...AddOption) (schema.Form, error) {
	cfg := addConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	field = field.Clone()
	if field.ID == "" {
		field.ID = NewFieldID()
	}
	if form.HasField(field.ID) {
		return form, reject("add field", schema.ErrDuplicateFieldID)
	}
	if err := field.Validate(); err != nil {
		return form, reject("add field", err)
	}

	next := form.Clone()
	next.Fields = append(next.Fields, field)

	if cfg.placed && next.IsMultiStep {
		if cfg.stepIndex < 0 || cfg.stepIndex >= len(next.Steps) {
			return form, reject("add field", ErrStepOutOfRange)
		}
		step := &next.Steps[cfg.stepIndex]
		step.FieldIDs = append(step.FieldIDs, field.ID)
	}

	if err := next.Validate(); err != nil {
		return form, reject("add field", err)
	}
	return next, nil
}

// FieldPatch carries a shallow merge for UpdateField. Nil members leave the
// current value alone; Options replaces the whole list when set. Setting
// Validation replaces the rule, ClearValidation removes it.
type FieldPatch struct {
	Kind            *schema.FieldKind
	Label           *string
	Placeholder     *string
	Description     *string
	Required        *bool
	Options         *[]string
	Validation      *schema.ValidationRule
	ClearValidation bool
}

// UpdateField merges patch into the field with the given id. Id and position
// never change. Changing the kind sanitizes attributes the new kind cannot
// carry: option lists are dropped for kinds that take none and pattern rules
// are dropped for kinds the pattern does not apply to.
func UpdateField(form schema.Form, fieldID string, patch FieldPatch) (schema.Form, error) {
	idx := form.FieldIndex(fieldID)
	if idx < 0 {
		return form, reject("update field", ErrFieldNotFound)
	}

	next := form.Clone()
	field := &next.Fields[idx]

	if patch.Kind != nil {
		field.Kind = *patch.Kind
	}
	if patch.Label != nil {
		field.Label = *patch.Label
	}
	if patch.Placeholder != nil {
		field.Placeholder = *patch.Placeholder
	}
	if patch.Description != nil {
		field.Description = *patch.Description
	}
	if patch.Required != nil {
		field.Required = *patch.Required
	}
	if patch.Options != nil {
		field.Options = append([]string(nil), (*patch.Options)...)
	}
	if patch.ClearValidation {
		field.Validation = nil
	} else if patch.Validation != nil {
		rule := *patch.Validation
		field.Validation = &rule
	}

	if patch.Kind != nil {
		sanitizeKindAttributes(field)
	}

	if err := next.Validate(); err != nil {
		return form, reject("update field", err)
	}
	return next, nil
}

// sanitizeKindAttributes drops attributes the field's current kind cannot
// carry. Stale options and patterns would otherwise survive a kind change and
// fail validation or confuse renderers.
func sanitizeKindAttributes(field *schema.Field) {
	spec, ok := schema.LookupKind(field.Kind)
	if !ok {
		return
	}
	if !spec.OptionsAllowed {
		field.Options = nil
	}
	if field.Validation != nil {
		if !spec.StringLike && field.Validation.Pattern != "" {
			field.Validation.Pattern = ""
		}
		if !spec.StringLike && !spec.Numeric {
			field.Validation.Min = nil
			field.Validation.Max = nil
		}
		if *field.Validation == (schema.ValidationRule{}) {
			field.Validation = nil
		}
	}
}

// RemoveField removes the field and cascades into every step, dropping the id
// from each step's field list. Steps emptied by the cascade stay in place;
// removing them is the caller's decision.
func RemoveField(form schema.Form, fieldID string) (schema.Form, error) {
	idx := form.FieldIndex(fieldID)
	if idx < 0 {
		return form, reject("remove field", ErrFieldNotFound)
	}

	next := form.Clone()
	next.Fields = append(next.Fields[:idx], next.Fields[idx+1:]...)
	for i := range next.Steps {
		next.Steps[i].FieldIDs = withoutID(next.Steps[i].FieldIDs, fieldID)
	}

	if err := next.Validate(); err != nil {
		return form, reject("remove field", err)
	}
	return next, nil
}

// ReorderFields moves the field at fromIndex to toIndex with list splice
// semantics: the field is removed first, so toIndex addresses the shortened
// list. Step field lists are untouched; they keep their own order.
func ReorderFields(form schema.Form, fromIndex, toIndex int) (schema.Form, error) {
	if fromIndex < 0 || fromIndex >= len(form.Fields) {
		return form, reject("reorder fields", ErrIndexOutOfRange)
	}
	if toIndex < 0 || toIndex >= len(form.Fields) {
		return form, reject("reorder fields", ErrIndexOutOfRange)
	}

	next := form.Clone()
	field := next.Fields[fromIndex]
	next.Fields = append(next.Fields[:fromIndex], next.Fields[fromIndex+1:]...)

	tail := append([]schema.Field(nil), next.Fields[toIndex:]...)
	next.Fields = append(next.Fields[:toIndex], field)
	next.Fields = append(next.Fields, tail...)
	return next, nil
}

func withoutID(ids []string, fieldID string) []string {
	out := ids[:0]
	for _, id := range ids {
		if id != fieldID {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
