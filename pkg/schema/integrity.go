package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyFieldID rejects fields without a stable identifier.
	ErrEmptyFieldID = errors.New("schema: field id is required")
	// ErrDuplicateFieldID rejects a field id that already exists in the form.
	ErrDuplicateFieldID = errors.New("schema: duplicate field id")
	// ErrUnknownKind rejects kinds outside the catalog.
	ErrUnknownKind = errors.New("schema: unknown field kind")
	// ErrMissingOptions rejects option-required kinds with an empty option list.
	ErrMissingOptions = errors.New("schema: kind requires a non-empty option list")
	// ErrUnexpectedOptions rejects option lists on kinds that take none.
	ErrUnexpectedOptions = errors.New("schema: kind does not accept options")
	// ErrDanglingStepRef rejects steps referencing fields missing from the form.
	ErrDanglingStepRef = errors.New("schema: step references a missing field")
	// ErrStepFlagMismatch rejects forms whose multi-step flag disagrees with
	// the presence of steps.
	ErrStepFlagMismatch = errors.New("schema: isMultiStep does not match steps")
)

// Validate checks the field's own invariants against the kind catalog.
func (f Field) Validate() error {
	if f.ID == "" {
		return ErrEmptyFieldID
	}
	spec, ok := LookupKind(f.Kind)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, f.Kind)
	}
	if spec.OptionsRequired && len(f.Options) == 0 {
		return fmt.Errorf("%w: field %q (%s)", ErrMissingOptions, f.ID, f.Kind)
	}
	if !spec.OptionsAllowed && len(f.Options) > 0 {
		return fmt.Errorf("%w: field %q (%s)", ErrUnexpectedOptions, f.ID, f.Kind)
	}
	return nil
}

// Validate checks the form's invariants: every field is individually valid,
// field ids are unique, the multi-step flag matches the step list, and every
// step reference resolves to an existing field.
func (f Form) Validate() error {
	seen := make(map[string]struct{}, len(f.Fields))
	for _, field := range f.Fields {
		if err := field.Validate(); err != nil {
			return err
		}
		if _, dup := seen[field.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateFieldID, field.ID)
		}
		seen[field.ID] = struct{}{}
	}

	if f.IsMultiStep != (len(f.Steps) > 0) {
		return ErrStepFlagMismatch
	}

	for i, step := range f.Steps {
		for _, id := range step.FieldIDs {
			if _, ok := seen[id]; !ok {
				return fmt.Errorf("%w: step %d references %q", ErrDanglingStepRef, i, id)
			}
		}
	}
	return nil
}

// Validate checks a template the way Form.Validate checks a form: known
// kinds, option lists where required, unique ids within the template.
func (t FormTemplate) Validate() error {
	if t.ID == "" {
		return errors.New("schema: template id is required")
	}
	if t.Name == "" {
		return errors.New("schema: template name is required")
	}
	seen := make(map[string]struct{}, len(t.Fields))
	for _, field := range t.Fields {
		if err := field.Validate(); err != nil {
			return fmt.Errorf("schema: template %q: %w", t.ID, err)
		}
		if _, dup := seen[field.ID]; dup {
			return fmt.Errorf("schema: template %q: %w: %q", t.ID, ErrDuplicateFieldID, field.ID)
		}
		seen[field.ID] = struct{}{}
	}
	return nil
}
