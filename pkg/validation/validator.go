// Package validation decides whether collected answers satisfy a form: the
// presence-only required check per field, step resolution, and the gates the
// renderer uses for step transitions and final submission. Constraint checks
// (min/max/pattern/options) live in this package too but are a separate layer
// invoked by the host input controls; the satisfaction core judges presence
// only.
package validation

import (
	"github.com/goliatone/go-formkit/pkg/response"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// FieldSatisfied reports whether the field's required contract holds against
// the snapshot. Optional fields are always satisfied. Required array-valued
// fields need a non-empty selection; required scalars need any defined,
// non-empty answer — numeric zero and false count as answers.
func FieldSatisfied(field schema.Field, snap response.Snapshot) bool {
	if !field.Required {
		return true
	}
	value, ok := snap.Get(field.ID)
	if !ok {
		return false
	}
	if field.Shape() == schema.ValueShapeArray {
		return value.IsList() && !value.Empty()
	}
	return !value.Empty()
}

// CurrentStepFields resolves the fields shown at stepIndex. Single-step forms
// return the whole field list regardless of the index. Multi-step forms map
// the step's id list to fields in step order, silently dropping ids that no
// longer resolve.
func CurrentStepFields(form schema.Form, stepIndex int) []schema.Field {
	if !form.IsMultiStep {
		return form.Fields
	}
	if stepIndex < 0 || stepIndex >= len(form.Steps) {
		return nil
	}
	step := form.Steps[stepIndex]
	fields := make([]schema.Field, 0, len(step.FieldIDs))
	for _, id := range step.FieldIDs {
		if field, ok := form.FieldByID(id); ok {
			fields = append(fields, field)
		}
	}
	return fields
}

// Unsatisfied returns the ids of required fields at stepIndex whose answers
// fail the presence bar, in display order, so the renderer can highlight
// exactly which inputs are incomplete. A step with no resolvable required
// fields yields nothing.
func Unsatisfied(form schema.Form, stepIndex int, snap response.Snapshot) []string {
	var ids []string
	for _, field := range CurrentStepFields(form, stepIndex) {
		if !FieldSatisfied(field, snap) {
			ids = append(ids, field.ID)
		}
	}
	return ids
}

// StepSatisfied reports whether every resolvable field at stepIndex is
// satisfied.
func StepSatisfied(form schema.Form, stepIndex int, snap response.Snapshot) bool {
	return len(Unsatisfied(form, stepIndex, snap)) == 0
}

// CanAdvance gates the forward transition out of stepIndex: only multi-step
// forms advance, never past the last step, and only when the current step is
// satisfied.
func CanAdvance(form schema.Form, stepIndex int, snap response.Snapshot) bool {
	if !form.IsMultiStep {
		return false
	}
	if stepIndex < 0 || stepIndex >= len(form.Steps)-1 {
		return false
	}
	return StepSatisfied(form, stepIndex, snap)
}

// CanSubmit gates final submission. Single-step forms submit when the whole
// field list is satisfied. Multi-step forms must have reached the last step
// and have every step satisfied — advancing is gated per step, so by the time
// the last index is reached earlier steps normally already hold.
func CanSubmit(form schema.Form, stepIndex int, snap response.Snapshot) bool {
	if !form.IsMultiStep {
		return StepSatisfied(form, 0, snap)
	}
	if stepIndex != len(form.Steps)-1 {
		return false
	}
	for i := range form.Steps {
		if !StepSatisfied(form, i, snap) {
			return false
		}
	}
	return true
}
