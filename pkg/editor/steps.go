package editor

import "github.com/goliatone/go-formkit/pkg/schema"

// AddStep appends step to the form and flips the multi-step flag on. Steps
// may be added empty; their field lists are filled via AtStep placement or
// AssignFieldToStep. Steps referencing unknown fields reject the mutation.
func AddStep(form schema.Form, step schema.Step) (schema.Form, error) {
	next := form.Clone()
	next.Steps = append(next.Steps, step.Clone())
	next.IsMultiStep = true

	if err := next.Validate(); err != nil {
		return form, reject("add step", err)
	}
	return next, nil
}

// RemoveStep removes the step at stepIndex. The fields it referenced stay in
// the form's field list; only the association is lost. Removing the last step
// clears the multi-step flag and unsets the step list.
func RemoveStep(form schema.Form, stepIndex int) (schema.Form, error) {
	if stepIndex < 0 || stepIndex >= len(form.Steps) {
		return form, reject("remove step", ErrStepOutOfRange)
	}

	next := form.Clone()
	next.Steps = append(next.Steps[:stepIndex], next.Steps[stepIndex+1:]...)
	if len(next.Steps) == 0 {
		next.Steps = nil
		next.IsMultiStep = false
	}
	return next, nil
}

// ReorderSteps moves the step at fromIndex to toIndex with the same splice
// semantics as ReorderFields.
func ReorderSteps(form schema.Form, fromIndex, toIndex int) (schema.Form, error) {
	if fromIndex < 0 || fromIndex >= len(form.Steps) {
		return form, reject("reorder steps", ErrStepOutOfRange)
	}
	if toIndex < 0 || toIndex >= len(form.Steps) {
		return form, reject("reorder steps", ErrStepOutOfRange)
	}

	next := form.Clone()
	step := next.Steps[fromIndex]
	next.Steps = append(next.Steps[:fromIndex], next.Steps[fromIndex+1:]...)

	tail := append([]schema.Step(nil), next.Steps[toIndex:]...)
	next.Steps = append(next.Steps[:toIndex], step)
	next.Steps = append(next.Steps, tail...)
	return next, nil
}

// ToggleMultiStep flips the form between single- and multi-step layouts.
// Turning on synthesizes one step titled "Step 1" holding every current field
// in order. Turning off removes the steps back to front; the field list is
// never touched, so an on/off/on cycle round-trips the fields unchanged.
func ToggleMultiStep(form schema.Form) (schema.Form, error) {
	if !form.IsMultiStep {
		ids := make([]string, 0, len(form.Fields))
		for _, field := range form.Fields {
			ids = append(ids, field.ID)
		}
		return AddStep(form, schema.Step{Title: "Step 1", FieldIDs: ids})
	}

	next := form.Clone()
	var err error
	for i := len(next.Steps) - 1; i >= 0; i-- {
		next, err = RemoveStep(next, i)
		if err != nil {
			return form, err
		}
	}
	return next, nil
}

// AssignFieldToStep places the field's id at the end of the step at
// stepIndex, removing it from any other step first so a field belongs to at
// most one step.
func AssignFieldToStep(form schema.Form, fieldID string, stepIndex int) (schema.Form, error) {
	if !form.IsMultiStep {
		return form, reject("assign field", ErrNotMultiStep)
	}
	if !form.HasField(fieldID) {
		return form, reject("assign field", ErrFieldNotFound)
	}
	if stepIndex < 0 || stepIndex >= len(form.Steps) {
		return form, reject("assign field", ErrStepOutOfRange)
	}

	next := form.Clone()
	for i := range next.Steps {
		next.Steps[i].FieldIDs = withoutID(next.Steps[i].FieldIDs, fieldID)
	}
	step := &next.Steps[stepIndex]
	step.FieldIDs = append(step.FieldIDs, fieldID)

	if err := next.Validate(); err != nil {
		return form, reject("assign field", err)
	}
	return next, nil
}

// UnassignField removes the field's id from every step without touching the
// field list. Unassigned fields stay in the form but are not rendered by any
// step.
func UnassignField(form schema.Form, fieldID string) (schema.Form, error) {
	if !form.HasField(fieldID) {
		return form, reject("unassign field", ErrFieldNotFound)
	}

	next := form.Clone()
	for i := range next.Steps {
		next.Steps[i].FieldIDs = withoutID(next.Steps[i].FieldIDs, fieldID)
	}
	return next, nil
}
