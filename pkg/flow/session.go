// Package flow drives one participant's filling session: an integer step
// cursor over a read-only form snapshot, the session's answer collector, and
// the guarded advance/retreat/submit transitions. Skipping steps is not part
// of the contract — the cursor only ever moves one step at a time, forward
// through the CanAdvance gate and backward unguarded.
package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formkit/pkg/response"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/validation"
)

var (
	// ErrStepIncomplete blocks an advance while required fields on the
	// current step are unsatisfied.
	ErrStepIncomplete = errors.New("flow: current step has unsatisfied required fields")
	// ErrFormIncomplete blocks submission while any required field is
	// unsatisfied or the last step has not been reached.
	ErrFormIncomplete = errors.New("flow: form is not ready to submit")
	// ErrLastStep blocks advancing past the final step.
	ErrLastStep = errors.New("flow: already at the last step")
	// ErrFirstStep blocks retreating before the first step.
	ErrFirstStep = errors.New("flow: already at the first step")
	// ErrUnknownField rejects answers for fields the form does not define.
	ErrUnknownField = errors.New("flow: unknown field")
)

// Receipt is whatever the external submission service acknowledges with.
type Receipt struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`
}

// Submitter is the external registration boundary. The session's submit gate
// is advisory; the service is the authority and may still reject.
type Submitter interface {
	Submit(ctx context.Context, formID string, responses response.Snapshot) (Receipt, error)
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, formID string, responses response.Snapshot) (Receipt, error)

func (fn SubmitterFunc) Submit(ctx context.Context, formID string, responses response.Snapshot) (Receipt, error) {
	return fn(ctx, formID, responses)
}

// Session owns one filling pass over one form. It holds a private snapshot of
// the schema, so edits to the authoring document never bleed into an active
// session.
type Session struct {
	form      schema.Form
	collector *response.Collector
	step      int
}

// NewSession snapshots the form and mounts an empty collector at step 0.
func NewSession(form schema.Form) *Session {
	return &Session{
		form:      form.Clone(),
		collector: response.NewCollector(),
	}
}

// Form returns a copy of the session's schema snapshot.
func (s *Session) Form() schema.Form {
	return s.form.Clone()
}

// Step returns the current step index. Single-step forms stay at 0.
func (s *Session) Step() int {
	return s.step
}

// StepCount returns the number of steps; single-step forms count as one.
func (s *Session) StepCount() int {
	if !s.form.IsMultiStep {
		return 1
	}
	return len(s.form.Steps)
}

// Fields resolves the fields visible at the current step.
func (s *Session) Fields() []schema.Field {
	return validation.CurrentStepFields(s.form, s.step)
}

// Answer records a value for a field defined anywhere on the form. Answers
// survive step navigation; retreating and re-advancing shows them again.
func (s *Session) Answer(fieldID string, value response.Value) error {
	if !s.form.HasField(fieldID) {
		return fmt.Errorf("%w: %q", ErrUnknownField, fieldID)
	}
	s.collector.Set(fieldID, value)
	return nil
}

// ClearAnswer drops a recorded value.
func (s *Session) ClearAnswer(fieldID string) {
	s.collector.Clear(fieldID)
}

// Responses returns a snapshot of everything answered so far.
func (s *Session) Responses() response.Snapshot {
	return s.collector.Snapshot()
}

// Unsatisfied lists the required field ids on the current step that still
// fail the presence bar.
func (s *Session) Unsatisfied() []string {
	return validation.Unsatisfied(s.form, s.step, s.collector.Snapshot())
}

// CanAdvance reports whether the forward gate is open.
func (s *Session) CanAdvance() bool {
	return validation.CanAdvance(s.form, s.step, s.collector.Snapshot())
}

// Advance moves one step forward through the gate.
func (s *Session) Advance() error {
	if !s.form.IsMultiStep || s.step >= len(s.form.Steps)-1 {
		return ErrLastStep
	}
	if !validation.StepSatisfied(s.form, s.step, s.collector.Snapshot()) {
		return ErrStepIncomplete
	}
	s.step++
	return nil
}

// Retreat moves one step back. Retreating is unguarded; answers already
// collected stay in place.
func (s *Session) Retreat() error {
	if s.step == 0 {
		return ErrFirstStep
	}
	s.step--
	return nil
}

// CanSubmit reports whether the terminal gate is open.
func (s *Session) CanSubmit() bool {
	return validation.CanSubmit(s.form, s.step, s.collector.Snapshot())
}

// Submit pushes the collected responses through the external boundary. The
// gate runs first; a closed gate leaves the collector untouched. Service
// errors propagate unchanged — retry policy belongs to the caller. On success
// the collector resets, ending the session's ownership of the answers.
func (s *Session) Submit(ctx context.Context, submitter Submitter) (Receipt, error) {
	if submitter == nil {
		return Receipt{}, errors.New("flow: submitter is required")
	}
	if !s.CanSubmit() {
		return Receipt{}, ErrFormIncomplete
	}

	receipt, err := submitter.Submit(ctx, s.form.ID, s.collector.Snapshot())
	if err != nil {
		return Receipt{}, err
	}
	s.collector.Reset()
	return receipt, nil
}
