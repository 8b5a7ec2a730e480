package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formkit/pkg/flow"
	"github.com/goliatone/go-formkit/pkg/response"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// Runner walks a fill session step by step, prompting for each visible field
// and pushing the collected answers through the session's submit gate.
type Runner struct {
	driver   PromptDriver
	pageSize int
}

// NewRunner constructs a runner with the survey-backed driver by default.
func NewRunner(options ...Option) *Runner {
	r := &Runner{driver: newSurveyDriver()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Run prompts through every step of the session and submits at the end. The
// returned receipt comes from the submitter unchanged.
func (r *Runner) Run(ctx context.Context, session *flow.Session, submitter flow.Submitter) (flow.Receipt, error) {
	if session == nil {
		return flow.Receipt{}, errors.New("tui: session is required")
	}
	form := session.Form()
	if len(form.Fields) == 0 {
		return flow.Receipt{}, ErrNoFields
	}

	if form.Title != "" {
		if err := r.driver.Info(ctx, form.Title); err != nil {
			return flow.Receipt{}, err
		}
	}

	for {
		if err := r.fillStep(ctx, session); err != nil {
			return flow.Receipt{}, err
		}
		choice, err := r.navigate(ctx, session)
		if err != nil {
			return flow.Receipt{}, err
		}
		if choice == navBack {
			if err := session.Retreat(); err != nil {
				return flow.Receipt{}, err
			}
			continue
		}
		if choice == navSubmit {
			break
		}
		if err := session.Advance(); err != nil {
			if errors.Is(err, flow.ErrStepIncomplete) {
				if err := r.reportUnsatisfied(ctx, session); err != nil {
					return flow.Receipt{}, err
				}
				continue
			}
			return flow.Receipt{}, err
		}
	}

	if !session.CanSubmit() {
		if err := r.reportUnsatisfied(ctx, session); err != nil {
			return flow.Receipt{}, err
		}
		if err := r.fillStep(ctx, session); err != nil {
			return flow.Receipt{}, err
		}
	}

	return session.Submit(ctx, submitter)
}

const (
	navNext   = "Next step"
	navBack   = "Previous step"
	navSubmit = "Submit"
)

// navigate asks where to go after a step is filled. With only one way forward
// the choice is implicit and no prompt is shown, so single-step forms and the
// first step of a fresh session flow straight through.
func (r *Runner) navigate(ctx context.Context, session *flow.Session) (string, error) {
	options := []string{navNext}
	if session.Step()+1 >= session.StepCount() {
		options = []string{navSubmit}
	}
	if session.Step() > 0 {
		options = append(options, navBack)
	}
	if len(options) == 1 {
		return options[0], nil
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      "Continue",
		Options:      options,
		DefaultIndex: 0,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return options[0], nil
	}
	return options[idx], nil
}

func (r *Runner) fillStep(ctx context.Context, session *flow.Session) error {
	form := session.Form()
	if form.IsMultiStep {
		step := form.Steps[session.Step()]
		title := step.Title
		if title == "" {
			title = fmt.Sprintf("Step %d", session.Step()+1)
		}
		msg := fmt.Sprintf("%s (%d/%d)", title, session.Step()+1, session.StepCount())
		if err := r.driver.Info(ctx, msg); err != nil {
			return err
		}
	}

	snap := session.Responses()
	for _, field := range session.Fields() {
		value, err := r.promptField(ctx, field, snap)
		if err != nil {
			return err
		}
		if value.IsZero() {
			session.ClearAnswer(field.ID)
			continue
		}
		if err := session.Answer(field.ID, value); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) reportUnsatisfied(ctx context.Context, session *flow.Session) error {
	ids := session.Unsatisfied()
	if len(ids) == 0 {
		return nil
	}
	return r.driver.Info(ctx, "Still required: "+strings.Join(ids, ", "))
}

func (r *Runner) promptField(ctx context.Context, field schema.Field, snap response.Snapshot) (response.Value, error) {
	switch field.Kind {
	case schema.FieldKindTextarea:
		return r.promptTextArea(ctx, field, snap)
	case schema.FieldKindNumber:
		return r.promptNumber(ctx, field, snap)
	case schema.FieldKindSelect, schema.FieldKindRadio:
		return r.promptChoice(ctx, field, snap)
	case schema.FieldKindCheckbox:
		if field.OptionBacked() {
			return r.promptMultiChoice(ctx, field, snap)
		}
		return r.promptToggle(ctx, field, snap)
	case schema.FieldKindFile:
		return r.promptFile(ctx, field, snap)
	default:
		return r.promptText(ctx, field, snap)
	}
}

func (r *Runner) promptText(ctx context.Context, field schema.Field, snap response.Snapshot) (response.Value, error) {
	out, err := r.driver.Input(ctx, InputConfig{
		Message:   label(field),
		Default:   previousText(field, snap),
		Help:      field.Description,
		Validator: textValidator(field),
	})
	if err != nil {
		return response.Value{}, err
	}
	if strings.TrimSpace(out) == "" {
		return response.Value{}, nil
	}
	return response.String(out), nil
}

func (r *Runner) promptTextArea(ctx context.Context, field schema.Field, snap response.Snapshot) (response.Value, error) {
	for {
		out, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: label(field),
			Default: previousText(field, snap),
			Help:    field.Description,
		})
		if err != nil {
			return response.Value{}, err
		}
		if strings.TrimSpace(out) == "" {
			if field.Required {
				if err := r.driver.Info(ctx, requiredMessage(field)); err != nil {
					return response.Value{}, err
				}
				continue
			}
			return response.Value{}, nil
		}
		if msg, ok := constraintMessage(field, response.String(out)); ok {
			if err := r.driver.Info(ctx, msg); err != nil {
				return response.Value{}, err
			}
			continue
		}
		return response.String(out), nil
	}
}

func (r *Runner) promptNumber(ctx context.Context, field schema.Field, snap response.Snapshot) (response.Value, error) {
	for {
		out, err := r.driver.Input(ctx, InputConfig{
			Message: label(field),
			Default: previousText(field, snap),
			Help:    field.Description,
		})
		if err != nil {
			return response.Value{}, err
		}
		trimmed := strings.TrimSpace(out)
		if trimmed == "" {
			if field.Required {
				if err := r.driver.Info(ctx, requiredMessage(field)); err != nil {
					return response.Value{}, err
				}
				continue
			}
			return response.Value{}, nil
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			if err := r.driver.Info(ctx, fmt.Sprintf("%s must be a number", label(field))); err != nil {
				return response.Value{}, err
			}
			continue
		}
		value := response.Number(parsed)
		if msg, ok := constraintMessage(field, value); ok {
			if err := r.driver.Info(ctx, msg); err != nil {
				return response.Value{}, err
			}
			continue
		}
		return value, nil
	}
}

func (r *Runner) promptChoice(ctx context.Context, field schema.Field, snap response.Snapshot) (response.Value, error) {
	defaultIdx := -1
	if prev := previousText(field, snap); prev != "" {
		defaultIdx = indexOf(field.Options, prev)
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      label(field),
		Options:      field.Options,
		DefaultIndex: defaultIdx,
		Help:         field.Description,
		PageSize:     r.pageSize,
	})
	if err != nil {
		return response.Value{}, err
	}
	if idx < 0 || idx >= len(field.Options) {
		return response.Value{}, nil
	}
	return response.String(field.Options[idx]), nil
}

func (r *Runner) promptMultiChoice(ctx context.Context, field schema.Field, snap response.Snapshot) (response.Value, error) {
	var defaults []int
	if prev, ok := snap.Get(field.ID); ok && prev.IsList() {
		defaults = indicesOf(field.Options, prev.Options())
	}
	for {
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  label(field),
			Options:  field.Options,
			Defaults: defaults,
			Help:     field.Description,
			PageSize: r.pageSize,
		})
		if err != nil {
			return response.Value{}, err
		}
		selected := make([]string, 0, len(indices))
		for _, idx := range indices {
			if idx >= 0 && idx < len(field.Options) {
				selected = append(selected, field.Options[idx])
			}
		}
		if field.Required && len(selected) == 0 {
			if err := r.driver.Info(ctx, requiredMessage(field)); err != nil {
				return response.Value{}, err
			}
			continue
		}
		return response.List(selected...), nil
	}
}

func (r *Runner) promptToggle(ctx context.Context, field schema.Field, snap response.Snapshot) (response.Value, error) {
	def := false
	if prev, ok := snap.Get(field.ID); ok {
		if text, ok := prev.Text(); ok {
			def = text == "true"
		}
	}
	out, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: label(field),
		Default: def,
		Help:    field.Description,
	})
	if err != nil {
		return response.Value{}, err
	}
	return response.Bool(out), nil
}

func (r *Runner) promptFile(ctx context.Context, field schema.Field, snap response.Snapshot) (response.Value, error) {
	out, err := r.driver.Input(ctx, InputConfig{
		Message:   label(field) + " (path or reference)",
		Default:   previousText(field, snap),
		Help:      field.Description,
		Validator: textValidator(field),
	})
	if err != nil {
		return response.Value{}, err
	}
	if strings.TrimSpace(out) == "" {
		return response.Value{}, nil
	}
	return response.FileRef(out), nil
}

func previousText(field schema.Field, snap response.Snapshot) string {
	if prev, ok := snap.Get(field.ID); ok {
		if text, ok := prev.Text(); ok {
			return text
		}
	}
	return ""
}

func label(field schema.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.ID
}

func requiredMessage(field schema.Field) string {
	return fmt.Sprintf("%s is required", label(field))
}

// textValidator enforces presence and constraint rules inline so the prompt
// re-asks instead of failing after the fact.
func textValidator(field schema.Field) func(string) error {
	return func(input string) error {
		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			if field.Required {
				return errors.New("required")
			}
			return nil
		}
		if msg, ok := constraintMessage(field, response.String(input)); ok {
			return errors.New(msg)
		}
		return nil
	}
}

func constraintMessage(field schema.Field, value response.Value) (string, bool) {
	issues := validation.CheckConstraints(field, value)
	if len(issues) == 0 {
		return "", false
	}
	return issues[0].Message, true
}
