package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/flow"
	"github.com/goliatone/go-formkit/pkg/response"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// stubDriver replays scripted answers instead of prompting a terminal.
type stubDriver struct {
	inputs    []string
	confirms  []bool
	selects   []int
	multis    [][]int
	textareas []string
	infos     []string
	err       error
}

func (d *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	if len(d.inputs) == 0 {
		return "", errors.New("stub: no scripted input")
	}
	out := d.inputs[0]
	d.inputs = d.inputs[1:]
	if cfg.Validator != nil {
		if err := cfg.Validator(out); err != nil {
			return "", err
		}
	}
	return out, nil
}

func (d *stubDriver) Confirm(context.Context, ConfirmConfig) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	if len(d.confirms) == 0 {
		return false, errors.New("stub: no scripted confirm")
	}
	out := d.confirms[0]
	d.confirms = d.confirms[1:]
	return out, nil
}

func (d *stubDriver) Select(context.Context, SelectConfig) (int, error) {
	if d.err != nil {
		return 0, d.err
	}
	if len(d.selects) == 0 {
		return 0, errors.New("stub: no scripted select")
	}
	out := d.selects[0]
	d.selects = d.selects[1:]
	return out, nil
}

func (d *stubDriver) MultiSelect(context.Context, SelectConfig) ([]int, error) {
	if d.err != nil {
		return nil, d.err
	}
	if len(d.multis) == 0 {
		return nil, errors.New("stub: no scripted multi-select")
	}
	out := d.multis[0]
	d.multis = d.multis[1:]
	return out, nil
}

func (d *stubDriver) TextArea(context.Context, TextAreaConfig) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	if len(d.textareas) == 0 {
		return "", errors.New("stub: no scripted textarea")
	}
	out := d.textareas[0]
	d.textareas = d.textareas[1:]
	return out, nil
}

func (d *stubDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func captureSubmitter(got *response.Snapshot) flow.Submitter {
	return flow.SubmitterFunc(func(_ context.Context, formID string, responses response.Snapshot) (flow.Receipt, error) {
		*got = responses
		return flow.Receipt{ID: "r1", Status: "accepted"}, nil
	})
}

func TestRunSingleStep(t *testing.T) {
	form := schema.Form{
		ID:    "f1",
		Title: "Registration",
		Fields: []schema.Field{
			{ID: "name", Kind: schema.FieldKindText, Label: "Name", Required: true},
			{ID: "diet", Kind: schema.FieldKindCheckbox, Label: "Diet", Options: []string{"vegan", "halal"}},
			{ID: "news", Kind: schema.FieldKindCheckbox, Label: "Newsletter"},
			{ID: "ticket", Kind: schema.FieldKindRadio, Label: "Ticket", Options: []string{"standard", "vip"}},
		},
	}

	driver := &stubDriver{
		inputs:   []string{"Ada"},
		multis:   [][]int{{0}},
		confirms: []bool{true},
		selects:  []int{1},
	}
	runner := NewRunner(WithPromptDriver(driver))

	var got response.Snapshot
	receipt, err := runner.Run(context.Background(), flow.NewSession(form), captureSubmitter(&got))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if receipt.ID != "r1" {
		t.Fatalf("receipt = %+v", receipt)
	}

	name, _ := got.Get("name")
	if text, _ := name.Text(); text != "Ada" {
		t.Errorf("name = %q", text)
	}
	diet, _ := got.Get("diet")
	if diff := cmp.Diff([]string{"vegan"}, diet.Options()); diff != "" {
		t.Errorf("diet:\n%s", diff)
	}
	news, _ := got.Get("news")
	if text, _ := news.Text(); text != "true" {
		t.Errorf("news = %q", text)
	}
	ticket, _ := got.Get("ticket")
	if text, _ := ticket.Text(); text != "vip" {
		t.Errorf("ticket = %q", text)
	}
}

func TestRunMultiStepAdvances(t *testing.T) {
	form := schema.Form{
		ID: "f1",
		Fields: []schema.Field{
			{ID: "name", Kind: schema.FieldKindText, Label: "Name", Required: true},
			{ID: "notes", Kind: schema.FieldKindTextarea, Label: "Notes"},
		},
		IsMultiStep: true,
		Steps: []schema.Step{
			{Title: "About you", FieldIDs: []string{"name"}},
			{Title: "Extras", FieldIDs: []string{"notes"}},
		},
	}

	driver := &stubDriver{
		inputs:    []string{"Ada"},
		textareas: []string{"see you there"},
		selects:   []int{0}, // submit at the final step
	}
	runner := NewRunner(WithPromptDriver(driver))

	var got response.Snapshot
	if _, err := runner.Run(context.Background(), flow.NewSession(form), captureSubmitter(&got)); err != nil {
		t.Fatalf("run: %v", err)
	}

	var sawFirst, sawSecond bool
	for _, msg := range driver.infos {
		if msg == "About you (1/2)" {
			sawFirst = true
		}
		if msg == "Extras (2/2)" {
			sawSecond = true
		}
	}
	if !sawFirst || !sawSecond {
		t.Fatalf("step banners missing: %v", driver.infos)
	}

	notes, _ := got.Get("notes")
	if text, _ := notes.Text(); text != "see you there" {
		t.Errorf("notes = %q", text)
	}
}

func TestRunBackRevisitsPreviousStep(t *testing.T) {
	form := schema.Form{
		ID: "f1",
		Fields: []schema.Field{
			{ID: "name", Kind: schema.FieldKindText, Label: "Name", Required: true},
			{ID: "notes", Kind: schema.FieldKindTextarea, Label: "Notes"},
		},
		IsMultiStep: true,
		Steps: []schema.Step{
			{Title: "About you", FieldIDs: []string{"name"}},
			{Title: "Extras", FieldIDs: []string{"notes"}},
		},
	}

	// Fill both steps, pick "Previous step" at the end, revise the first
	// answer, then come back and submit.
	driver := &stubDriver{
		inputs:    []string{"Ada", "Grace"},
		textareas: []string{"first pass", "second pass"},
		selects:   []int{1, 0},
	}
	runner := NewRunner(WithPromptDriver(driver))

	var got response.Snapshot
	if _, err := runner.Run(context.Background(), flow.NewSession(form), captureSubmitter(&got)); err != nil {
		t.Fatalf("run: %v", err)
	}

	name, _ := got.Get("name")
	if text, _ := name.Text(); text != "Grace" {
		t.Errorf("name = %q, want revised answer", text)
	}
	notes, _ := got.Get("notes")
	if text, _ := notes.Text(); text != "second pass" {
		t.Errorf("notes = %q", text)
	}

	var firstBanners int
	for _, msg := range driver.infos {
		if msg == "About you (1/2)" {
			firstBanners++
		}
	}
	if firstBanners != 2 {
		t.Fatalf("first step shown %d times, want 2: %v", firstBanners, driver.infos)
	}
}

func TestRunPropagatesAbort(t *testing.T) {
	form := schema.Form{
		ID:     "f1",
		Fields: []schema.Field{{ID: "name", Kind: schema.FieldKindText, Required: true}},
	}

	driver := &stubDriver{err: ErrAborted}
	runner := NewRunner(WithPromptDriver(driver))

	_, err := runner.Run(context.Background(), flow.NewSession(form), nil)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRunRejectsEmptyForm(t *testing.T) {
	runner := NewRunner(WithPromptDriver(&stubDriver{}))
	_, err := runner.Run(context.Background(), flow.NewSession(schema.Form{ID: "f1"}), nil)
	if !errors.Is(err, ErrNoFields) {
		t.Fatalf("expected ErrNoFields, got %v", err)
	}
}

func TestNumberConstraintRetries(t *testing.T) {
	min := 18.0
	form := schema.Form{
		ID: "f1",
		Fields: []schema.Field{
			{ID: "age", Kind: schema.FieldKindNumber, Label: "Age", Required: true,
				Validation: &schema.ValidationRule{Min: &min}},
		},
	}

	driver := &stubDriver{inputs: []string{"12", "21"}}
	runner := NewRunner(WithPromptDriver(driver))

	var got response.Snapshot
	if _, err := runner.Run(context.Background(), flow.NewSession(form), captureSubmitter(&got)); err != nil {
		t.Fatalf("run: %v", err)
	}

	age, _ := got.Get("age")
	if f, _ := age.Float(); f != 21 {
		t.Errorf("age = %v", f)
	}
	if len(driver.infos) == 0 {
		t.Errorf("expected a constraint message for the first answer")
	}
}
