package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestKindCatalog(t *testing.T) {
	if got := len(Kinds()); got != 11 {
		t.Fatalf("expected 11 kinds, got %d", got)
	}
	for _, kind := range Kinds() {
		if !KnownKind(kind) {
			t.Fatalf("kind %q missing from catalog", kind)
		}
	}
	if KnownKind(FieldKind("multiselect")) {
		t.Fatalf("unexpected kind resolved")
	}

	spec, ok := LookupKind(FieldKindSelect)
	if !ok || !spec.OptionsRequired {
		t.Fatalf("select must require options, got %+v", spec)
	}
	spec, _ = LookupKind(FieldKindCheckbox)
	if spec.OptionsRequired || !spec.OptionsAllowed {
		t.Fatalf("checkbox options must be optional, got %+v", spec)
	}
	spec, _ = LookupKind(FieldKindNumber)
	if !spec.Numeric || spec.StringLike {
		t.Fatalf("number must be numeric, got %+v", spec)
	}
}

func TestFieldShape(t *testing.T) {
	cases := []struct {
		name  string
		field Field
		want  ValueShape
	}{
		{"text", Field{ID: "a", Kind: FieldKindText}, ValueShapeScalar},
		{"radio", Field{ID: "a", Kind: FieldKindRadio, Options: []string{"x"}}, ValueShapeScalar},
		{"select", Field{ID: "a", Kind: FieldKindSelect, Options: []string{"x"}}, ValueShapeScalar},
		{"checkbox with options", Field{ID: "a", Kind: FieldKindCheckbox, Options: []string{"x", "y"}}, ValueShapeArray},
		{"checkbox toggle", Field{ID: "a", Kind: FieldKindCheckbox}, ValueShapeScalar},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.field.Shape(); got != tc.want {
				t.Fatalf("shape = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFieldValidate(t *testing.T) {
	if err := (Field{Kind: FieldKindText}).Validate(); !errors.Is(err, ErrEmptyFieldID) {
		t.Fatalf("expected ErrEmptyFieldID, got %v", err)
	}
	if err := (Field{ID: "a", Kind: "magic"}).Validate(); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
	if err := (Field{ID: "a", Kind: FieldKindSelect}).Validate(); !errors.Is(err, ErrMissingOptions) {
		t.Fatalf("expected ErrMissingOptions, got %v", err)
	}
	if err := (Field{ID: "a", Kind: FieldKindText, Options: []string{"x"}}).Validate(); !errors.Is(err, ErrUnexpectedOptions) {
		t.Fatalf("expected ErrUnexpectedOptions, got %v", err)
	}
	if err := (Field{ID: "a", Kind: FieldKindCheckbox}).Validate(); err != nil {
		t.Fatalf("plain checkbox should validate, got %v", err)
	}
}

func TestFormValidate(t *testing.T) {
	form := Form{
		ID:    "f1",
		Title: "Registration",
		Fields: []Field{
			{ID: "name", Kind: FieldKindText, Label: "Name"},
			{ID: "email", Kind: FieldKindEmail, Label: "Email"},
		},
	}
	if err := form.Validate(); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}

	dup := form.Clone()
	dup.Fields = append(dup.Fields, Field{ID: "name", Kind: FieldKindText})
	if err := dup.Validate(); !errors.Is(err, ErrDuplicateFieldID) {
		t.Fatalf("expected ErrDuplicateFieldID, got %v", err)
	}

	flagged := form.Clone()
	flagged.IsMultiStep = true
	if err := flagged.Validate(); !errors.Is(err, ErrStepFlagMismatch) {
		t.Fatalf("expected ErrStepFlagMismatch, got %v", err)
	}

	dangling := form.Clone()
	dangling.IsMultiStep = true
	dangling.Steps = []Step{{Title: "Step 1", FieldIDs: []string{"name", "missing"}}}
	if err := dangling.Validate(); !errors.Is(err, ErrDanglingStepRef) {
		t.Fatalf("expected ErrDanglingStepRef, got %v", err)
	}
}

func TestFormClone(t *testing.T) {
	min := 2.0
	form := Form{
		ID: "f1",
		Fields: []Field{
			{
				ID:         "tags",
				Kind:       FieldKindCheckbox,
				Options:    []string{"go", "rust"},
				Validation: &ValidationRule{Min: &min},
			},
		},
		IsMultiStep: true,
		Steps:       []Step{{Title: "Step 1", FieldIDs: []string{"tags"}}},
	}

	clone := form.Clone()
	clone.Fields[0].Options[0] = "zig"
	*clone.Fields[0].Validation.Min = 9
	clone.Steps[0].FieldIDs[0] = "other"

	if form.Fields[0].Options[0] != "go" {
		t.Fatalf("clone shares options slice")
	}
	if *form.Fields[0].Validation.Min != 2 {
		t.Fatalf("clone shares validation rule")
	}
	if form.Steps[0].FieldIDs[0] != "tags" {
		t.Fatalf("clone shares step field ids")
	}
}

func TestFormJSONRoundTrip(t *testing.T) {
	form := Form{
		ID:    "f1",
		Title: "Feedback",
		Fields: []Field{
			{ID: "rating", Kind: FieldKindRadio, Label: "Rating", Required: true, Options: []string{"1", "2", "3"}},
			{ID: "notes", Kind: FieldKindTextarea, Label: "Notes"},
		},
		IsMultiStep: true,
		Steps:       []Step{{Title: "Step 1", FieldIDs: []string{"rating", "notes"}}},
	}

	payload, err := json.Marshal(form)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded Form
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(form, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldLookups(t *testing.T) {
	form := Form{Fields: []Field{{ID: "a", Kind: FieldKindText}, {ID: "b", Kind: FieldKindDate}}}
	if idx := form.FieldIndex("b"); idx != 1 {
		t.Fatalf("FieldIndex(b) = %d", idx)
	}
	if _, ok := form.FieldByID("c"); ok {
		t.Fatalf("FieldByID(c) should miss")
	}
	if !form.HasField("a") || form.HasField("z") {
		t.Fatalf("HasField misbehaved")
	}
	step := Step{FieldIDs: []string{"a"}}
	if !step.References("a") || step.References("b") {
		t.Fatalf("Step.References misbehaved")
	}
}
