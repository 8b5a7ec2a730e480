package schema

// ValidationRule captures the optional constraints attached to a field. For
// string-like kinds min/max bound the text length; for number fields they
// bound the value. Pattern holds a regular expression applied to scalar
// string-like answers. Message overrides the default error text renderers
// surface when a constraint fails.
type ValidationRule struct {
	Min     *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max     *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Pattern string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Message string   `json:"message,omitempty" yaml:"message,omitempty"`
}

// Field models one input definition inside a form. Struct fields are
// annotated so the whole form can be stored and transported as a plain
// document.
type Field struct {
	ID          string          `json:"id" yaml:"id"`
	Kind        FieldKind       `json:"kind" yaml:"kind"`
	Label       string          `json:"label" yaml:"label"`
	Placeholder string          `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool            `json:"required" yaml:"required"`
	Options     []string        `json:"options,omitempty" yaml:"options,omitempty"`
	Validation  *ValidationRule `json:"validation,omitempty" yaml:"validation,omitempty"`
}

// Shape resolves the runtime answer shape for the field. Checkbox fields are
// array-valued only when option-backed; every other kind is scalar.
func (f Field) Shape() ValueShape {
	if f.Kind == FieldKindCheckbox && len(f.Options) > 0 {
		return ValueShapeArray
	}
	return ValueShapeScalar
}

// OptionBacked reports whether the field renders from an option list.
func (f Field) OptionBacked() bool {
	spec, ok := LookupKind(f.Kind)
	if !ok {
		return false
	}
	if spec.OptionsRequired {
		return true
	}
	return spec.OptionsAllowed && len(f.Options) > 0
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	out := f
	if len(f.Options) > 0 {
		out.Options = append([]string(nil), f.Options...)
	}
	if f.Validation != nil {
		rule := *f.Validation
		if f.Validation.Min != nil {
			min := *f.Validation.Min
			rule.Min = &min
		}
		if f.Validation.Max != nil {
			max := *f.Validation.Max
			rule.Max = &max
		}
		out.Validation = &rule
	}
	return out
}

// Step groups an ordered subset of a form's fields shown together.
type Step struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	FieldIDs    []string `json:"fieldIds" yaml:"fieldIds"`
}

// Clone returns a deep copy of the step.
func (s Step) Clone() Step {
	out := s
	if len(s.FieldIDs) > 0 {
		out.FieldIDs = append([]string(nil), s.FieldIDs...)
	}
	return out
}

// References reports whether the step lists fieldID.
func (s Step) References(fieldID string) bool {
	for _, id := range s.FieldIDs {
		if id == fieldID {
			return true
		}
	}
	return false
}

// Form is the authoring-side document: an ordered field list plus optional
// multi-step structure. IsMultiStep is true exactly when Steps is non-empty;
// single-step forms treat the whole field list as one implicit step.
type Form struct {
	ID          string  `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field `json:"fields" yaml:"fields"`
	IsMultiStep bool    `json:"isMultiStep" yaml:"isMultiStep"`
	Steps       []Step  `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// Clone returns a deep copy of the form.
func (f Form) Clone() Form {
	out := f
	if len(f.Fields) > 0 {
		out.Fields = make([]Field, len(f.Fields))
		for i, field := range f.Fields {
			out.Fields[i] = field.Clone()
		}
	}
	if len(f.Steps) > 0 {
		out.Steps = make([]Step, len(f.Steps))
		for i, step := range f.Steps {
			out.Steps[i] = step.Clone()
		}
	}
	return out
}

// FieldIndex returns the position of fieldID in Fields, or -1.
func (f Form) FieldIndex(fieldID string) int {
	for i := range f.Fields {
		if f.Fields[i].ID == fieldID {
			return i
		}
	}
	return -1
}

// FieldByID looks up a field by id.
func (f Form) FieldByID(fieldID string) (Field, bool) {
	idx := f.FieldIndex(fieldID)
	if idx < 0 {
		return Field{}, false
	}
	return f.Fields[idx], true
}

// HasField reports whether fieldID exists in the field list.
func (f Form) HasField(fieldID string) bool {
	return f.FieldIndex(fieldID) >= 0
}

// FormType distinguishes the template catalogs served to organizers.
type FormType string

const (
	FormTypeRegistration FormType = "registration"
	FormTypeFeedback     FormType = "feedback"
)

// FormTemplate is a read-only catalog entry: a named, pre-built field set an
// organizer can clone into a form. Templates are never mutated after
// registration; application deep-copies the fields and regenerates their ids.
type FormTemplate struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Type        FormType `json:"type" yaml:"type"`
	Fields      []Field  `json:"fields" yaml:"fields"`
}

// Clone returns a deep copy of the template.
func (t FormTemplate) Clone() FormTemplate {
	out := t
	if len(t.Fields) > 0 {
		out.Fields = make([]Field, len(t.Fields))
		for i, field := range t.Fields {
			out.Fields[i] = field.Clone()
		}
	}
	return out
}
