package html

import (
	"sort"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// formView is the context handed to form.tmpl. Everything organizer-authored
// passes through sanitizeText on the way in.
type formView struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	MultiStep   bool         `json:"multiStep"`
	StepIndex   int          `json:"stepIndex"`
	StepCount   int          `json:"stepCount"`
	StepTitle   string       `json:"stepTitle"`
	StepDesc    string       `json:"stepDescription"`
	Fields      []fieldView  `json:"fields"`
	Hidden      []hiddenView `json:"hidden"`
	FormErrors  []string     `json:"formErrors"`
	Theme       themeView    `json:"theme"`
}

type fieldView struct {
	ID          string       `json:"id"`
	Kind        string       `json:"kind"`
	InputType   string       `json:"inputType"`
	Control     string       `json:"control"`
	Label       string       `json:"label"`
	Placeholder string       `json:"placeholder"`
	Description string       `json:"description"`
	Required    bool         `json:"required"`
	Multiple    bool         `json:"multiple"`
	Options     []optionView `json:"options"`
	Value       string       `json:"value"`
	Errors      []string     `json:"errors"`
	MinAttr     string       `json:"minAttr"`
	MaxAttr     string       `json:"maxAttr"`
	Pattern     string       `json:"pattern"`
}

type optionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type hiddenView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type themeView struct {
	Name         string            `json:"name"`
	Variant      string            `json:"variant"`
	Tokens       map[string]string `json:"tokens"`
	CSSVars      map[string]string `json:"cssVars"`
	CSSVarsStyle string            `json:"cssVarsStyle"`
}

// control names the template block a field renders through.
const (
	controlInput    = "input"
	controlTextarea = "textarea"
	controlSelect   = "select"
	controlChoices  = "choices"
	controlCheckbox = "checkbox"
)

var inputTypes = map[schema.FieldKind]string{
	schema.FieldKindText:   "text",
	schema.FieldKindEmail:  "email",
	schema.FieldKindPhone:  "tel",
	schema.FieldKindURL:    "url",
	schema.FieldKindDate:   "date",
	schema.FieldKindNumber: "number",
	schema.FieldKindFile:   "file",
}

func buildFormView(form schema.Form, options render.Options) formView {
	view := formView{
		ID:          form.ID,
		Title:       sanitizeText(form.Title),
		Description: sanitizeText(form.Description),
		MultiStep:   form.IsMultiStep,
		StepIndex:   options.Step,
		StepCount:   len(form.Steps),
		FormErrors:  options.Errors[""],
		Theme:       buildThemeView(options.Theme),
	}

	if form.IsMultiStep && options.Step >= 0 && options.Step < len(form.Steps) {
		step := form.Steps[options.Step]
		view.StepTitle = sanitizeText(step.Title)
		view.StepDesc = sanitizeText(step.Description)
	}

	fields := validation.CurrentStepFields(form, options.Step)
	view.Fields = make([]fieldView, 0, len(fields))
	for _, field := range fields {
		view.Fields = append(view.Fields, buildFieldView(field, options))
	}

	for _, hidden := range render.SortedHiddenFields(options.Hidden) {
		view.Hidden = append(view.Hidden, hiddenView{Name: hidden.Name, Value: hidden.Value})
	}
	return view
}

func buildFieldView(field schema.Field, options render.Options) fieldView {
	view := fieldView{
		ID:          field.ID,
		Kind:        string(field.Kind),
		InputType:   inputTypes[field.Kind],
		Control:     controlFor(field),
		Label:       sanitizeText(field.Label),
		Placeholder: sanitizeText(field.Placeholder),
		Description: sanitizeText(field.Description),
		Required:    field.Required,
		Multiple:    field.Shape() == schema.ValueShapeArray,
		Errors:      options.Errors[field.ID],
	}

	var selected map[string]bool
	if value, ok := options.Values.Get(field.ID); ok {
		if value.IsList() {
			selected = make(map[string]bool)
			for _, option := range value.Options() {
				selected[option] = true
			}
		} else if text, ok := value.Text(); ok {
			view.Value = text
		}
	}

	for _, option := range field.Options {
		view.Options = append(view.Options, optionView{
			Value:    option,
			Label:    sanitizeText(option),
			Selected: selected[option] || (view.Value != "" && view.Value == option),
		})
	}

	applyConstraintAttrs(&view, field)
	return view
}

func controlFor(field schema.Field) string {
	switch field.Kind {
	case schema.FieldKindTextarea:
		return controlTextarea
	case schema.FieldKindSelect:
		return controlSelect
	case schema.FieldKindRadio:
		return controlChoices
	case schema.FieldKindCheckbox:
		if field.OptionBacked() {
			return controlChoices
		}
		return controlCheckbox
	default:
		return controlInput
	}
}

// applyConstraintAttrs maps validation bounds onto native HTML attributes so
// the browser enforces them before any round trip. String-like kinds get
// minlength/maxlength, numeric kinds get min/max.
func applyConstraintAttrs(view *fieldView, field schema.Field) {
	rule := field.Validation
	if rule == nil {
		return
	}

	spec, ok := schema.LookupKind(field.Kind)
	if !ok {
		return
	}
	if spec.StringLike {
		view.Pattern = rule.Pattern
	}
	if rule.Min != nil {
		view.MinAttr = formatBound(*rule.Min)
	}
	if rule.Max != nil {
		view.MaxAttr = formatBound(*rule.Max)
	}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func buildThemeView(cfg *theme.RendererConfig) themeView {
	if cfg == nil {
		return themeView{}
	}
	view := themeView{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		Tokens:  copyStringMap(cfg.Tokens),
		CSSVars: copyStringMap(cfg.CSSVars),
	}
	view.CSSVarsStyle = cssVarsStyle(view.CSSVars)
	return view
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		name := key
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(vars[key])
		sb.WriteString("; ")
	}
	return strings.TrimSpace(sb.String())
}
