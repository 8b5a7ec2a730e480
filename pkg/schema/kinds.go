package schema

// CatalogVersion identifies the field-kind table below. Any change to the
// table (new kinds, reclassified shapes) bumps this version.
const CatalogVersion = 1

// FieldKind enumerates the supported input kinds.
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindEmail    FieldKind = "email"
	FieldKindPhone    FieldKind = "phone"
	FieldKindTextarea FieldKind = "textarea"
	FieldKindSelect   FieldKind = "select"
	FieldKindRadio    FieldKind = "radio"
	FieldKindCheckbox FieldKind = "checkbox"
	FieldKindFile     FieldKind = "file"
	FieldKindDate     FieldKind = "date"
	FieldKindURL      FieldKind = "url"
	FieldKindNumber   FieldKind = "number"
)

// ValueShape classifies a field's runtime answer as a single value or a set
// of selected options.
type ValueShape string

const (
	ValueShapeScalar ValueShape = "scalar"
	ValueShapeArray  ValueShape = "array"
)

// KindSpec describes which attributes are meaningful for a field kind.
type KindSpec struct {
	Kind FieldKind
	// OptionsRequired marks kinds that cannot render without a non-empty
	// option list.
	OptionsRequired bool
	// OptionsAllowed marks kinds that may carry an option list. Checkbox is
	// the only kind where options are optional: with options it collects an
	// array of selections, without it is a single boolean toggle.
	OptionsAllowed bool
	// StringLike marks kinds whose min/max bound the text length and whose
	// pattern rule applies.
	StringLike bool
	// Numeric marks kinds whose min/max bound the numeric value.
	Numeric bool
}

var kindCatalog = map[FieldKind]KindSpec{
	FieldKindText:     {Kind: FieldKindText, StringLike: true},
	FieldKindEmail:    {Kind: FieldKindEmail, StringLike: true},
	FieldKindPhone:    {Kind: FieldKindPhone, StringLike: true},
	FieldKindTextarea: {Kind: FieldKindTextarea, StringLike: true},
	FieldKindSelect:   {Kind: FieldKindSelect, OptionsRequired: true, OptionsAllowed: true},
	FieldKindRadio:    {Kind: FieldKindRadio, OptionsRequired: true, OptionsAllowed: true},
	FieldKindCheckbox: {Kind: FieldKindCheckbox, OptionsAllowed: true},
	FieldKindFile:     {Kind: FieldKindFile},
	FieldKindDate:     {Kind: FieldKindDate},
	FieldKindURL:      {Kind: FieldKindURL, StringLike: true},
	FieldKindNumber:   {Kind: FieldKindNumber, Numeric: true},
}

// Kinds returns the supported kinds in catalog order.
func Kinds() []FieldKind {
	return []FieldKind{
		FieldKindText, FieldKindEmail, FieldKindPhone, FieldKindTextarea,
		FieldKindSelect, FieldKindRadio, FieldKindCheckbox, FieldKindFile,
		FieldKindDate, FieldKindURL, FieldKindNumber,
	}
}

// LookupKind resolves the spec for a kind.
func LookupKind(kind FieldKind) (KindSpec, bool) {
	spec, ok := kindCatalog[kind]
	return spec, ok
}

// KnownKind reports whether kind appears in the catalog.
func KnownKind(kind FieldKind) bool {
	_, ok := kindCatalog[kind]
	return ok
}
