package response

import (
	"encoding/json"
	"fmt"
)

// Value is the tagged union for a single answer: either a scalar (string,
// number, boolean, or file reference) or a list of selected option strings
// for array-valued fields. The zero Value is "no answer".
type Value struct {
	scalar any
	list   []string
	isList bool
}

// String wraps a scalar string answer.
func String(v string) Value {
	return Value{scalar: v}
}

// Number wraps a scalar numeric answer.
func Number(v float64) Value {
	return Value{scalar: v}
}

// Bool wraps a scalar boolean answer.
func Bool(v bool) Value {
	return Value{scalar: v}
}

// FileRef wraps a reference to an uploaded file (name, storage key, or URL —
// the engine never touches file contents).
func FileRef(ref string) Value {
	return Value{scalar: fileRef(ref)}
}

type fileRef string

// List wraps the selected options of an array-valued field. An empty call
// yields a present-but-empty selection, which never satisfies a required
// field.
func List(options ...string) Value {
	return Value{list: append([]string(nil), options...), isList: true}
}

// IsList reports whether the value carries a selection list.
func (v Value) IsList() bool {
	return v.isList
}

// Options returns a copy of the selection list.
func (v Value) Options() []string {
	if !v.isList || len(v.list) == 0 {
		return nil
	}
	return append([]string(nil), v.list...)
}

// Scalar returns the raw scalar. File references come back as their string
// form.
func (v Value) Scalar() any {
	if ref, ok := v.scalar.(fileRef); ok {
		return string(ref)
	}
	return v.scalar
}

// Text returns the scalar rendered as a string, with ok reporting whether a
// textual reading exists. Lists and absent values read as not ok.
func (v Value) Text() (string, bool) {
	if v.isList || v.scalar == nil {
		return "", false
	}
	switch s := v.scalar.(type) {
	case string:
		return s, true
	case fileRef:
		return string(s), true
	case float64:
		return fmt.Sprintf("%v", s), true
	case bool:
		return fmt.Sprintf("%v", s), true
	default:
		return fmt.Sprintf("%v", s), true
	}
}

// Float returns the scalar as a number when it carries one.
func (v Value) Float() (float64, bool) {
	if v.isList {
		return 0, false
	}
	f, ok := v.scalar.(float64)
	return f, ok
}

// IsZero reports whether the value carries no answer at all.
func (v Value) IsZero() bool {
	return !v.isList && v.scalar == nil
}

// Empty reports whether the answer fails the presence bar: absent values,
// empty strings, and empty selection lists are empty. Numeric zero and false
// are real answers and are not empty.
func (v Value) Empty() bool {
	if v.isList {
		return len(v.list) == 0
	}
	if v.scalar == nil {
		return true
	}
	switch s := v.scalar.(type) {
	case string:
		return s == ""
	case fileRef:
		return s == ""
	default:
		return false
	}
}

// MarshalJSON emits the raw scalar or the option array.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.isList {
		if v.list == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.list)
	}
	if ref, ok := v.scalar.(fileRef); ok {
		return json.Marshal(string(ref))
	}
	return json.Marshal(v.scalar)
}

// UnmarshalJSON accepts strings, numbers, booleans, nulls, and string arrays.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("response: decode value: %w", err)
	}
	switch typed := raw.(type) {
	case nil:
		*v = Value{}
	case string:
		*v = String(typed)
	case float64:
		*v = Number(typed)
	case bool:
		*v = Bool(typed)
	case []any:
		options := make([]string, 0, len(typed))
		for _, item := range typed {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("response: selection lists hold strings, got %T", item)
			}
			options = append(options, s)
		}
		*v = Value{list: options, isList: true}
	default:
		return fmt.Errorf("response: unsupported value shape %T", raw)
	}
	return nil
}
