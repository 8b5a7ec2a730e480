// Package schema defines the dynamic form document: the field-kind catalog,
// the Field/Step/Form types an organizer authors at runtime, and the
// invariants that keep the document coherent (unique field ids, referentially
// intact step lists, option lists where a kind demands them). The types here
// are plain JSON/YAML-serializable values with deep-copy helpers; all
// structural mutation goes through pkg/editor so invariants are re-checked
// after every change.
package schema
