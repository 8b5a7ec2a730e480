// Package editor is the only path by which a form's structure changes. Every
// operation takes a form by value, works on a deep copy, re-validates the
// result, and returns either the new form or the untouched input plus an
// IntegrityError — mutations are atomic and never leave a half-applied
// document behind. Removing a field cascades into every step that references
// it; toggling multi-step synthesizes or tears down the step list without
// ever touching the field list.
package editor
