// Package template declares the rendering engine contract consumed by the
// HTML renderer. The gotemplate subpackage provides the pongo2-backed
// implementation.
package template
