package template

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.yaml
var embeddedTemplates embed.FS

// BuiltinFS exposes the embedded template documents so callers can list or
// extend them without going through a catalog.
func BuiltinFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// BuiltinCatalog loads the embedded registration and feedback templates.
func BuiltinCatalog() (*Catalog, error) {
	return LoadFS(BuiltinFS())
}
