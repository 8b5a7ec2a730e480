package template

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// LoadFS walks the filesystem and parses every YAML template document into
// the returned catalog. A nil filesystem yields an empty catalog.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	catalog := NewCatalog()
	if fsys == nil {
		return catalog, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isTemplateFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("template: read %s: %w", path, err)
		}
		tpl, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		if err := catalog.Register(tpl); err != nil {
			return fmt.Errorf("template: register %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// LoadDir loads templates from a directory on disk.
func LoadDir(dir string) (*Catalog, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return NewCatalog(), nil
	}
	return LoadFS(os.DirFS(trimmed))
}

func isTemplateFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func parseDocument(data []byte, path string) (schema.FormTemplate, error) {
	var tpl schema.FormTemplate
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		return schema.FormTemplate{}, fmt.Errorf("template: parse %s: %w", path, err)
	}
	if tpl.ID == "" {
		tpl.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return tpl, nil
}
