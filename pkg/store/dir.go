package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// Dir persists one JSON document per form under root/<eventID>/<formID>.json.
// Writes go through a temp file and rename so readers never observe a partial
// document.
type Dir struct {
	mu   sync.Mutex
	root string
}

// NewDir creates a directory-backed store rooted at root.
func NewDir(root string) (*Dir, error) {
	trimmed := strings.TrimSpace(root)
	if trimmed == "" {
		return nil, errors.New("store: root directory is required")
	}
	if err := os.MkdirAll(trimmed, 0o755); err != nil {
		return nil, fmt.Errorf("store: create root: %w", err)
	}
	return &Dir{root: trimmed}, nil
}

var _ Store = (*Dir)(nil)

func (d *Dir) formPath(eventID, formID string) string {
	return filepath.Join(d.root, sanitizeSegment(eventID), sanitizeSegment(formID)+".json")
}

// sanitizeSegment keeps ids usable as path segments.
func sanitizeSegment(id string) string {
	replacer := strings.NewReplacer("/", "_", string(filepath.Separator), "_", "..", "_")
	return replacer.Replace(id)
}

// CreateForm implements Store.
func (d *Dir) CreateForm(ctx context.Context, eventID string, form schema.Form) (schema.Form, error) {
	if err := ctx.Err(); err != nil {
		return schema.Form{}, err
	}
	if form.ID == "" {
		form.ID = uuid.NewString()
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	path := d.formPath(eventID, form.ID)
	if _, err := os.Stat(path); err == nil {
		return schema.Form{}, fmt.Errorf("store: form %q already exists", form.ID)
	}
	if err := d.write(path, form); err != nil {
		return schema.Form{}, err
	}
	return form.Clone(), nil
}

// LoadForm implements Store.
func (d *Dir) LoadForm(ctx context.Context, eventID, formID string) (schema.Form, error) {
	if err := ctx.Err(); err != nil {
		return schema.Form{}, err
	}

	data, err := os.ReadFile(d.formPath(eventID, formID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return schema.Form{}, fmt.Errorf("%w: %s/%s", ErrNotFound, eventID, formID)
		}
		return schema.Form{}, fmt.Errorf("store: read form: %w", err)
	}

	var form schema.Form
	if err := json.Unmarshal(data, &form); err != nil {
		return schema.Form{}, fmt.Errorf("store: decode form %s/%s: %w", eventID, formID, err)
	}
	return form, nil
}

// SaveForm implements Store.
func (d *Dir) SaveForm(ctx context.Context, eventID, formID string, form schema.Form) (schema.Form, error) {
	if err := ctx.Err(); err != nil {
		return schema.Form{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	path := d.formPath(eventID, formID)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return schema.Form{}, fmt.Errorf("%w: %s/%s", ErrNotFound, eventID, formID)
		}
		return schema.Form{}, fmt.Errorf("store: stat form: %w", err)
	}

	form.ID = formID
	if err := d.write(path, form); err != nil {
		return schema.Form{}, err
	}
	return form.Clone(), nil
}

// DeleteForm implements Store.
func (d *Dir) DeleteForm(ctx context.Context, eventID, formID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	err := os.Remove(d.formPath(eventID, formID))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, eventID, formID)
	}
	return err
}

// ListForms implements Store.
func (d *Dir) ListForms(ctx context.Context, eventID string) ([]schema.Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(d.root, sanitizeSegment(eventID)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: list forms: %w", err)
	}

	var out []schema.Form
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		formID := strings.TrimSuffix(entry.Name(), ".json")
		form, err := d.LoadForm(ctx, eventID, formID)
		if err != nil {
			return nil, err
		}
		out = append(out, form)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (d *Dir) write(path string, form schema.Form) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("store: create event dir: %w", err)
	}
	data, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode form: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".form-*.json")
	if err != nil {
		return fmt.Errorf("store: temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("store: write form: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: replace form: %w", err)
	}
	return nil
}
