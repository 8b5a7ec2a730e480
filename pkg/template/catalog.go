// Package template holds the read-only catalog of pre-built field sets an
// organizer can clone into a form, plus the applier that performs the clone.
// Templates load from YAML documents (embedded defaults or caller-supplied
// filesystems) and are validated on registration, so application can assume a
// well-formed field list.
package template

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// ErrNotFound reports a template id missing from the catalog.
var ErrNotFound = errors.New("template: not found")

// Catalog stores templates by id. Safe for concurrent readers; registration
// is expected at wiring time.
type Catalog struct {
	mu        sync.RWMutex
	templates map[string]schema.FormTemplate
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{templates: make(map[string]schema.FormTemplate)}
}

// Register validates and stores a template. Duplicate ids return an error.
func (c *Catalog) Register(tpl schema.FormTemplate) error {
	if err := tpl.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.templates[tpl.ID]; exists {
		return fmt.Errorf("template: %q already registered", tpl.ID)
	}
	c.templates[tpl.ID] = tpl.Clone()
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (c *Catalog) MustRegister(tpl schema.FormTemplate) {
	if err := c.Register(tpl); err != nil {
		panic(err)
	}
}

// Get retrieves a template by id. The returned value is a copy; the catalog
// entry itself is never handed out.
func (c *Catalog) Get(id string) (schema.FormTemplate, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tpl, ok := c.templates[id]
	if !ok {
		return schema.FormTemplate{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return tpl.Clone(), nil
}

// List returns the templates for a form type sorted by name. An empty type
// lists the whole catalog.
func (c *Catalog) List(formType schema.FormType) []schema.FormTemplate {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]schema.FormTemplate, 0, len(c.templates))
	for _, tpl := range c.templates {
		if formType != "" && tpl.Type != formType {
			continue
		}
		out = append(out, tpl.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Has reports whether a template is registered.
func (c *Catalog) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.templates[id]
	return ok
}
