package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// Memory keeps form documents in process. Documents are deep-cloned both
// ways, so callers can never mutate stored state through a returned form.
type Memory struct {
	mu    sync.RWMutex
	forms map[string]map[string]schema.Form // eventID -> formID -> form
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{forms: make(map[string]map[string]schema.Form)}
}

var _ Store = (*Memory)(nil)

// CreateForm implements Store.
func (m *Memory) CreateForm(ctx context.Context, eventID string, form schema.Form) (schema.Form, error) {
	if err := ctx.Err(); err != nil {
		return schema.Form{}, err
	}
	if form.ID == "" {
		form.ID = uuid.NewString()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	event, ok := m.forms[eventID]
	if !ok {
		event = make(map[string]schema.Form)
		m.forms[eventID] = event
	}
	if _, exists := event[form.ID]; exists {
		return schema.Form{}, fmt.Errorf("store: form %q already exists", form.ID)
	}
	event[form.ID] = form.Clone()
	return form.Clone(), nil
}

// LoadForm implements Store.
func (m *Memory) LoadForm(ctx context.Context, eventID, formID string) (schema.Form, error) {
	if err := ctx.Err(); err != nil {
		return schema.Form{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	form, ok := m.forms[eventID][formID]
	if !ok {
		return schema.Form{}, fmt.Errorf("%w: %s/%s", ErrNotFound, eventID, formID)
	}
	return form.Clone(), nil
}

// SaveForm implements Store.
func (m *Memory) SaveForm(ctx context.Context, eventID, formID string, form schema.Form) (schema.Form, error) {
	if err := ctx.Err(); err != nil {
		return schema.Form{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	event, ok := m.forms[eventID]
	if !ok {
		return schema.Form{}, fmt.Errorf("%w: %s/%s", ErrNotFound, eventID, formID)
	}
	if _, exists := event[formID]; !exists {
		return schema.Form{}, fmt.Errorf("%w: %s/%s", ErrNotFound, eventID, formID)
	}
	form.ID = formID
	event[formID] = form.Clone()
	return form.Clone(), nil
}

// DeleteForm implements Store.
func (m *Memory) DeleteForm(ctx context.Context, eventID, formID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	event, ok := m.forms[eventID]
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, eventID, formID)
	}
	if _, exists := event[formID]; !exists {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, eventID, formID)
	}
	delete(event, formID)
	return nil
}

// ListForms implements Store.
func (m *Memory) ListForms(ctx context.Context, eventID string) ([]schema.Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	event := m.forms[eventID]
	out := make([]schema.Form, 0, len(event))
	for _, form := range event {
		out = append(out, form.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
