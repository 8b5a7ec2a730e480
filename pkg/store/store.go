// Package store is the persistence boundary: form documents go in and out
// whole, as opaque JSON, keyed by event and form id. The engine never reaches
// into a database — concurrent organizer edits resolve to last write wins at
// this layer. Two implementations ship here: an in-memory store for tests and
// embedding, and a directory store that keeps one JSON file per form.
package store

import (
	"context"
	"errors"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// ErrNotFound reports a missing form document.
var ErrNotFound = errors.New("store: form not found")

// Store persists whole form documents for an event.
type Store interface {
	// CreateForm stores a new document, minting an id when the form carries
	// none, and returns the stored copy.
	CreateForm(ctx context.Context, eventID string, form schema.Form) (schema.Form, error)
	// LoadForm fetches a document or ErrNotFound.
	LoadForm(ctx context.Context, eventID, formID string) (schema.Form, error)
	// SaveForm overwrites a document, last write wins, and returns the
	// stored copy. Saving an unknown id returns ErrNotFound.
	SaveForm(ctx context.Context, eventID, formID string, form schema.Form) (schema.Form, error)
	// DeleteForm removes a document whole. Deleting an unknown id returns
	// ErrNotFound.
	DeleteForm(ctx context.Context, eventID, formID string) error
	// ListForms returns every document stored for the event.
	ListForms(ctx context.Context, eventID string) ([]schema.Form, error)
}
