package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/schema"
)

func sampleForm() schema.Form {
	return schema.Form{
		Title: "Registration",
		Fields: []schema.Field{
			{ID: "name", Kind: schema.FieldKindText, Label: "Name", Required: true},
		},
	}
}

// Both implementations honor the same contract; exercise them together.
func stores(t *testing.T) map[string]Store {
	t.Helper()
	dir, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatalf("new dir store: %v", err)
	}
	return map[string]Store{
		"memory": NewMemory(),
		"dir":    dir,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			created, err := s.CreateForm(ctx, "ev1", sampleForm())
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if created.ID == "" {
				t.Fatalf("create did not mint an id")
			}

			loaded, err := s.LoadForm(ctx, "ev1", created.ID)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if diff := cmp.Diff(created, loaded); diff != "" {
				t.Fatalf("round trip mismatch:\n%s", diff)
			}

			loaded.Title = "Edited"
			saved, err := s.SaveForm(ctx, "ev1", created.ID, loaded)
			if err != nil {
				t.Fatalf("save: %v", err)
			}
			if saved.Title != "Edited" {
				t.Fatalf("save dropped changes")
			}

			if err := s.DeleteForm(ctx, "ev1", created.ID); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, err := s.LoadForm(ctx, "ev1", created.ID); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound after delete, got %v", err)
			}
		})
	}
}

func TestStoreNotFound(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if _, err := s.LoadForm(ctx, "ev1", "ghost"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("load: expected ErrNotFound, got %v", err)
			}
			if _, err := s.SaveForm(ctx, "ev1", "ghost", sampleForm()); !errors.Is(err, ErrNotFound) {
				t.Fatalf("save: expected ErrNotFound, got %v", err)
			}
			if err := s.DeleteForm(ctx, "ev1", "ghost"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("delete: expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestStoreCreateDuplicate(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			form := sampleForm()
			form.ID = "fixed"
			if _, err := s.CreateForm(ctx, "ev1", form); err != nil {
				t.Fatalf("create: %v", err)
			}
			if _, err := s.CreateForm(ctx, "ev1", form); err == nil {
				t.Fatalf("duplicate create accepted")
			}
		})
	}
}

func TestStoreListForms(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, id := range []string{"b", "a"} {
				form := sampleForm()
				form.ID = id
				if _, err := s.CreateForm(ctx, "ev1", form); err != nil {
					t.Fatalf("create %q: %v", id, err)
				}
			}

			forms, err := s.ListForms(ctx, "ev1")
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(forms) != 2 || forms[0].ID != "a" || forms[1].ID != "b" {
				t.Fatalf("list order mismatch: %+v", forms)
			}

			if other, err := s.ListForms(ctx, "ev2"); err != nil || len(other) != 0 {
				t.Fatalf("unexpected forms for other event: %v %v", other, err)
			}
		})
	}
}

func TestMemoryIsolation(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	created, err := s.CreateForm(ctx, "ev1", sampleForm())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.Fields[0].Label = "mutated"
	loaded, err := s.LoadForm(ctx, "ev1", created.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Fields[0].Label != "Name" {
		t.Fatalf("stored document shares memory with caller")
	}
}
