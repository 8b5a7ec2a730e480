package openapi

import (
	"context"
	"testing"

	"github.com/goliatone/go-formkit/pkg/schema"
)

const registrationSpec = `
openapi: 3.0.3
info:
  title: Events API
  version: "1.0"
paths:
  /registrations:
    post:
      operationId: createRegistration
      summary: Register for an event
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [full_name, email]
              properties:
                full_name:
                  type: string
                  maxLength: 120
                email:
                  type: string
                  format: email
                website:
                  type: string
                  format: uri
                phone:
                  type: string
                  format: tel
                birthday:
                  type: string
                  format: date
                bio:
                  type: string
                  maxLength: 2000
                ticket:
                  type: string
                  enum: [standard, vip]
                guests:
                  type: integer
                  minimum: 0
                  maximum: 5
                diet:
                  type: array
                  items:
                    type: string
                    enum: [vegan, halal, kosher]
                newsletter:
                  type: boolean
                badge:
                  type: string
                  format: binary
                address:
                  type: object
                  properties:
                    street:
                      type: string
      responses:
        "201":
          description: created
`

func importedForm(t *testing.T) schema.Form {
	t.Helper()
	form, err := ImportForm(context.Background(), []byte(registrationSpec), Options{OperationID: "createRegistration"})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	return form
}

func fieldByID(t *testing.T, form schema.Form, id string) schema.Field {
	t.Helper()
	field, ok := form.FieldByID(id)
	if !ok {
		t.Fatalf("field %q missing; have %d fields", id, len(form.Fields))
	}
	return field
}

func TestImportKindMapping(t *testing.T) {
	form := importedForm(t)

	cases := map[string]schema.FieldKind{
		"full_name":  schema.FieldKindText,
		"email":      schema.FieldKindEmail,
		"website":    schema.FieldKindURL,
		"phone":      schema.FieldKindPhone,
		"birthday":   schema.FieldKindDate,
		"bio":        schema.FieldKindTextarea,
		"ticket":     schema.FieldKindSelect,
		"guests":     schema.FieldKindNumber,
		"diet":       schema.FieldKindCheckbox,
		"newsletter": schema.FieldKindCheckbox,
		"badge":      schema.FieldKindFile,
	}
	for id, kind := range cases {
		if got := fieldByID(t, form, id).Kind; got != kind {
			t.Errorf("%s: kind = %q, want %q", id, got, kind)
		}
	}

	if _, ok := form.FieldByID("address"); ok {
		t.Errorf("nested object should be skipped")
	}
}

func TestImportRequiredAndConstraints(t *testing.T) {
	form := importedForm(t)

	if !fieldByID(t, form, "email").Required || !fieldByID(t, form, "full_name").Required {
		t.Errorf("required list not honored")
	}
	if fieldByID(t, form, "ticket").Required {
		t.Errorf("optional field marked required")
	}

	guests := fieldByID(t, form, "guests")
	if guests.Validation == nil || guests.Validation.Min == nil || *guests.Validation.Min != 0 ||
		guests.Validation.Max == nil || *guests.Validation.Max != 5 {
		t.Errorf("numeric bounds = %+v", guests.Validation)
	}

	name := fieldByID(t, form, "full_name")
	if name.Validation == nil || name.Validation.Max == nil || *name.Validation.Max != 120 {
		t.Errorf("string length bound = %+v", name.Validation)
	}
}

func TestImportOptionBackedFields(t *testing.T) {
	form := importedForm(t)

	diet := fieldByID(t, form, "diet")
	if !diet.OptionBacked() || diet.Shape() != schema.ValueShapeArray {
		t.Errorf("diet = %+v", diet)
	}
	if len(diet.Options) != 3 {
		t.Errorf("diet options = %v", diet.Options)
	}

	newsletter := fieldByID(t, form, "newsletter")
	if newsletter.OptionBacked() || newsletter.Shape() != schema.ValueShapeScalar {
		t.Errorf("newsletter = %+v", newsletter)
	}
}

func TestImportFormMetadata(t *testing.T) {
	form := importedForm(t)
	if form.Title != "Register for an event" {
		t.Errorf("title = %q", form.Title)
	}
	if err := form.Validate(); err != nil {
		t.Fatalf("imported form invalid: %v", err)
	}
}

func TestImportDefaultsToFirstBody(t *testing.T) {
	form, err := ImportForm(context.Background(), []byte(registrationSpec), Options{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(form.Fields) == 0 {
		t.Fatalf("no fields imported")
	}
}

func TestImportUnknownOperation(t *testing.T) {
	_, err := ImportForm(context.Background(), []byte(registrationSpec), Options{OperationID: "ghost"})
	if err == nil {
		t.Fatalf("expected error for unknown operation")
	}
}

func TestImportEmptyPayload(t *testing.T) {
	if _, err := ImportForm(context.Background(), nil, Options{}); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}

func TestImportNoOperations(t *testing.T) {
	spec := []byte("openapi: 3.0.3\ninfo:\n  title: empty\n  version: \"1\"\npaths: {}\n")
	if _, err := ImportForm(context.Background(), spec, Options{}); err == nil {
		t.Fatalf("expected error for empty paths")
	}
}
