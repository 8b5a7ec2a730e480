// Package openapi imports OpenAPI 3 operation request bodies as editable form
// documents. Each top-level property of the request schema becomes a field;
// the importer maps formats and bounds onto the closest field kind and keeps
// the result valid under schema.Form.Validate.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// Options configure the import.
type Options struct {
	// OperationID selects which operation to import. Empty picks the first
	// operation that carries a request body, scanning paths alphabetically.
	OperationID string
	// ResolveReferences validates the document and resolves external refs.
	ResolveReferences bool
}

// ErrNoOperation reports that no importable operation was found.
var ErrNoOperation = errors.New("openapi: no operation with a request body")

// textareaThreshold is the maxLength above which a plain string becomes a
// multi-line field.
const textareaThreshold = 255

// ImportForm loads an OpenAPI document and converts the selected operation's
// request body into a form document.
func ImportForm(ctx context.Context, data []byte, options Options) (schema.Form, error) {
	if len(data) == 0 {
		return schema.Form{}, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: options.ResolveReferences,
	}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return schema.Form{}, fmt.Errorf("openapi: load document: %w", err)
	}
	if options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return schema.Form{}, fmt.Errorf("openapi: validate: %w", err)
		}
	}

	operation, err := selectOperation(spec, options.OperationID)
	if err != nil {
		return schema.Form{}, err
	}

	body := requestSchema(operation.RequestBody)
	if body == nil {
		return schema.Form{}, fmt.Errorf("%w: %q", ErrNoOperation, options.OperationID)
	}

	form := schema.Form{
		Title:       firstNonEmpty(operation.Summary, operation.OperationID),
		Description: operation.Description,
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	for _, name := range sortedPropertyNames(body) {
		ref := body.Properties[name]
		field, ok := convertProperty(name, ref, required[name])
		if !ok {
			continue
		}
		form.Fields = append(form.Fields, field)
	}

	if err := form.Validate(); err != nil {
		return schema.Form{}, fmt.Errorf("openapi: imported form invalid: %w", err)
	}
	return form, nil
}

func selectOperation(spec *openapi3.T, operationID string) (*openapi3.Operation, error) {
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi: document does not contain any paths")
	}

	var fallback *openapi3.Operation
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range []*openapi3.Operation{
			item.Post, item.Put, item.Patch, item.Get, item.Delete,
		} {
			if operation == nil {
				continue
			}
			if operationID != "" {
				if operation.OperationID == operationID {
					return operation, nil
				}
				continue
			}
			if requestSchema(operation.RequestBody) != nil && fallback == nil {
				fallback = operation
			}
		}
	}

	if operationID != "" {
		return nil, fmt.Errorf("openapi: operation %q not found", operationID)
	}
	if fallback == nil {
		return nil, ErrNoOperation
	}
	return fallback, nil
}

func requestSchema(requestBody *openapi3.RequestBodyRef) *openapi3.Schema {
	if requestBody == nil || requestBody.Value == nil {
		return nil
	}
	content := requestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func sortedPropertyNames(body *openapi3.Schema) []string {
	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	// map iteration order is random; keep the import deterministic
	sort.Strings(names)
	return names
}

// convertProperty maps one request body property to a field. Nested objects
// and arrays without enum options have no flat-field representation and are
// skipped.
func convertProperty(name string, ref *openapi3.SchemaRef, required bool) (schema.Field, bool) {
	if ref == nil || ref.Value == nil {
		return schema.Field{}, false
	}
	src := ref.Value

	field := schema.Field{
		ID:          name,
		Label:       firstNonEmpty(src.Title, humanize(name)),
		Description: src.Description,
		Required:    required,
	}

	switch schemaType(src) {
	case "string":
		field.Kind = stringKind(src)
		if field.Kind == schema.FieldKindSelect {
			field.Options = enumOptions(src.Enum)
			if len(field.Options) == 0 {
				return schema.Field{}, false
			}
		}
		field.Validation = stringRule(src)
	case "number", "integer":
		field.Kind = schema.FieldKindNumber
		field.Validation = numberRule(src)
	case "boolean":
		field.Kind = schema.FieldKindCheckbox
	case "array":
		if src.Items == nil || src.Items.Value == nil {
			return schema.Field{}, false
		}
		options := enumOptions(src.Items.Value.Enum)
		if len(options) == 0 {
			return schema.Field{}, false
		}
		field.Kind = schema.FieldKindCheckbox
		field.Options = options
	default:
		return schema.Field{}, false
	}

	return field, true
}

func schemaType(src *openapi3.Schema) string {
	if src.Type == nil {
		return ""
	}
	values := src.Type.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func stringKind(src *openapi3.Schema) schema.FieldKind {
	if len(src.Enum) > 0 {
		return schema.FieldKindSelect
	}
	switch src.Format {
	case "email":
		return schema.FieldKindEmail
	case "uri", "url":
		return schema.FieldKindURL
	case "date", "date-time":
		return schema.FieldKindDate
	case "tel", "phone":
		return schema.FieldKindPhone
	case "binary":
		return schema.FieldKindFile
	case "textarea":
		return schema.FieldKindTextarea
	}
	if src.MaxLength != nil && *src.MaxLength > textareaThreshold {
		return schema.FieldKindTextarea
	}
	return schema.FieldKindText
}

func stringRule(src *openapi3.Schema) *schema.ValidationRule {
	rule := &schema.ValidationRule{Pattern: src.Pattern}
	if src.MinLength != 0 {
		value := float64(src.MinLength)
		rule.Min = &value
	}
	if src.MaxLength != nil {
		value := float64(*src.MaxLength)
		rule.Max = &value
	}
	if rule.Min == nil && rule.Max == nil && rule.Pattern == "" {
		return nil
	}
	return rule
}

func numberRule(src *openapi3.Schema) *schema.ValidationRule {
	rule := &schema.ValidationRule{}
	if src.Min != nil {
		value := *src.Min
		rule.Min = &value
	}
	if src.Max != nil {
		value := *src.Max
		rule.Max = &value
	}
	if rule.Min == nil && rule.Max == nil {
		return nil
	}
	return rule
}

func enumOptions(values []any) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		s, ok := value.(string)
		if !ok || s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func humanize(name string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(name)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return name
	}
	return strings.ToUpper(cleaned[:1]) + cleaned[1:]
}
