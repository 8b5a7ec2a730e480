package render

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// ErrorMapping splits a server error payload into field-level and form-level
// messages keyed by field id.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload normalises server error payloads into the field ids a
// renderer can attach messages to. Keys that match no field in the form are
// folded into form-level messages so nothing is lost.
func MapErrorPayload(form schema.Form, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	if len(payload) == 0 {
		return mapping
	}

	for key, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		id := strings.TrimSpace(key)
		if id == "" || !form.HasField(id) {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[id] = append(mapping.Fields[id], normalized...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// IssueErrors converts constraint issues into the Errors payload renderers
// consume. Issues without a field id become form-level messages.
func IssueErrors(issues []validation.Issue) map[string][]string {
	if len(issues) == 0 {
		return nil
	}
	out := make(map[string][]string, len(issues))
	for _, issue := range issues {
		out[issue.FieldID] = append(out[issue.FieldID], issue.Message)
	}
	for key, messages := range out {
		out[key] = normalizeMessages(messages)
	}
	return out
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
