package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/goliatone/go-formkit/pkg/response"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// Issue reports one violated constraint on one field. Rule identifies the
// constraint (min, max, pattern, options, schema) so renderers can map issues
// onto input attributes.
type Issue struct {
	FieldID string `json:"fieldId"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

const (
	RuleMin     = "min"
	RuleMax     = "max"
	RulePattern = "pattern"
	RuleOptions = "options"
	// RuleSchema flags authoring problems (an unparsable pattern) rather than
	// participant input problems.
	RuleSchema = "schema"
)

// CheckConstraints applies the field's validation rule and option membership
// to an answer. It is the renderer-level companion to FieldSatisfied: absent
// or empty answers produce no issues here (required-ness is presence
// checking, not a constraint). ValidationRule.Message replaces the default
// text on every participant-facing issue.
func CheckConstraints(field schema.Field, value response.Value) []Issue {
	if value.Empty() {
		return nil
	}

	var issues []Issue
	issues = append(issues, checkOptions(field, value)...)
	issues = append(issues, checkRule(field, value)...)
	return issues
}

// CheckStep runs CheckConstraints across every answered field at stepIndex.
func CheckStep(form schema.Form, stepIndex int, snap response.Snapshot) []Issue {
	var issues []Issue
	for _, field := range CurrentStepFields(form, stepIndex) {
		value, ok := snap.Get(field.ID)
		if !ok {
			continue
		}
		issues = append(issues, CheckConstraints(field, value)...)
	}
	return issues
}

func checkOptions(field schema.Field, value response.Value) []Issue {
	if !field.OptionBacked() {
		return nil
	}
	allowed := make(map[string]struct{}, len(field.Options))
	for _, option := range field.Options {
		allowed[option] = struct{}{}
	}

	var chosen []string
	if value.IsList() {
		chosen = value.Options()
	} else if text, ok := value.Text(); ok {
		chosen = []string{text}
	}

	var issues []Issue
	for _, pick := range chosen {
		if _, ok := allowed[pick]; !ok {
			issues = append(issues, issue(field, RuleOptions,
				fmt.Sprintf("%q is not one of the offered options", pick)))
		}
	}
	return issues
}

func checkRule(field schema.Field, value response.Value) []Issue {
	rule := field.Validation
	if rule == nil {
		return nil
	}
	spec, ok := schema.LookupKind(field.Kind)
	if !ok {
		return nil
	}

	var issues []Issue
	switch {
	case spec.Numeric:
		num, ok := numericValue(value)
		if !ok {
			break
		}
		if rule.Min != nil && num < *rule.Min {
			issues = append(issues, issue(field, RuleMin,
				fmt.Sprintf("must be at least %v", *rule.Min)))
		}
		if rule.Max != nil && num > *rule.Max {
			issues = append(issues, issue(field, RuleMax,
				fmt.Sprintf("must be at most %v", *rule.Max)))
		}
	case spec.StringLike:
		text, ok := value.Text()
		if !ok {
			break
		}
		length := float64(utf8.RuneCountInString(text))
		if rule.Min != nil && length < *rule.Min {
			issues = append(issues, issue(field, RuleMin,
				fmt.Sprintf("must be at least %v characters", *rule.Min)))
		}
		if rule.Max != nil && length > *rule.Max {
			issues = append(issues, issue(field, RuleMax,
				fmt.Sprintf("must be at most %v characters", *rule.Max)))
		}
		if rule.Pattern != "" {
			re, err := regexp.Compile(rule.Pattern)
			if err != nil {
				issues = append(issues, Issue{
					FieldID: field.ID,
					Rule:    RuleSchema,
					Message: fmt.Sprintf("field %q has an invalid pattern: %v", field.ID, err),
				})
				break
			}
			if !re.MatchString(text) {
				issues = append(issues, issue(field, RulePattern, "does not match the expected format"))
			}
		}
	}
	return issues
}

func numericValue(value response.Value) (float64, bool) {
	if num, ok := value.Float(); ok {
		return num, true
	}
	// Numeric inputs arriving over HTTP forms are strings.
	text, ok := value.Text()
	if !ok {
		return 0, false
	}
	var num float64
	if _, err := fmt.Sscanf(text, "%g", &num); err != nil {
		return 0, false
	}
	return num, true
}

func issue(field schema.Field, rule, fallback string) Issue {
	message := fallback
	if field.Validation != nil && field.Validation.Message != "" {
		message = field.Validation.Message
	}
	return Issue{FieldID: field.ID, Rule: rule, Message: message}
}
