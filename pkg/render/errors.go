package render

import (
	"strings"

	"github.com/goliatone/go-portfolio/pkg/contact"
)

// ErrorMapping splits validation feedback into field-level and form-level
// messages keyed by contact field name.
type ErrorMapping struct {
	Fields map[string][]string `json:"fields,omitempty"`
	Form   []string            `json:"form,omitempty"`
}

// MergeFormErrors concatenates and normalises form-level error slices,
// trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapOutcome converts a submission outcome into renderer feedback. Rejected
// outcomes map to field errors; failed outcomes to a form-level message.
// Acknowledged outcomes produce no errors.
func MapOutcome(outcome contact.Outcome) ErrorMapping {
	switch outcome.Status {
	case contact.StatusRejected:
		mapping := MapErrorPayload(outcome.Fields.ByName())
		if outcome.Message != "" {
			mapping.Form = MergeFormErrors(mapping.Form, outcome.Message)
		}
		return mapping
	case contact.StatusFailed:
		return ErrorMapping{Form: MergeFormErrors(nil, outcome.Message)}
	default:
		return ErrorMapping{}
	}
}

// MapErrorPayload normalises field errors keyed by contact field name, as
// produced by contact.FieldErrors.ByName. Keys that are not a contact field
// become form-level errors so messages are not lost.
func MapErrorPayload(payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	for key, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		field, err := contact.ParseField(key)
		if err != nil {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[string(field)] = append(mapping.Fields[string(field)], normalized...)
	}
	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
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
