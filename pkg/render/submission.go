package render

import (
	"sort"
	"strings"
)

// HiddenField represents a hidden input emitted inside the contact form.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name, value string) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: value,
	}
}

// CSRFFieldName is the input name the server expects the token under.
const CSRFFieldName = "_csrf"

// CSRFToken constructs the hidden field carrying the session CSRF token.
func CSRFToken(token string) HiddenField {
	return Hidden(CSRFFieldName, token)
}

// SortedHiddenFields drops unnamed fields, lets later fields win on name
// collisions and sorts the result for deterministic rendering.
func SortedHiddenFields(fields ...HiddenField) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	clean := make(map[string]string, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		clean[name] = field.Value
	}
	if len(clean) == 0 {
		return nil
	}

	names := make([]string, 0, len(clean))
	for name := range clean {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: name, Value: clean[name]})
	}
	return result
}
