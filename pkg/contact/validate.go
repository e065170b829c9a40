package contact

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// FieldErrors maps a field to the messages explaining why it was rejected.
type FieldErrors map[Field][]string

// Add appends a message for field.
func (e FieldErrors) Add(field Field, message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	e[field] = append(e[field], message)
}

// Has reports whether field has at least one message.
func (e FieldErrors) Has(field Field) bool {
	return len(e[field]) > 0
}

// ByName converts the errors into the path keyed map used by renderers.
func (e FieldErrors) ByName() map[string][]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string][]string, len(e))
	for field, messages := range e {
		out[string(field)] = append([]string(nil), messages...)
	}
	return out
}

// Fields returns the fields with errors, in form display order.
func (e FieldErrors) Fields() []Field {
	if len(e) == 0 {
		return nil
	}
	out := make([]Field, 0, len(e))
	for _, field := range Fields() {
		if e.Has(field) {
			out = append(out, field)
		}
	}
	return out
}

// ValidateOptions tune the precondition check.
type ValidateOptions struct {
	// CheckEmailFormat additionally rejects email values that are not a bare
	// RFC 5322 address, matching what browsers enforce for type="email".
	CheckEmailFormat bool
	// MaxMessageLength caps the message, counted in characters. Zero means
	// no limit.
	MaxMessageLength int
}

// Validate is the precondition Submit enforces: every field must be
// non-empty. It returns nil when the values may be submitted.
func Validate(values Values, opts ValidateOptions) FieldErrors {
	errs := FieldErrors{}
	for _, field := range Fields() {
		if values.Get(field) == "" {
			errs.Add(field, field.Label()+" is required")
		}
	}
	if opts.CheckEmailFormat && values.Email != "" && !validEmail(values.Email) {
		errs.Add(FieldEmail, "Email must be a valid email address")
	}
	if opts.MaxMessageLength > 0 && utf8.RuneCountInString(values.Message) > opts.MaxMessageLength {
		errs.Add(FieldMessage, fmt.Sprintf("Message must be at most %d characters", opts.MaxMessageLength))
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validEmail(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return false
	}
	// Reject display-name forms such as "Ann <a@x.com>".
	return addr.Name == "" && addr.Address == trimmed
}
