package contact

import (
	"fmt"
	"strings"
)

// Field names one of the three inputs of the contact form.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Fields returns the form fields in display order.
func Fields() []Field {
	return []Field{FieldName, FieldEmail, FieldMessage}
}

// ParseField resolves an input name (as posted by the browser) into a Field.
func ParseField(raw string) (Field, error) {
	switch Field(strings.ToLower(strings.TrimSpace(raw))) {
	case FieldName:
		return FieldName, nil
	case FieldEmail:
		return FieldEmail, nil
	case FieldMessage:
		return FieldMessage, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, raw)
	}
}

// Label is the human readable name used in validation messages.
func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldEmail:
		return "Email"
	case FieldMessage:
		return "Message"
	default:
		return string(f)
	}
}

func (f Field) valid() bool {
	switch f {
	case FieldName, FieldEmail, FieldMessage:
		return true
	default:
		return false
	}
}
