package contact

// Values is an immutable copy of the form fields.
type Values struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Get returns the value of field, or "" for unknown fields.
func (v Values) Get(field Field) string {
	switch field {
	case FieldName:
		return v.Name
	case FieldEmail:
		return v.Email
	case FieldMessage:
		return v.Message
	default:
		return ""
	}
}

// IsZero reports whether every field is empty.
func (v Values) IsZero() bool {
	return v == Values{}
}

// State holds the live value of each field. Every field always holds the last
// value written to it, or "" after Reset.
type State struct {
	values Values
}

// NewState seeds the state with prefilled values (for example, values restored
// from a visitor session).
func NewState(prefill Values) *State {
	return &State{values: prefill}
}

// Get returns the current value of field.
func (s *State) Get(field Field) string {
	if s == nil {
		return ""
	}
	return s.values.Get(field)
}

// Set replaces the value of field. No validation happens here; any string,
// including the empty string, is stored as given.
func (s *State) Set(field Field, value string) error {
	if s == nil {
		return ErrStateNil
	}
	switch field {
	case FieldName:
		s.values.Name = value
	case FieldEmail:
		s.values.Email = value
	case FieldMessage:
		s.values.Message = value
	default:
		return ErrUnknownField
	}
	return nil
}

// Snapshot returns a copy of the current values.
func (s *State) Snapshot() Values {
	if s == nil {
		return Values{}
	}
	return s.values
}

// Reset clears every field at once.
func (s *State) Reset() {
	if s == nil {
		return
	}
	s.values = Values{}
}

// IsZero reports whether every field is empty.
func (s *State) IsZero() bool {
	return s.Snapshot().IsZero()
}
