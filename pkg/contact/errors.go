package contact

import "errors"

var (
	// ErrUnknownField is returned when a caller addresses a field the contact
	// form does not have.
	ErrUnknownField = errors.New("contact: unknown field")
	// ErrSubmissionInFlight rejects a Submit issued while a previous one is
	// still waiting on its deliverer.
	ErrSubmissionInFlight = errors.New("contact: submission already in flight")
	// ErrStateNil guards calls on a nil *State.
	ErrStateNil = errors.New("contact: state is nil")
)
