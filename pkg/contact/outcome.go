package contact

// Status classifies the result of a Submit call.
type Status int

const (
	// StatusRejected means the precondition failed; nothing was delivered and
	// the state is unchanged.
	StatusRejected Status = iota + 1
	// StatusAcknowledged means the message was delivered and the form reset.
	StatusAcknowledged
	// StatusFailed means the deliverer returned an error; the state is kept so
	// the visitor can retry.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusRejected:
		return "rejected"
	case StatusAcknowledged:
		return "acknowledged"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// DefaultAcknowledgment is shown to the visitor after a successful submit.
const DefaultAcknowledgment = "Thank you for your message! I'll get back to you shortly."

// DefaultFailureMessage is shown when the deliverer fails.
const DefaultFailureMessage = "Sorry, your message could not be sent. Please try again."

// InFlightMessage is shown when a submit arrives while another is still being
// delivered.
const InFlightMessage = "Your message is already being sent. Please wait a moment."

// Outcome is the transient result of Submit. It is surfaced to the visitor
// and then discarded; it is never part of State.
type Outcome struct {
	Status Status
	// Message is the form-level text shown to the visitor.
	Message string
	// Fields lists per-field precondition failures (StatusRejected only).
	Fields FieldErrors
	// Submission is the snapshot handed to the deliverer (zero for rejected).
	Submission Submission
	// Err carries the deliverer error for StatusFailed, or
	// ErrSubmissionInFlight for a re-entrant submit.
	Err error
}

// Acknowledged reports whether the message was accepted and the form reset.
func (o Outcome) Acknowledged() bool {
	return o.Status == StatusAcknowledged
}

// Phase is the controller's position in the submission lifecycle.
type Phase int

const (
	PhaseEditing Phase = iota
	PhaseSubmitting
	PhaseAcknowledged
)

func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "editing"
	case PhaseSubmitting:
		return "submitting"
	case PhaseAcknowledged:
		return "acknowledged"
	default:
		return "unknown"
	}
}
