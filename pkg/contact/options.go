package contact

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Option configures a Controller.
type Option func(*Controller)

// WithDeliverer sets the collaborator that receives accepted submissions.
// Without one, Submit acknowledges and resets but transmits nothing.
func WithDeliverer(deliverer Deliverer) Option {
	return func(c *Controller) {
		if deliverer != nil {
			c.deliverer = deliverer
		}
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the clock used to stamp submissions.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIDGenerator overrides how submission IDs are produced.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// WithEmailFormatCheck makes Submit reject malformed email addresses in
// addition to empty fields.
func WithEmailFormatCheck(enabled bool) Option {
	return func(c *Controller) {
		c.validate.CheckEmailFormat = enabled
	}
}

// WithMaxMessageLength makes Submit reject messages longer than n characters.
// Zero or a negative n disables the limit.
func WithMaxMessageLength(n int) Option {
	return func(c *Controller) {
		if n < 0 {
			n = 0
		}
		c.validate.MaxMessageLength = n
	}
}

// WithTransitionHook registers a callback invoked on every phase change.
func WithTransitionHook(fn func(from, to Phase)) Option {
	return func(c *Controller) {
		c.onTransition = fn
	}
}

// WithAcknowledgment overrides the text shown after a successful submit.
func WithAcknowledgment(message string) Option {
	return func(c *Controller) {
		if trimmed := strings.TrimSpace(message); trimmed != "" {
			c.ack = trimmed
		}
	}
}

// WithInitialValues seeds the form, typically from a visitor session.
func WithInitialValues(values Values) Option {
	return func(c *Controller) {
		c.state = NewState(values)
	}
}

// WithPendingSubmission restores a submission whose delivery failed. A retry
// with unchanged values is delivered under the same ID and timestamp so
// deliverers can drop duplicates.
func WithPendingSubmission(submission Submission) Option {
	return func(c *Controller) {
		if submission.ID == "" {
			return
		}
		pending := submission
		c.pending = &pending
	}
}

func newSubmissionID() string {
	return uuid.NewString()
}
