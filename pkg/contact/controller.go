package contact

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Controller owns one contact form: its State, the precondition check and the
// Editing -> Submitting -> Acknowledged -> Editing lifecycle.
type Controller struct {
	state        *State
	phase        Phase
	deliverer    Deliverer
	logger       *zap.Logger
	now          func() time.Time
	newID        func() string
	validate     ValidateOptions
	ack          string
	onTransition func(from, to Phase)
	// pending is the last submission whose delivery failed.
	pending *Submission
}

// New constructs a Controller in the Editing phase with empty fields.
func New(options ...Option) *Controller {
	c := &Controller{
		state:     NewState(Values{}),
		phase:     PhaseEditing,
		deliverer: acknowledgeOnly{},
		logger:    zap.NewNop(),
		now:       time.Now,
		newID:     newSubmissionID,
		ack:       DefaultAcknowledgment,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// UpdateField stores value in field, replacing what was there. It never
// validates; the only error is an unknown field.
func (c *Controller) UpdateField(field Field, value string) error {
	if !field.valid() {
		return ErrUnknownField
	}
	if c.pending != nil && c.state.Get(field) != value {
		c.pending = nil
	}
	return c.state.Set(field, value)
}

// Value returns the current value of field, which is what the rendered input
// must display.
func (c *Controller) Value(field Field) string {
	return c.state.Get(field)
}

// Values returns a snapshot of every field.
func (c *Controller) Values() Values {
	return c.state.Snapshot()
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Pending returns the submission left over from a failed delivery. Submitting
// the same values again reuses it.
func (c *Controller) Pending() (Submission, bool) {
	if c.pending == nil {
		return Submission{}, false
	}
	return *c.pending, true
}

// Submit checks that every field is filled in and, if so, hands a snapshot to
// the deliverer. On success the form is reset and the acknowledgment returned.
// A rejected or failed submit leaves the state untouched.
func (c *Controller) Submit(ctx context.Context) Outcome {
	if c.phase == PhaseSubmitting {
		return Outcome{
			Status:  StatusRejected,
			Message: InFlightMessage,
			Err:     ErrSubmissionInFlight,
		}
	}

	values := c.state.Snapshot()
	if errs := Validate(values, c.validate); errs != nil {
		c.logger.Debug("contact submission rejected",
			zap.Int("missing", len(errs)),
		)
		return Outcome{Status: StatusRejected, Fields: errs}
	}

	submission := c.nextSubmission(values)

	c.transition(PhaseSubmitting)
	err := ctx.Err()
	if err == nil {
		err = c.deliverer.Deliver(ctx, submission)
	}
	if err != nil {
		c.transition(PhaseEditing)
		c.pending = &submission
		c.logger.Warn("contact delivery failed",
			zap.String("submission_id", submission.ID),
			zap.Error(err),
		)
		return Outcome{
			Status:     StatusFailed,
			Message:    DefaultFailureMessage,
			Submission: submission,
			Err:        err,
		}
	}

	c.transition(PhaseAcknowledged)
	c.pending = nil
	c.state.Reset()
	c.logger.Info("contact submission acknowledged",
		zap.String("submission_id", submission.ID),
	)
	c.transition(PhaseEditing)

	return Outcome{
		Status:     StatusAcknowledged,
		Message:    c.ack,
		Submission: submission,
	}
}

func (c *Controller) nextSubmission(values Values) Submission {
	if c.pending != nil && c.pending.Values() == values {
		return *c.pending
	}
	c.pending = nil
	return Submission{
		ID:          c.newID(),
		Name:        values.Name,
		Email:       values.Email,
		Message:     values.Message,
		SubmittedAt: c.now().UTC(),
	}
}

func (c *Controller) transition(to Phase) {
	from := c.phase
	c.phase = to
	if c.onTransition != nil && from != to {
		c.onTransition(from, to)
	}
}
