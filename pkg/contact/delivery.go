package contact

import (
	"context"
	"time"
)

// Submission is the snapshot handed to a Deliverer for one accepted submit.
// ID is unique per accepted submission so deliverers can drop duplicates on
// retry.
type Submission struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Values returns the form values carried by the submission.
func (s Submission) Values() Values {
	return Values{Name: s.Name, Email: s.Email, Message: s.Message}
}

// Deliverer transmits accepted messages (email, webhook, outbox...).
type Deliverer interface {
	Deliver(ctx context.Context, submission Submission) error
}

// DelivererFunc adapts a function into a Deliverer.
type DelivererFunc func(ctx context.Context, submission Submission) error

// Deliver calls fn.
func (fn DelivererFunc) Deliver(ctx context.Context, submission Submission) error {
	return fn(ctx, submission)
}

// acknowledgeOnly is the default Deliverer: it transmits nothing and always
// succeeds, so Submit only acknowledges and resets.
type acknowledgeOnly struct{}

func (acknowledgeOnly) Deliver(context.Context, Submission) error { return nil }
