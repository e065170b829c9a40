package delivery

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-portfolio/pkg/contact"
)

// Multi fans a submission out to several deliverers in order. Every target is
// attempted; the joined errors are returned so one broken target does not
// hide the others.
type Multi []contact.Deliverer

// Deliver implements contact.Deliverer.
func (m Multi) Deliver(ctx context.Context, submission contact.Submission) error {
	var errs []error
	for idx, target := range m {
		if target == nil {
			continue
		}
		if err := target.Deliver(ctx, submission); err != nil {
			errs = append(errs, fmt.Errorf("delivery: target %d: %w", idx, err))
		}
	}
	return errors.Join(errs...)
}
