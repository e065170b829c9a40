package delivery

import (
	"context"
	"sync"

	"github.com/goliatone/go-portfolio/pkg/contact"
)

// Memory keeps every submission in memory. It is safe for concurrent use and
// is mostly useful in tests and local previews.
type Memory struct {
	mu          sync.Mutex
	submissions []contact.Submission
	err         error
}

// NewMemory returns an empty Memory deliverer.
func NewMemory() *Memory {
	return &Memory{}
}

// Deliver implements contact.Deliverer. While a failure is configured with
// FailWith the submission is not recorded.
func (m *Memory) Deliver(_ context.Context, submission contact.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.submissions = append(m.submissions, submission)
	return nil
}

// FailWith makes subsequent deliveries return err; nil restores success.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Submissions returns a copy of the recorded submissions.
func (m *Memory) Submissions() []contact.Submission {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]contact.Submission(nil), m.submissions...)
}
