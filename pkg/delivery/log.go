package delivery

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/pkg/contact"
)

// Log records each submission as a log line and always succeeds. The message
// body is never logged, only its length.
type Log struct {
	logger *zap.Logger
}

// NewLog returns a Log deliverer. A nil logger yields a no-op deliverer.
func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger}
}

// Deliver implements contact.Deliverer.
func (l *Log) Deliver(_ context.Context, submission contact.Submission) error {
	l.logger.Info("contact message received",
		zap.String("submission_id", submission.ID),
		zap.String("name", submission.Name),
		zap.String("email", logging.RedactEmail(submission.Email)),
		zap.Int("message_length", len(submission.Message)),
		zap.Time("submitted_at", submission.SubmittedAt),
	)
	return nil
}
