package delivery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/goliatone/go-portfolio/pkg/contact"
)

const outboxSchema = `
CREATE TABLE IF NOT EXISTS contact_outbox (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	email        TEXT NOT NULL,
	message      TEXT NOT NULL,
	submitted_at TEXT NOT NULL,
	created_at   TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
)`

// SQLiteOutbox appends submissions to a local SQLite table for a separate
// process (mailer, CRM sync) to drain. Inserts are keyed by submission ID, so
// delivering the same submission twice stores it once.
type SQLiteOutbox struct {
	db *sql.DB
}

// OpenSQLiteOutbox opens (and creates if needed) the outbox database at path.
func OpenSQLiteOutbox(ctx context.Context, path string) (*SQLiteOutbox, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("delivery: sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("delivery: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, outboxSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("delivery: create outbox table: %w", err)
	}
	return &SQLiteOutbox{db: db}, nil
}

// Deliver implements contact.Deliverer.
func (o *SQLiteOutbox) Deliver(ctx context.Context, submission contact.Submission) error {
	_, err := o.db.ExecContext(ctx,
		`INSERT INTO contact_outbox (id, name, email, message, submitted_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		submission.ID,
		submission.Name,
		submission.Email,
		submission.Message,
		submission.SubmittedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("delivery: insert outbox row: %w", err)
	}
	return nil
}

// Pending returns stored submissions oldest first, up to limit (0 = all).
func (o *SQLiteOutbox) Pending(ctx context.Context, limit int) ([]contact.Submission, error) {
	query := `SELECT id, name, email, message, submitted_at FROM contact_outbox ORDER BY submitted_at, id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := o.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("delivery: query outbox: %w", err)
	}
	defer rows.Close()

	var out []contact.Submission
	for rows.Next() {
		var (
			sub         contact.Submission
			submittedAt string
		)
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Email, &sub.Message, &submittedAt); err != nil {
			return nil, fmt.Errorf("delivery: scan outbox row: %w", err)
		}
		sub.SubmittedAt, err = time.Parse(time.RFC3339Nano, submittedAt)
		if err != nil {
			return nil, fmt.Errorf("delivery: parse submitted_at %q: %w", submittedAt, err)
		}
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("delivery: iterate outbox: %w", err)
	}
	return out, nil
}

// Close releases the database handle.
func (o *SQLiteOutbox) Close() error {
	if o == nil || o.db == nil {
		return nil
	}
	return o.db.Close()
}
