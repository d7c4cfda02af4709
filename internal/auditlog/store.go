// Package auditlog keeps a local record of accepted submissions. The chat
// channel is the primary delivery target; the audit table is the operator's
// own trail when chat history is unavailable or disputed.
package auditlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/types"
)

// Entry is one accepted submission as stored.
type Entry struct {
	ID          string
	StudentName string
	Category    string
	Email       string
	Reclamation string
	ClientID    string
	CreatedAt   time.Time
}

// Store persists accepted submissions in SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the audit database at path and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate audit db: %w", err)
	}

	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}

	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS submissions (
  id           TEXT PRIMARY KEY,
  student_name TEXT NOT NULL,
  category     TEXT NOT NULL,
  email        TEXT NOT NULL DEFAULT '',
  reclamation  TEXT NOT NULL,
  client_id    TEXT NOT NULL,
  created_at   INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submissions_created_at ON submissions(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_submissions_student    ON submissions(student_name);
`)
	return err
}

// Record stores one accepted submission.
func (s *Store) Record(ctx context.Context, rec types.Record) error {
	createdAt := rec.ReceivedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO submissions(id, student_name, category, email, reclamation, client_id, created_at)
VALUES(?, ?, ?, ?, ?, ?, ?)
`, rec.ID, rec.Submission.StudentName, rec.Submission.Category, rec.Submission.Email,
		rec.Submission.Reclamation, rec.ClientID, createdAt.UnixMilli())
	return err
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, student_name, category, email, reclamation, client_id, created_at
FROM submissions
ORDER BY created_at DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.StudentName, &e.Category, &e.Email,
			&e.Reclamation, &e.ClientID, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt = time.UnixMilli(createdAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

// CountSince reports how many submissions a student made since the cutoff.
func (s *Store) CountSince(ctx context.Context, studentName string, since time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM submissions WHERE student_name = ? AND created_at >= ?
`, studentName, since.UnixMilli()).Scan(&n)
	return n, err
}
