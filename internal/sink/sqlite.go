package sink

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS milestones (
	id                   INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id               TEXT NOT NULL,
	decks_processed      INTEGER NOT NULL,
	max_similarity_score INTEGER NOT NULL,
	created_at           TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS milestones_run ON milestones(run_id, decks_processed);
`

// SQLite writes rows to the milestones table of a SQLite database, one insert per row.
// Every row of a run is tagged with the same random run ID.
type SQLite struct {
	path  string
	runID string
	db    *sql.DB
}

var _ Sink = (*SQLite)(nil)

// NewSQLite opens (or creates) the database at path and runs migrations.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open db %q: %w", ErrResource, path, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: pragma: %w", ErrResource, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: migrate: %w", ErrResource, err)
	}
	return &SQLite{path: path, runID: uuid.New().String(), db: db}, nil
}

// RunID identifies the rows written by this sink.
func (s *SQLite) RunID() string {
	return s.runID
}

// DB returns the underlying *sql.DB.
func (s *SQLite) DB() *sql.DB {
	return s.db
}

// WriteRow implements Sink.
func (s *SQLite) WriteRow(row Row) error {
	_, err := s.db.Exec(
		`INSERT INTO milestones (run_id, decks_processed, max_similarity_score, created_at)
		 VALUES (?, ?, ?, ?)`,
		s.runID, row.DecksProcessed, row.MaxSimilarityScore, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("%w: insert milestone %d: %w", ErrResource, row.DecksProcessed, err)
	}
	return nil
}

// Close implements Sink.
func (s *SQLite) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%w: closing %q: %w", ErrResource, s.path, err)
	}
	return nil
}

// Path implements Sink.
func (s *SQLite) Path() string {
	return s.path
}
