package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/minjae-ko/siganpyo/internal/lecture"
)

// SnapshotStore keeps the most recently fetched catalog in a local
// SQLite database so the app can open with the previous catalog when the
// network is down. Timetables themselves are never persisted.
type SnapshotStore struct {
	db *sql.DB
}

// OpenSnapshot opens (or creates) the snapshot database and runs
// migrations.
func OpenSnapshot(path string) (*SnapshotStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to snapshot database: %w", err)
	}

	s := &SnapshotStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

func (s *SnapshotStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS lectures (
			resource   TEXT NOT NULL,
			id         TEXT NOT NULL,
			title      TEXT NOT NULL,
			grade      INTEGER NOT NULL,
			credits    TEXT NOT NULL,
			major      TEXT NOT NULL,
			schedule   TEXT NOT NULL,
			position   INTEGER NOT NULL,
			PRIMARY KEY (resource, id)
		);
		CREATE TABLE IF NOT EXISTS snapshots (
			resource   TEXT PRIMARY KEY,
			fetched_at TEXT NOT NULL
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Save replaces the stored snapshot for a resource with the given
// lecture list, preserving catalog order.
func (s *SnapshotStore) Save(ctx context.Context, resource string, lectures []*lecture.Lecture) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning snapshot transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM lectures WHERE resource = ?`, resource); err != nil {
		return fmt.Errorf("clearing old snapshot: %w", err)
	}

	insert := `
		INSERT INTO lectures (resource, id, title, grade, credits, major, schedule, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, lec := range lectures {
		if lec == nil {
			continue
		}
		if _, err := tx.ExecContext(ctx, insert,
			resource, lec.ID, lec.Title, lec.Grade, lec.Credits, lec.Major, lec.Schedule, i,
		); err != nil {
			return fmt.Errorf("inserting lecture %q: %w", lec.ID, err)
		}
	}

	stamp := `
		INSERT INTO snapshots (resource, fetched_at) VALUES (?, ?)
		ON CONFLICT(resource) DO UPDATE SET fetched_at = excluded.fetched_at
	`
	if _, err := tx.ExecContext(ctx, stamp, resource, time.Now().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("stamping snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// Load returns the stored lecture list for a resource in catalog order.
// A missing snapshot yields an empty list, not an error.
func (s *SnapshotStore) Load(ctx context.Context, resource string) ([]*lecture.Lecture, error) {
	query := `
		SELECT id, title, grade, credits, major, schedule
		FROM lectures
		WHERE resource = ?
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query, resource)
	if err != nil {
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var lectures []*lecture.Lecture
	for rows.Next() {
		var lec lecture.Lecture
		if err := rows.Scan(&lec.ID, &lec.Title, &lec.Grade, &lec.Credits, &lec.Major, &lec.Schedule); err != nil {
			return nil, fmt.Errorf("scanning lecture: %w", err)
		}
		lectures = append(lectures, &lec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	return lectures, nil
}

// FetchedAt returns when the snapshot for a resource was taken, or a
// zero time if no snapshot exists.
func (s *SnapshotStore) FetchedAt(ctx context.Context, resource string) (time.Time, error) {
	var stamp string
	err := s.db.QueryRowContext(ctx, `SELECT fetched_at FROM snapshots WHERE resource = ?`, resource).Scan(&stamp)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("querying snapshot stamp: %w", err)
	}

	t, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing snapshot stamp: %w", err)
	}
	return t, nil
}

// Close releases the underlying database handle.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
