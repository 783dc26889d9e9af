package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jonathan/ats-scorer/internal/types"
)

// SQLiteStore keeps history in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS analyses (
	id               TEXT PRIMARY KEY,
	created_at_ns    INTEGER NOT NULL,
	owner            TEXT NOT NULL DEFAULT '',
	job_title        TEXT NOT NULL DEFAULT '',
	company          TEXT NOT NULL DEFAULT '',
	overall_score    INTEGER NOT NULL,
	recruiter_status TEXT NOT NULL,
	result           TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS analyses_created_at_idx ON analyses (created_at_ns DESC);`

// OpenSQLite opens or creates the database at path, creating parent
// directories as needed.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite history path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create history directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	// single writer
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save inserts or replaces an analysis.
func (s *SQLiteStore) Save(ctx context.Context, a *types.Analysis) error {
	row, err := newRecord(a)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO analyses (id, created_at_ns, owner, job_title, company, overall_score, recruiter_status, result)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		row.summary.ID, row.summary.CreatedAt.UnixNano(), a.Owner, row.summary.JobTitle, row.summary.Company,
		row.summary.Overall, string(row.summary.Status), string(row.result),
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis %s: %w", a.ID, err)
	}
	return nil
}

// List returns up to limit summaries, newest first.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]types.AnalysisSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at_ns, job_title, company, overall_score, recruiter_status
		 FROM analyses ORDER BY created_at_ns DESC, id LIMIT ?`,
		listLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	out := []types.AnalysisSummary{}
	for rows.Next() {
		var (
			sum    types.AnalysisSummary
			nanos  int64
			status string
		)
		if err := rows.Scan(&sum.ID, &nanos, &sum.JobTitle, &sum.Company, &sum.Overall, &status); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		sum.CreatedAt = time.Unix(0, nanos).UTC()
		sum.Status = types.RecruiterStatus(status)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return out, nil
}

// Get returns the analysis with id or ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*types.Analysis, error) {
	var content string
	err := s.db.QueryRowContext(ctx, `SELECT result FROM analyses WHERE id = ?`, id).Scan(&content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get analysis %s: %w", id, err)
	}
	return decodeAnalysis([]byte(content))
}

// Delete removes the analysis with id or returns ErrNotFound.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete analysis %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
