// Package db stores analysis history in PostgreSQL, SQLite or memory.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/ats-scorer/internal/types"
)

// DefaultListLimit applies when List is called with a non-positive limit.
const DefaultListLimit = 50

// ErrNotFound is returned when no analysis has the requested id.
var ErrNotFound = errors.New("analysis not found")

// Store persists analyses. List returns the newest first.
type Store interface {
	Save(ctx context.Context, a *types.Analysis) error
	List(ctx context.Context, limit int) ([]types.AnalysisSummary, error)
	Get(ctx context.Context, id string) (*types.Analysis, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// Supported history drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Open returns the store for driver. dsn is a connection URL for postgres and
// a file path for sqlite; memory ignores it.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case DriverPostgres, "postgresql":
		db, err := Connect(ctx, dsn)
		if err != nil {
			return nil, err
		}
		if err := db.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		return db, nil
	case DriverSQLite, "":
		return OpenSQLite(ctx, dsn)
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported history driver %q", driver)
	}
}

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() error {
	if db.pool != nil {
		db.pool.Close()
	}
	return nil
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS analyses (
	id               TEXT PRIMARY KEY,
	created_at       TIMESTAMPTZ NOT NULL,
	owner            TEXT NOT NULL DEFAULT '',
	job_title        TEXT NOT NULL DEFAULT '',
	company          TEXT NOT NULL DEFAULT '',
	overall_score    INTEGER NOT NULL,
	recruiter_status TEXT NOT NULL,
	result           JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS analyses_created_at_idx ON analyses (created_at DESC);`

// EnsureSchema creates the analyses table when it is missing.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Save inserts or replaces an analysis.
func (db *DB) Save(ctx context.Context, a *types.Analysis) error {
	row, err := newRecord(a)
	if err != nil {
		return err
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO analyses (id, created_at, owner, job_title, company, overall_score, recruiter_status, result)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET created_at = $2, owner = $3, job_title = $4, company = $5,
		   overall_score = $6, recruiter_status = $7, result = $8`,
		row.summary.ID, row.summary.CreatedAt, a.Owner, row.summary.JobTitle, row.summary.Company,
		row.summary.Overall, string(row.summary.Status), row.result,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis %s: %w", a.ID, err)
	}
	return nil
}

// List returns up to limit summaries, newest first.
func (db *DB) List(ctx context.Context, limit int) ([]types.AnalysisSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, created_at, job_title, company, overall_score, recruiter_status
		 FROM analyses ORDER BY created_at DESC, id LIMIT $1`,
		listLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	out := []types.AnalysisSummary{}
	for rows.Next() {
		var (
			s      types.AnalysisSummary
			status string
		)
		if err := rows.Scan(&s.ID, &s.CreatedAt, &s.JobTitle, &s.Company, &s.Overall, &status); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		s.Status = types.RecruiterStatus(status)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return out, nil
}

// Get returns the analysis with id or ErrNotFound.
func (db *DB) Get(ctx context.Context, id string) (*types.Analysis, error) {
	var content []byte
	err := db.pool.QueryRow(ctx, `SELECT result FROM analyses WHERE id = $1`, id).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get analysis %s: %w", id, err)
	}
	return decodeAnalysis(content)
}

// Delete removes the analysis with id or returns ErrNotFound.
func (db *DB) Delete(ctx context.Context, id string) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// record is the column form of an analysis shared by the SQL stores.
type record struct {
	summary types.AnalysisSummary
	result  []byte
}

func newRecord(a *types.Analysis) (record, error) {
	if a == nil || a.ID == "" {
		return record{}, errors.New("analysis id is required")
	}
	content, err := json.Marshal(a)
	if err != nil {
		return record{}, fmt.Errorf("failed to marshal analysis: %w", err)
	}
	return record{summary: a.Summary(), result: content}, nil
}

func decodeAnalysis(content []byte) (*types.Analysis, error) {
	var a types.Analysis
	if err := json.Unmarshal(content, &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}
	return &a, nil
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
