// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists per-document batch outcomes in a SQLite database
// so past normalize and compile runs can be queried and exported.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/lectern/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "lectern.db"

	defaultMaxResults = 50
)

// Store manages the run-history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the history database at dir/index/lectern.db,
// creating the schema if needed.
func Open(cfg types.HistoryConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.Dir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			stage TEXT NOT NULL,
			doc_path TEXT NOT NULL,
			course TEXT,
			status TEXT NOT NULL,
			detail TEXT,
			started_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_stage ON runs(stage)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_course ON runs(course)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one run record. It satisfies normalize.Recorder.
func (s *Store) Record(ctx context.Context, rec types.RunRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (stage, doc_path, course, status, detail, started_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(rec.Stage), rec.DocPath, rec.Course, string(rec.Status), rec.Detail,
		rec.StartedAt.UTC().Format(time.RFC3339Nano), rec.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("inserting run record: %w", err)
	}
	return nil
}

// Filter narrows a Recent query. Zero values mean no filtering.
type Filter struct {
	Stage      types.Stage
	Course     string
	FailedOnly bool
	Limit      int
}

// Recent returns run records newest first, narrowed by the filter. The limit
// defaults to the store's max results.
func (s *Store) Recent(ctx context.Context, f Filter) ([]types.RunRecord, error) {
	query := `SELECT stage, doc_path, course, status, detail, started_at, duration_ms FROM runs`
	var conds []string
	var args []any

	if f.Stage != "" {
		conds = append(conds, "stage = ?")
		args = append(args, string(f.Stage))
	}
	if f.Course != "" {
		conds = append(conds, "course = ?")
		args = append(args, f.Course)
	}
	if f.FailedOnly {
		conds = append(conds, "status = ?")
		args = append(args, string(types.StatusFailed))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}

	limit := f.Limit
	if limit <= 0 {
		limit = s.maxResults
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var records []types.RunRecord
	for rows.Next() {
		var rec types.RunRecord
		var stage, status, startedAt string
		var durationMS int64
		if err := rows.Scan(&stage, &rec.DocPath, &rec.Course, &status, &rec.Detail, &startedAt, &durationMS); err != nil {
			return nil, fmt.Errorf("scanning run record: %w", err)
		}
		rec.Stage = types.Stage(stage)
		rec.Status = types.RunStatus(status)
		if ts, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			rec.StartedAt = ts
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		records = append(records, rec)
	}
	return records, rows.Err()
}
