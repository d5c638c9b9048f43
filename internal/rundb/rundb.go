// Package rundb persists pipeline run summaries and their residual
// issues to sqlite, so threshold tuning sessions can be compared
// across runs.
package rundb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
}

// NewDB opens (creating if needed) the run database at path and brings
// its schema to the latest version via the embedded migrations.
func NewDB(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	db := &DB{sqlDB}
	if err := db.MigrateUp(Migrations()); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate run database: %w", err)
	}
	return db, nil
}

// Run is one recorded pipeline execution.
type Run struct {
	ID            string    `json:"run_id"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	InputPath     string    `json:"input_path"`
	HullsPath     string    `json:"hulls_path"`
	AnnotatedPath string    `json:"annotated_path"`
	Processed     int       `json:"processed"`
	Skipped       int       `json:"skipped"`
	TinyRemoved   int       `json:"tiny_removed"`
	IssueCount    int       `json:"issue_count"`
}

// IssueRow is one residual multi-part feature of a recorded run.
type IssueRow struct {
	RunID string `json:"run_id"`
	Seq   int    `json:"seq"`
	Name  string `json:"name"`
	Parts int    `json:"parts"`
}

// RecordRun inserts the run and its issues in one transaction. A zero
// run ID is filled with a fresh UUID; the (possibly generated) ID is
// written back to run.
func (db *DB) RecordRun(run *Run, issues []IssueRow) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (
			run_id, started_at, finished_at, input_path, hulls_path,
			annotated_path, processed, skipped, tiny_removed, issue_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.Unix(),
		run.FinishedAt.Unix(),
		run.InputPath,
		run.HullsPath,
		run.AnnotatedPath,
		run.Processed,
		run.Skipped,
		run.TinyRemoved,
		run.IssueCount,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	for i, issue := range issues {
		_, err = tx.Exec(
			`INSERT INTO run_issues (run_id, seq, name, parts) VALUES (?, ?, ?, ?)`,
			run.ID, i+1, issue.Name, issue.Parts,
		)
		if err != nil {
			return fmt.Errorf("failed to record issue %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns all recorded runs, most recent first.
func (db *DB) ListRuns() ([]Run, error) {
	rows, err := db.Query(`
		SELECT run_id, started_at, finished_at, input_path, hulls_path,
			annotated_path, processed, skipped, tiny_removed, issue_count
		FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished int64
		if err := rows.Scan(
			&r.ID, &started, &finished, &r.InputPath, &r.HullsPath,
			&r.AnnotatedPath, &r.Processed, &r.Skipped, &r.TinyRemoved, &r.IssueCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.StartedAt = time.Unix(started, 0).UTC()
		r.FinishedAt = time.Unix(finished, 0).UTC()
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// IssuesForRun returns the issues of one run in sequence order.
func (db *DB) IssuesForRun(runID string) ([]IssueRow, error) {
	rows, err := db.Query(
		`SELECT run_id, seq, name, parts FROM run_issues WHERE run_id = ? ORDER BY seq`,
		runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query issues: %w", err)
	}
	defer rows.Close()

	var issues []IssueRow
	for rows.Next() {
		var i IssueRow
		if err := rows.Scan(&i.RunID, &i.Seq, &i.Name, &i.Parts); err != nil {
			return nil, fmt.Errorf("failed to scan issue: %w", err)
		}
		issues = append(issues, i)
	}
	return issues, rows.Err()
}
