// Package store persists finished session summaries to DuckDB. The
// engine never imports it; the CLI hands the finalized summary across.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"

	"cfast/internal/engine"
)

// schemaDDL holds the DuckDB schema definition.
//
//go:embed schema.sql
var schemaDDL string

// Open opens (or creates) the history database and applies the schema.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		return nil, errors.New("store: path is required")
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema applies the schema DDL to the provided connection.
func EnsureSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("store: db is nil")
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// SessionRow is one persisted session summary.
type SessionRow struct {
	ID          string
	Domain      string
	Total       int
	Correct     int
	Incorrect   int
	Timeouts    int
	Accuracy    float64
	MeanElapsed time.Duration
	Throughput  float64
	Elapsed     time.Duration
	CreatedAt   time.Time
}

// SaveSession writes a summary and its ordered per-question events in
// one transaction.
func SaveSession(ctx context.Context, db *sql.DB, id uuid.UUID, summary engine.Summary, records []engine.Record) error {
	if db == nil {
		return errors.New("store: db is nil")
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (
			session_id, domain, total, correct, incorrect, timeouts,
			accuracy, mean_elapsed_ms, throughput_per_min, elapsed_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(),
		string(summary.Domain),
		summary.Total,
		summary.Correct,
		summary.Incorrect,
		summary.Timeouts,
		summary.Accuracy,
		summary.MeanElapsed.Milliseconds(),
		summary.Throughput,
		summary.Elapsed.Milliseconds(),
	); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	for seq, record := range records {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO session_events (
				session_id, seq, topic, prompt, expected, response,
				reason, correct, elapsed_ms
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id.String(),
			seq,
			string(record.Spec.Topic),
			record.Spec.Prompt,
			record.Spec.Expected.String(),
			record.Answer.Text,
			string(record.Verdict.Reason),
			record.Verdict.Correct,
			record.Verdict.Elapsed.Milliseconds(),
		); err != nil {
			return fmt.Errorf("insert event %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// ListSessions returns the most recent session summaries, newest first.
func ListSessions(ctx context.Context, db *sql.DB, limit int) ([]SessionRow, error) {
	if db == nil {
		return nil, errors.New("store: db is nil")
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.QueryContext(ctx,
		`SELECT session_id, domain, total, correct, incorrect, timeouts,
			accuracy, mean_elapsed_ms, throughput_per_min, elapsed_ms, created_at
		 FROM sessions
		 ORDER BY created_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRow
	for rows.Next() {
		var row SessionRow
		var meanMs, elapsedMs int64
		if err := rows.Scan(
			&row.ID, &row.Domain, &row.Total, &row.Correct, &row.Incorrect,
			&row.Timeouts, &row.Accuracy, &meanMs, &row.Throughput,
			&elapsedMs, &row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		row.MeanElapsed = time.Duration(meanMs) * time.Millisecond
		row.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return out, nil
}
