// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// import_log.go records finished import runs in the database for audit
// and debugging purposes. Each entry captures the run's totals, how many
// rows need review and whether its changes were committed.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ImportLogStore handles import run log operations.
type ImportLogStore struct {
	db DBTX
}

// NewImportLogStore creates a new ImportLogStore.
func NewImportLogStore(db DBTX) *ImportLogStore {
	return &ImportLogStore{db: db}
}

// ImportLogEntry represents a single import run.
type ImportLogEntry struct {
	RunID      uuid.UUID
	Strict     bool
	Committed  bool
	Rows       int
	Failures   int
	Totals     json.RawMessage
	StartedAt  time.Time
	FinishedAt *time.Time
}

// Log records an import run. Logging is best-effort: failures are
// reported and swallowed.
func (s *ImportLogStore) Log(e ImportLogEntry) {
	totals := e.Totals
	if len(totals) == 0 {
		totals = json.RawMessage("{}")
	}
	_, err := s.db.Exec(`
		INSERT INTO import_run_log (run_id, strict, committed, rows_read, failures, totals, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (run_id) DO UPDATE SET
			committed = EXCLUDED.committed, rows_read = EXCLUDED.rows_read,
			failures = EXCLUDED.failures, totals = EXCLUDED.totals,
			finished_at = EXCLUDED.finished_at
	`, e.RunID, e.Strict, e.Committed, e.Rows, e.Failures, string(totals), e.StartedAt, e.FinishedAt)
	if err != nil {
		slog.Warn("failed to log import run",
			"run_id", e.RunID,
			"error", err,
		)
		return
	}
	slog.Debug("import run logged", "run_id", e.RunID, "committed", e.Committed)
}

// RecentEntries returns the most recent import runs, newest first.
// Limited to the specified count.
func (s *ImportLogStore) RecentEntries(limit int) ([]ImportLogEntry, error) {
	rows, err := s.db.Query(`
		SELECT run_id, strict, committed, rows_read, failures, totals, started_at, finished_at
		FROM import_run_log
		ORDER BY started_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query import log: %w", err)
	}
	defer rows.Close()

	var entries []ImportLogEntry
	for rows.Next() {
		var (
			e        ImportLogEntry
			totals   string
			finished sql.NullTime
		)
		if err := rows.Scan(&e.RunID, &e.Strict, &e.Committed, &e.Rows, &e.Failures, &totals, &e.StartedAt, &finished); err != nil {
			return nil, fmt.Errorf("scan import log: %w", err)
		}
		e.Totals = json.RawMessage(totals)
		if finished.Valid {
			e.FinishedAt = &finished.Time
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
