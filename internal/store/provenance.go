package store

import (
	"database/sql"
	"fmt"
	"time"
)

// #region log-event
// LogEvent writes a provenance entry. Events record the operational
// history of a run: catalog import, solve start/finish, convergence
// outcome, persistence.
func (s *Store) LogEvent(entry ProvenanceEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO provenance_log (run_id, event, detail, created_at) VALUES (?, ?, ?, ?)`,
		nullIfEmpty(entry.RunID),
		entry.Event,
		nullIfEmpty(entry.Detail),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log event: %w", err)
	}
	return nil
}

// #endregion log-event

// #region run-events
// RunEvents returns the provenance entries for one run, oldest first.
func (s *Store) RunEvents(runID string) ([]ProvenanceEntry, error) {
	rows, err := s.db.Query(
		`SELECT run_id, event, detail, created_at FROM provenance_log
		 WHERE run_id = ? ORDER BY id ASC`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("run events: %w", err)
	}
	defer rows.Close()

	var entries []ProvenanceEntry
	for rows.Next() {
		var e ProvenanceEntry
		var createdStr string
		var runID, detail sql.NullString
		if err := rows.Scan(&runID, &e.Event, &detail, &createdStr); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.RunID = runID.String
		e.Detail = detail.String
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// #endregion run-events
