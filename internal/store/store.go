package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/campaignctl/influencer-planner/internal/catalog"
	"github.com/campaignctl/influencer-planner/internal/rollout"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS imports (
	import_id   TEXT PRIMARY KEY,
	item_count  INTEGER NOT NULL,
	created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS items (
	import_id       TEXT NOT NULL,
	position        INTEGER NOT NULL,
	username        TEXT NOT NULL,
	cost            REAL NOT NULL,
	likes           REAL NOT NULL,
	comments        REAL NOT NULL,
	saves           REAL NOT NULL,
	engagement_rate REAL,
	niche           TEXT,
	category        TEXT,
	gender          TEXT,
	PRIMARY KEY (import_id, position),
	FOREIGN KEY (import_id) REFERENCES imports(import_id)
);

CREATE TABLE IF NOT EXISTS runs (
	run_id             TEXT PRIMARY KEY,
	strategy           TEXT NOT NULL,
	config_json        TEXT,
	total_reward       REAL NOT NULL,
	total_engagement   REAL NOT NULL,
	total_cost         REAL NOT NULL,
	num_selected       INTEGER NOT NULL,
	diversity_count    INTEGER NOT NULL,
	budget_utilization REAL NOT NULL,
	iterations         INTEGER NOT NULL DEFAULT 0,
	converged          INTEGER NOT NULL DEFAULT 0,
	created_at         TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS selections (
	run_id           TEXT NOT NULL,
	step             INTEGER NOT NULL,
	username         TEXT NOT NULL,
	cost             REAL NOT NULL,
	engagement       REAL NOT NULL,
	reward           REAL NOT NULL,
	remaining_budget REAL NOT NULL,
	cumulative_cost  REAL NOT NULL,
	niche            TEXT,
	category         TEXT,
	gender           TEXT,
	PRIMARY KEY (run_id, step),
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);

CREATE TABLE IF NOT EXISTS provenance_log (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT,
	event       TEXT NOT NULL,
	detail      TEXT,
	created_at  TEXT NOT NULL
);
`

// #endregion schema

// #region store-struct
// Store persists item catalogs, planning runs and their provenance in
// SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages.
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion close

// #region import-items
// ImportItems stores a catalog snapshot and returns its import id. Item
// order is preserved via the position column; position is the action
// identifier the solver uses.
func (s *Store) ImportItems(items []catalog.Item) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO imports (import_id, item_count, created_at) VALUES (?, ?, ?)`,
		id, len(items), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("insert import: %w", err)
	}

	for pos, it := range items {
		var rate interface{}
		if it.HasRate {
			rate = it.EngagementRate
		}
		_, err = tx.Exec(
			`INSERT INTO items (import_id, position, username, cost, likes, comments, saves, engagement_rate, niche, category, gender)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, pos, it.Username, it.Cost, it.Likes, it.Comments, it.Saves,
			rate, nullIfEmpty(it.Niche), nullIfEmpty(it.Category), nullIfEmpty(it.Gender),
		)
		if err != nil {
			return "", fmt.Errorf("insert item %d: %w", pos, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// ListItems loads a catalog snapshot in its original order.
func (s *Store) ListItems(importID string) ([]catalog.Item, error) {
	rows, err := s.db.Query(
		`SELECT username, cost, likes, comments, saves, engagement_rate, niche, category, gender
		 FROM items WHERE import_id = ? ORDER BY position ASC`, importID,
	)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []catalog.Item
	for rows.Next() {
		var it catalog.Item
		var rate sql.NullFloat64
		var niche, category, gender sql.NullString
		if err := rows.Scan(&it.Username, &it.Cost, &it.Likes, &it.Comments, &it.Saves, &rate, &niche, &category, &gender); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if rate.Valid {
			it.EngagementRate = rate.Float64
			it.HasRate = true
		}
		it.Niche = niche.String
		it.Category = category.String
		it.Gender = gender.String
		items = append(items, it)
	}
	return items, rows.Err()
}

// LatestImport returns the most recent import id.
func (s *Store) LatestImport() (string, error) {
	var id string
	err := s.db.QueryRow(
		`SELECT import_id FROM imports ORDER BY created_at DESC LIMIT 1`,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("latest import: %w", err)
	}
	return id, nil
}

// #endregion import-items

// #region save-run
// SaveRun persists one strategy outcome with its trace and returns the
// run id.
func (s *Store) SaveRun(strategy, configJSON string, out rollout.Outcome, iterations int, converged bool) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (run_id, strategy, config_json, total_reward, total_engagement, total_cost,
		                   num_selected, diversity_count, budget_utilization, iterations, converged, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, strategy, nullIfEmpty(configJSON),
		out.TotalReward, out.TotalEngagement, out.TotalCost,
		out.NumSelected, out.DiversityCount, out.BudgetUtilization,
		iterations, boolToInt(converged), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for step, tr := range out.Trace {
		_, err = tx.Exec(
			`INSERT INTO selections (run_id, step, username, cost, engagement, reward, remaining_budget, cumulative_cost, niche, category, gender)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, step, tr.Username, tr.Cost, tr.Engagement, tr.Reward,
			tr.RemainingBudget, tr.CumulativeCost,
			nullIfEmpty(tr.Niche), nullIfEmpty(tr.Category), nullIfEmpty(tr.Gender),
		)
		if err != nil {
			return "", fmt.Errorf("insert selection %d: %w", step, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// #endregion save-run

// #region get-run
// GetRun retrieves a run record by id.
func (s *Store) GetRun(runID string) (RunRecord, error) {
	var rec RunRecord
	var cfgJSON sql.NullString
	var createdStr string
	var converged int

	err := s.db.QueryRow(
		`SELECT run_id, strategy, config_json, total_reward, total_engagement, total_cost,
		        num_selected, diversity_count, budget_utilization, iterations, converged, created_at
		 FROM runs WHERE run_id = ?`, runID,
	).Scan(&rec.RunID, &rec.Strategy, &cfgJSON, &rec.TotalReward, &rec.TotalEngagement, &rec.TotalCost,
		&rec.NumSelected, &rec.DiversityCount, &rec.BudgetUtilization, &rec.Iterations, &converged, &createdStr)
	if err != nil {
		return RunRecord{}, fmt.Errorf("get run %s: %w", runID, err)
	}

	rec.ConfigJSON = cfgJSON.String
	rec.Converged = converged != 0
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return rec, nil
}

// ListRuns returns the most recent runs.
func (s *Store) ListRuns(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, strategy, config_json, total_reward, total_engagement, total_cost,
		        num_selected, diversity_count, budget_utilization, iterations, converged, created_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var cfgJSON sql.NullString
		var createdStr string
		var converged int
		if err := rows.Scan(&rec.RunID, &rec.Strategy, &cfgJSON, &rec.TotalReward, &rec.TotalEngagement, &rec.TotalCost,
			&rec.NumSelected, &rec.DiversityCount, &rec.BudgetUtilization, &rec.Iterations, &converged, &createdStr); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.ConfigJSON = cfgJSON.String
		rec.Converged = converged != 0
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// RunSelections loads a run's trace in step order.
func (s *Store) RunSelections(runID string) ([]rollout.TraceStep, error) {
	rows, err := s.db.Query(
		`SELECT username, cost, engagement, reward, remaining_budget, cumulative_cost, niche, category, gender
		 FROM selections WHERE run_id = ? ORDER BY step ASC`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("run selections: %w", err)
	}
	defer rows.Close()

	var trace []rollout.TraceStep
	for rows.Next() {
		var tr rollout.TraceStep
		var niche, category, gender sql.NullString
		if err := rows.Scan(&tr.Username, &tr.Cost, &tr.Engagement, &tr.Reward,
			&tr.RemainingBudget, &tr.CumulativeCost, &niche, &category, &gender); err != nil {
			return nil, fmt.Errorf("scan selection: %w", err)
		}
		tr.Niche = niche.String
		tr.Category = category.String
		tr.Gender = gender.String
		trace = append(trace, tr)
	}
	return trace, rows.Err()
}

// #endregion get-run

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// #endregion helpers
