package store

import "time"

// #region run-record

// RunRecord is one persisted planning run: which strategy ran, with what
// configuration, and what it achieved.
type RunRecord struct {
	RunID             string
	Strategy          string
	ConfigJSON        string
	TotalReward       float64
	TotalEngagement   float64
	TotalCost         float64
	NumSelected       int
	DiversityCount    int
	BudgetUtilization float64

	// Solver bookkeeping; zero/false for baseline runs.
	Iterations int
	Converged  bool

	CreatedAt time.Time
}

// #endregion run-record

// #region provenance-entry

// ProvenanceEntry is a single row in the provenance_log table.
type ProvenanceEntry struct {
	RunID     string
	Event     string
	Detail    string
	CreatedAt time.Time
}

// #endregion provenance-entry
