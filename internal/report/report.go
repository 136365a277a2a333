// Package report compares strategy outcomes and renders them as JSON or
// an HTML chart.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/campaignctl/influencer-planner/internal/rollout"
)

// #region row

// Row is one strategy's aggregate result. Solver-only fields stay zero
// for the baselines.
type Row struct {
	Strategy          string  `json:"strategy"`
	TotalReward       float64 `json:"total_reward"`
	TotalEngagement   float64 `json:"total_engagement"`
	TotalCost         float64 `json:"total_cost"`
	NumSelected       int     `json:"num_selected"`
	DiversityCount    int     `json:"diversity_count"`
	BudgetUtilization float64 `json:"budget_utilization"`

	Iterations int  `json:"iterations,omitempty"`
	Converged  bool `json:"converged,omitempty"`
}

// RowFromOutcome flattens an outcome into a comparison row.
func RowFromOutcome(strategy string, out rollout.Outcome) Row {
	return Row{
		Strategy:          strategy,
		TotalReward:       out.TotalReward,
		TotalEngagement:   out.TotalEngagement,
		TotalCost:         out.TotalCost,
		NumSelected:       out.NumSelected,
		DiversityCount:    out.DiversityCount,
		BudgetUtilization: out.BudgetUtilization,
	}
}

// #endregion row

// #region comparison

// Comparison holds one row per strategy, in presentation order.
type Comparison struct {
	Rows []Row
}

// Add appends a row.
func (c *Comparison) Add(r Row) {
	c.Rows = append(c.Rows, r)
}

// WriteJSON writes the comparison keyed by strategy name, the same shape
// as the historical baseline_eval.json results file.
func WriteJSON(w io.Writer, c Comparison) error {
	byStrategy := make(map[string]Row, len(c.Rows))
	for _, r := range c.Rows {
		byStrategy[r.Strategy] = r
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(byStrategy); err != nil {
		return fmt.Errorf("encode comparison: %w", err)
	}
	return nil
}

// #endregion comparison
