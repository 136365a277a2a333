package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/campaignctl/influencer-planner/internal/store"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to plans.db")
	last := flag.Int("last", 20, "show N most recent runs")
	runID := flag.String("run", "", "show single run detail")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/plans.db [--last N] [--run id] [--json]")
		os.Exit(2)
	}

	st, err := store.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if *runID != "" {
		err = runDetailMode(st, *runID, *jsonOut)
	} else {
		err = runListMode(st, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	RunID             string  `json:"run_id"`
	Strategy          string  `json:"strategy"`
	TotalEngagement   float64 `json:"total_engagement"`
	TotalCost         float64 `json:"total_cost"`
	NumSelected       int     `json:"num_selected"`
	DiversityCount    int     `json:"diversity_count"`
	BudgetUtilization float64 `json:"budget_utilization"`
	Iterations        int     `json:"iterations,omitempty"`
	Converged         bool    `json:"converged,omitempty"`
	CreatedAt         string  `json:"created_at"`
}

func runListMode(st *store.Store, last int, jsonOut bool) error {
	runs, err := st.ListRuns(last)
	if err != nil {
		return err
	}

	rows := make([]listRow, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, listRow{
			RunID:             r.RunID,
			Strategy:          r.Strategy,
			TotalEngagement:   r.TotalEngagement,
			TotalCost:         r.TotalCost,
			NumSelected:       r.NumSelected,
			DiversityCount:    r.DiversityCount,
			BudgetUtilization: r.BudgetUtilization,
			Iterations:        r.Iterations,
			Converged:         r.Converged,
			CreatedAt:         r.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	fmt.Printf("%-36s  %-8s  %12s  %10s  %5s  %4s  %6s  %s\n",
		"RUN", "STRATEGY", "ENGAGEMENT", "COST", "PICKS", "DIV", "UTIL", "CREATED")
	for _, row := range rows {
		fmt.Printf("%-36s  %-8s  %12.1f  %10.2f  %5d  %4d  %5.1f%%  %s\n",
			row.RunID, row.Strategy, row.TotalEngagement, row.TotalCost,
			row.NumSelected, row.DiversityCount, row.BudgetUtilization*100, row.CreatedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

func runDetailMode(st *store.Store, runID string, jsonOut bool) error {
	rec, err := st.GetRun(runID)
	if err != nil {
		return err
	}
	trace, err := st.RunSelections(runID)
	if err != nil {
		return err
	}
	events, err := st.RunEvents(runID)
	if err != nil {
		return err
	}

	if jsonOut {
		detail := map[string]interface{}{
			"run":    rec,
			"trace":  trace,
			"events": events,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(detail)
	}

	fmt.Printf("run %s  strategy=%s  created=%s\n", rec.RunID, rec.Strategy, rec.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  engagement=%.1f cost=%.2f selected=%d diversity=%d utilization=%.1f%%\n",
		rec.TotalEngagement, rec.TotalCost, rec.NumSelected, rec.DiversityCount, rec.BudgetUtilization*100)
	if rec.Strategy == "mdp" {
		fmt.Printf("  sweeps=%d converged=%t\n", rec.Iterations, rec.Converged)
	}

	fmt.Println("trace:")
	for i, tr := range trace {
		fmt.Printf("  %2d. %-20s cost=%8.2f reward=%10.2f remaining=%8.2f",
			i+1, tr.Username, tr.Cost, tr.Reward, tr.RemainingBudget)
		if tr.Category != "" {
			fmt.Printf("  category=%s", tr.Category)
		}
		fmt.Println()
	}

	if len(events) > 0 {
		fmt.Println("events:")
		for _, e := range events {
			fmt.Printf("  %s  %-16s %s\n", e.CreatedAt.Format("15:04:05"), e.Event, e.Detail)
		}
	}
	return nil
}

// #endregion detail-mode
