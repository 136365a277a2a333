package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/campaignctl/influencer-planner/internal/baselines"
	"github.com/campaignctl/influencer-planner/internal/report"
	"github.com/campaignctl/influencer-planner/internal/store"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to plans.db")
	jsonPath := flag.String("json", "", "write comparison JSON here")
	chartPath := flag.String("chart", "", "write comparison HTML chart here")
	spreadSeeds := flag.Int("spread", 0, "also run the random baseline across N seeds")
	budget := flag.Float64("budget", 1000, "budget for the seed spread")
	maxPicks := flag.Int("max-picks", 5, "pick cap for the seed spread")
	flag.Parse()

	if *dbPath == "" || (*jsonPath == "" && *chartPath == "") {
		fmt.Fprintln(os.Stderr, "usage: report --db path/to/plans.db [--json out.json] [--chart out.html] [--spread N]")
		os.Exit(2)
	}

	if err := run(*dbPath, *jsonPath, *chartPath, *spreadSeeds, *budget, *maxPicks); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region run

func run(dbPath, jsonPath, chartPath string, spreadSeeds int, budget float64, maxPicks int) error {
	st, err := store.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	comparison, err := latestComparison(st)
	if err != nil {
		return err
	}

	if jsonPath != "" {
		f, err := os.Create(jsonPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", jsonPath, err)
		}
		defer f.Close()
		if err := report.WriteJSON(f, comparison); err != nil {
			return err
		}
	}

	if chartPath != "" {
		f, err := os.Create(chartPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", chartPath, err)
		}
		defer f.Close()
		if err := report.RenderChart(f, comparison); err != nil {
			return err
		}
	}

	if spreadSeeds > 0 {
		if err := printSpread(st, spreadSeeds, budget, maxPicks); err != nil {
			return err
		}
	}
	return nil
}

// latestComparison keeps the newest run per strategy.
func latestComparison(st *store.Store) (report.Comparison, error) {
	runs, err := st.ListRuns(100)
	if err != nil {
		return report.Comparison{}, err
	}
	if len(runs) == 0 {
		return report.Comparison{}, fmt.Errorf("no runs recorded yet")
	}

	var c report.Comparison
	seen := make(map[string]bool)
	for _, r := range runs {
		if seen[r.Strategy] {
			continue
		}
		seen[r.Strategy] = true
		c.Add(report.Row{
			Strategy:          r.Strategy,
			TotalReward:       r.TotalReward,
			TotalEngagement:   r.TotalEngagement,
			TotalCost:         r.TotalCost,
			NumSelected:       r.NumSelected,
			DiversityCount:    r.DiversityCount,
			BudgetUtilization: r.BudgetUtilization,
			Iterations:        r.Iterations,
			Converged:         r.Converged,
		})
	}
	return c, nil
}

// #endregion run

// #region spread

func printSpread(st *store.Store, seeds int, budget float64, maxPicks int) error {
	importID, err := st.LatestImport()
	if err != nil {
		return fmt.Errorf("seed spread needs an imported catalog: %w", err)
	}
	items, err := st.ListItems(importID)
	if err != nil {
		return err
	}

	cfg := baselines.DefaultConfig()
	cfg.Budget = budget
	cfg.MaxPicks = maxPicks

	seedList := make([]int64, seeds)
	for i := range seedList {
		seedList[i] = int64(i + 1)
	}
	spread, err := report.RandomSpread(items, cfg, seedList)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(spread)
}

// #endregion spread
