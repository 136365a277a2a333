package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/campaignctl/influencer-planner/internal/baselines"
	"github.com/campaignctl/influencer-planner/internal/catalog"
	"github.com/campaignctl/influencer-planner/internal/mdp"
	"github.com/campaignctl/influencer-planner/internal/replay"
	"github.com/campaignctl/influencer-planner/internal/rollout"
	"github.com/campaignctl/influencer-planner/internal/solver"
	"github.com/campaignctl/influencer-planner/internal/store"
)

// #region main

func main() {
	csvPath := flag.String("csv", "", "path to influencer CSV")
	dbPath := flag.String("db", "", "optional SQLite path; persists catalog and runs")
	outPath := flag.String("out", "", "write comparison JSON here instead of stdout")
	fixturePath := flag.String("export-fixture", "", "also export a determinism fixture to this path")

	horizon := flag.Int("horizon", 5, "maximum number of selections")
	budget := flag.Int("budget", 1000, "campaign budget, top of the grid")
	gridStep := flag.Int("grid", 10, "budget grid resolution")
	gamma := flag.Float64("gamma", 0.9, "discount factor")
	epsilon := flag.Float64("epsilon", 0.01, "convergence tolerance")
	underrep := flag.String("underrep", "underrepresented", "comma-separated underrepresented categories")
	seed := flag.Int64("seed", 42, "random baseline seed")
	deriveCosts := flag.Bool("derive-costs", false, "derive costs from engagement when absent")
	flag.Parse()

	if *csvPath == "" {
		fmt.Fprintln(os.Stderr, "usage: planner --csv path/to/influencers.csv [--db plans.db] [--out results.json]")
		os.Exit(2)
	}

	cfg := mdp.DefaultConfig()
	cfg.Horizon = *horizon
	cfg.BudgetMax = *budget
	cfg.GridStep = *gridStep
	cfg.Gamma = *gamma
	cfg.Epsilon = *epsilon
	cfg.UnderrepresentedCategories = splitCategories(*underrep)

	if err := run(cfg, *csvPath, *dbPath, *outPath, *fixturePath, *seed, *deriveCosts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func splitCategories(s string) []string {
	var out []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// #endregion main

// #region run

func run(cfg mdp.Config, csvPath, dbPath, outPath, fixturePath string, seed int64, deriveCosts bool) error {
	items, err := catalog.LoadCSV(csvPath)
	if err != nil {
		return err
	}
	if deriveCosts {
		catalog.DeriveCosts(items, cfg.Weights)
	}

	var st *store.Store
	if dbPath != "" {
		st, err = store.NewStore(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		importID, err := st.ImportItems(items)
		if err != nil {
			return err
		}
		if err := st.LogEvent(store.ProvenanceEntry{
			Event:  "catalog_import",
			Detail: fmt.Sprintf("import_id=%s items=%d", importID, len(items)),
		}); err != nil {
			return err
		}
	}

	res, err := solver.Solve(items, cfg)
	if err != nil {
		return err
	}
	planned := rollout.Evaluate(res, items, cfg)

	bcfg := baselines.Config{
		Budget:                     float64(cfg.BudgetMax),
		MaxPicks:                   cfg.Horizon,
		Weights:                    cfg.Weights,
		UnderrepresentedCategories: cfg.UnderrepresentedCategories,
		Seed:                       seed,
	}
	greedy := baselines.Greedy(items, bcfg)
	random := baselines.Random(items, bcfg)

	if err := writeResults(cfg, res, planned, greedy, random, outPath); err != nil {
		return err
	}

	if st != nil {
		if err := persistRuns(st, cfg, res, planned, greedy, random); err != nil {
			return err
		}
	}

	if fixturePath != "" {
		f, err := replay.BuildFixture("exported by planner", items, cfg)
		if err != nil {
			return err
		}
		if err := replay.SaveFixture(fixturePath, f); err != nil {
			return err
		}
	}

	if !res.Converged {
		fmt.Fprintf(os.Stderr, "warning: value iteration hit the sweep cap after %d sweeps (delta %g)\n", res.Iterations, res.Delta)
	}
	return nil
}

// #endregion run

// #region results

type strategyResult struct {
	TotalReward       float64             `json:"total_reward"`
	TotalEngagement   float64             `json:"total_engagement"`
	TotalCost         float64             `json:"total_cost"`
	NumSelected       int                 `json:"num_selected"`
	DiversityCount    int                 `json:"diversity_count"`
	BudgetUtilization float64             `json:"budget_utilization"`
	Iterations        int                 `json:"iterations,omitempty"`
	Converged         *bool               `json:"converged,omitempty"`
	Trace             []rollout.TraceStep `json:"trace,omitempty"`
}

func writeResults(cfg mdp.Config, res *solver.Result, planned, greedy, random rollout.Outcome, outPath string) error {
	conv := res.Converged
	results := map[string]strategyResult{
		"mdp":    outcomeResult(planned, res.Iterations, &conv),
		"greedy": outcomeResult(greedy, 0, nil),
		"random": outcomeResult(random, 0, nil),
	}

	w := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return nil
}

func outcomeResult(out rollout.Outcome, iterations int, converged *bool) strategyResult {
	return strategyResult{
		TotalReward:       out.TotalReward,
		TotalEngagement:   out.TotalEngagement,
		TotalCost:         out.TotalCost,
		NumSelected:       out.NumSelected,
		DiversityCount:    out.DiversityCount,
		BudgetUtilization: out.BudgetUtilization,
		Iterations:        iterations,
		Converged:         converged,
		Trace:             out.Trace,
	}
}

// #endregion results

// #region persist

func persistRuns(st *store.Store, cfg mdp.Config, res *solver.Result, planned, greedy, random rollout.Outcome) error {
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	type run struct {
		strategy   string
		out        rollout.Outcome
		iterations int
		converged  bool
	}
	for _, r := range []run{
		{"mdp", planned, res.Iterations, res.Converged},
		{"greedy", greedy, 0, false},
		{"random", random, 0, false},
	} {
		runID, err := st.SaveRun(r.strategy, string(cfgJSON), r.out, r.iterations, r.converged)
		if err != nil {
			return err
		}
		detail := fmt.Sprintf("selected=%d cost=%.2f", r.out.NumSelected, r.out.TotalCost)
		if r.strategy == "mdp" {
			detail = fmt.Sprintf("%s sweeps=%d converged=%t", detail, res.Iterations, res.Converged)
		}
		if err := st.LogEvent(store.ProvenanceEntry{RunID: runID, Event: "run_saved", Detail: detail}); err != nil {
			return err
		}
	}
	return nil
}

// #endregion persist
