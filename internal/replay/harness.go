package replay

import (
	"fmt"
	"math"

	"github.com/campaignctl/influencer-planner/internal/catalog"
	"github.com/campaignctl/influencer-planner/internal/mdp"
	"github.com/campaignctl/influencer-planner/internal/rollout"
	"github.com/campaignctl/influencer-planner/internal/solver"
)

// floatTol absorbs cross-platform floating point noise when comparing
// recorded totals; the plan itself must match exactly.
const floatTol = 1e-9

// #region types

// Drift is one field that failed to reproduce during verification.
type Drift struct {
	Field string
	Want  string
	Got   string
}

// VerifyResult reports whether a fixture replayed exactly.
type VerifyResult struct {
	Passed bool
	Drifts []Drift
}

// #endregion types

// #region build

// BuildFixture solves and rolls out the given items and records the
// outcome as the expectation for future replays.
func BuildFixture(description string, items []catalog.Item, cfg mdp.Config) (*Fixture, error) {
	f := &Fixture{
		Description: description,
		Items:       fixtureItems(items),
		Config:      fixtureConfig(cfg),
	}

	res, err := solver.Solve(items, cfg)
	if err != nil {
		return nil, fmt.Errorf("solve fixture: %w", err)
	}
	out := rollout.Evaluate(res, items, cfg)

	usernames := make([]string, 0, len(out.Trace))
	for _, tr := range out.Trace {
		usernames = append(usernames, tr.Username)
	}
	f.Expected = FixtureExpected{
		TotalReward:     out.TotalReward,
		TotalEngagement: out.TotalEngagement,
		TotalCost:       out.TotalCost,
		NumSelected:     out.NumSelected,
		DiversityCount:  out.DiversityCount,
		Usernames:       usernames,
		Iterations:      res.Iterations,
		Converged:       res.Converged,
	}
	return f, nil
}

// #endregion build

// #region verify

// Verify re-solves the fixture's items under its recorded configuration
// and diffs the fresh outcome against the expectation, field by field.
// Any drift means the solver path is no longer deterministic with respect
// to the recorded behavior.
func Verify(f *Fixture) (VerifyResult, error) {
	cfg := f.ToConfig()
	items := f.ToItems()

	res, err := solver.Solve(items, cfg)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("solve: %w", err)
	}
	out := rollout.Evaluate(res, items, cfg)

	var drifts []Drift
	checkFloat := func(field string, want, got float64) {
		if math.Abs(want-got) > floatTol {
			drifts = append(drifts, Drift{Field: field, Want: fmt.Sprintf("%g", want), Got: fmt.Sprintf("%g", got)})
		}
	}
	checkInt := func(field string, want, got int) {
		if want != got {
			drifts = append(drifts, Drift{Field: field, Want: fmt.Sprintf("%d", want), Got: fmt.Sprintf("%d", got)})
		}
	}

	exp := f.Expected
	checkFloat("total_reward", exp.TotalReward, out.TotalReward)
	checkFloat("total_engagement", exp.TotalEngagement, out.TotalEngagement)
	checkFloat("total_cost", exp.TotalCost, out.TotalCost)
	checkInt("num_selected", exp.NumSelected, out.NumSelected)
	checkInt("diversity_count", exp.DiversityCount, out.DiversityCount)
	checkInt("iterations", exp.Iterations, res.Iterations)
	if exp.Converged != res.Converged {
		drifts = append(drifts, Drift{
			Field: "converged",
			Want:  fmt.Sprintf("%t", exp.Converged),
			Got:   fmt.Sprintf("%t", res.Converged),
		})
	}

	if len(exp.Usernames) != len(out.Trace) {
		drifts = append(drifts, Drift{
			Field: "trace_length",
			Want:  fmt.Sprintf("%d", len(exp.Usernames)),
			Got:   fmt.Sprintf("%d", len(out.Trace)),
		})
	} else {
		for i, name := range exp.Usernames {
			if out.Trace[i].Username != name {
				drifts = append(drifts, Drift{
					Field: fmt.Sprintf("trace[%d].username", i),
					Want:  name,
					Got:   out.Trace[i].Username,
				})
			}
		}
	}

	return VerifyResult{Passed: len(drifts) == 0, Drifts: drifts}, nil
}

// #endregion verify
