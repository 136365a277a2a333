package rollout

import (
	"github.com/campaignctl/influencer-planner/internal/catalog"
	"github.com/campaignctl/influencer-planner/internal/mdp"
	"github.com/campaignctl/influencer-planner/internal/solver"
)

// #region types

// TraceStep records one selection made during a rollout.
type TraceStep struct {
	Username string  `json:"username"`
	Cost     float64 `json:"cost"`

	// Engagement is the weighted raw engagement score; Reward is the
	// shaped reward actually applied at this step.
	Engagement float64 `json:"engagement"`
	Reward     float64 `json:"reward"`

	// RemainingBudget is the unsnapped budget before this selection;
	// CumulativeCost includes this step's cost.
	RemainingBudget float64 `json:"remaining_budget"`
	CumulativeCost  float64 `json:"cumulative_cost"`

	Niche    string `json:"niche,omitempty"`
	Category string `json:"category,omitempty"`
	Gender   string `json:"gender,omitempty"`
}

// Outcome is the result of replaying a strategy: aggregate totals plus
// the ordered selection trace. Baseline selectors report the same shape,
// so strategies compare on identical fields.
type Outcome struct {
	TotalReward       float64     `json:"total_reward"`
	TotalEngagement   float64     `json:"total_engagement"`
	TotalCost         float64     `json:"total_cost"`
	NumSelected       int         `json:"num_selected"`
	DiversityCount    int         `json:"diversity_count"`
	BudgetUtilization float64     `json:"budget_utilization"`
	Trace             []TraceStep `json:"trace"`
}

// #endregion types

// #region evaluate

// Evaluate replays the solved policy from the canonical initial state
// (BudgetMax, step 0, diversity unset) into a concrete selection trace.
// The running budget stays unsnapped between steps; only the policy
// lookup key is snapped onto the grid. The loop is bounded by the
// horizon and stops early on a missing policy entry or an exhausted
// budget. Evaluate has no side effects, so one Result may serve any
// number of concurrent rollouts.
func Evaluate(res *solver.Result, items []catalog.Item, cfg mdp.Config) Outcome {
	grid := mdp.NewGrid(cfg)
	cur := mdp.Cursor{Budget: float64(cfg.BudgetMax)}

	var out Outcome
	for i := 0; i < cfg.Horizon; i++ {
		if cur.Step >= cfg.Horizon || cur.Budget <= 0 {
			break
		}
		action, ok := res.Policy[cur.Key(grid)]
		if !ok {
			break
		}

		it := items[action]
		reward := mdp.Reward(cur, it, cfg)

		out.TotalCost += it.Cost
		out.Trace = append(out.Trace, TraceStep{
			Username:        it.Username,
			Cost:            it.Cost,
			Engagement:      it.Engagement(cfg.Weights),
			Reward:          reward,
			RemainingBudget: cur.Budget,
			CumulativeCost:  out.TotalCost,
			Niche:           it.Niche,
			Category:        it.Category,
			Gender:          it.Gender,
		})
		out.TotalReward += reward
		out.TotalEngagement += it.Engagement(cfg.Weights)
		if cfg.IsUnderrepresented(it) {
			out.DiversityCount++
		}

		cur = mdp.Transition(cur, it, cfg)
	}

	out.NumSelected = len(out.Trace)
	if cfg.BudgetMax > 0 {
		out.BudgetUtilization = out.TotalCost / float64(cfg.BudgetMax)
	}
	return out
}

// #endregion evaluate
