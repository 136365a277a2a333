package solver

import (
	"fmt"
	"math"

	"github.com/campaignctl/influencer-planner/internal/catalog"
	"github.com/campaignctl/influencer-planner/internal/mdp"
)

// #region solve

// Solve runs value iteration over the discretized state space and
// extracts a deterministic policy. Terminal states carry fixed values
// assigned once at initialization; sweeps only back up non-terminal
// states. Ties between equal-value actions resolve to the lowest item
// index, because candidates are enumerated in ascending index order and
// only a strictly greater value displaces the incumbent.
//
// Non-convergence within the sweep cap is not an error: the last computed
// values and policy are returned with Converged set to false.
func Solve(items []catalog.Item, cfg mdp.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no items to plan over")
	}

	states := mdp.EnumerateStates(cfg)
	grid := mdp.NewGrid(cfg)

	values := make(map[mdp.State]float64, len(states))
	policy := make(map[mdp.State]int, len(states))
	for _, s := range states {
		if isTerminal(s, cfg) {
			values[s] = terminalValue(s, cfg)
		} else {
			values[s] = 0
		}
	}

	// chosen tracks how many policy entries currently hold each action,
	// so the used-action filter stays O(1) inside the sweep.
	chosen := make(map[int]int, len(items))

	res := &Result{Values: values, Policy: policy}
	for sweep := 0; sweep < cfg.SweepCap; sweep++ {
		var delta float64
		for _, s := range states {
			if isTerminal(s, cfg) {
				continue
			}

			cur := mdp.Cursor{Budget: float64(s.Budget), Step: s.Step, Diverse: s.Diverse}
			best := math.Inf(-1)
			bestAction := -1
			for a, it := range items {
				if it.Cost > float64(s.Budget) {
					continue
				}
				if chosen[a] > 0 {
					// An action committed by any state's policy entry is
					// unavailable everywhere, including at the state that
					// committed it. Exclusivity is approximated globally
					// across the policy map, not per trajectory; see the
					// pinned test before changing this.
					continue
				}
				next := mdp.Transition(cur, it, cfg)
				candidate := mdp.Reward(cur, it, cfg) + cfg.Gamma*values[next.Key(grid)]
				if candidate > best {
					best = candidate
					bestAction = a
				}
			}
			if bestAction < 0 {
				// No affordable, unused action here: leave the value and
				// policy entry alone. Rollout treats the missing entry as
				// a normal stop.
				continue
			}

			if prevAction, ok := policy[s]; ok {
				chosen[prevAction]--
			}
			policy[s] = bestAction
			chosen[bestAction]++

			if d := math.Abs(best - values[s]); d > delta {
				delta = d
			}
			values[s] = best
		}

		res.Iterations = sweep + 1
		res.Delta = delta
		if delta < cfg.Epsilon {
			res.Converged = true
			break
		}
	}
	return res, nil
}

// #endregion solve

// #region terminal

// isTerminal reports whether no further action may be taken at s.
func isTerminal(s mdp.State, cfg mdp.Config) bool {
	return s.Step >= cfg.Horizon || s.Budget <= 0
}

// terminalValue computes the fixed value of a terminal state: a penalty
// for exhausting the budget before the horizon, a bonus for a set
// diversity flag, and a linear penalty on budget left unspent at the
// true horizon.
func terminalValue(s mdp.State, cfg mdp.Config) float64 {
	var v float64
	if s.Step < cfg.Horizon {
		v -= cfg.EarlyStopPenalty
	}
	if s.Diverse {
		v += cfg.TerminalDiversityBonus
	}
	if s.Step >= cfg.Horizon && float64(s.Budget) > cfg.LeftoverThreshold {
		v -= cfg.LeftoverPenaltyRate * float64(s.Budget)
	}
	return v
}

// #endregion terminal
