// Package baselines implements the greedy and random selection
// strategies the planner is compared against. Both report the same
// Outcome shape as the policy rollout; neither shares state with the
// solver.
package baselines

import (
	"math/rand"
	"sort"

	"github.com/campaignctl/influencer-planner/internal/catalog"
	"github.com/campaignctl/influencer-planner/internal/rollout"
)

// #region config

// Config holds the selection parameters shared by both baselines.
type Config struct {
	Budget   float64
	MaxPicks int // 0 means no cap on the number of selections
	Weights  catalog.Weights

	// Categories counted toward the diversity tally, matching the
	// planner's underrepresented set.
	UnderrepresentedCategories []string

	// Seed drives the random baseline's shuffle. Runs are deterministic
	// per seed.
	Seed int64
}

// DefaultConfig returns baseline parameters matching the planner's
// defaults.
func DefaultConfig() Config {
	return Config{
		Budget:                     1000,
		Weights:                    catalog.DefaultWeights(),
		UnderrepresentedCategories: []string{"underrepresented"},
		Seed:                       42,
	}
}

func (c Config) underrepresented(it catalog.Item) bool {
	for _, cat := range c.UnderrepresentedCategories {
		if it.Category == cat {
			return true
		}
	}
	return false
}

// #endregion config

// #region greedy

// Greedy selects items by engagement-per-cost, descending, accepting
// each while the budget allows. Ties keep the original item order.
func Greedy(items []catalog.Item, cfg Config) rollout.Outcome {
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return perCost(items[order[a]], cfg.Weights) > perCost(items[order[b]], cfg.Weights)
	})
	return accept(items, order, cfg)
}

// perCost is the greedy ranking key. A zero-cost item ranks first.
func perCost(it catalog.Item, w catalog.Weights) float64 {
	return it.Engagement(w) / it.Cost
}

// #endregion greedy

// #region random

// Random shuffles the affordable items with a seeded generator and runs
// the same acceptance loop as Greedy.
func Random(items []catalog.Item, cfg Config) rollout.Outcome {
	var order []int
	for i, it := range items {
		if it.Cost <= cfg.Budget {
			order = append(order, i)
		}
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	rng.Shuffle(len(order), func(a, b int) {
		order[a], order[b] = order[b], order[a]
	})
	return accept(items, order, cfg)
}

// #endregion random

// #region accept

// accept walks the candidate order, taking every item that still fits
// the remaining budget, up to the optional pick cap.
func accept(items []catalog.Item, order []int, cfg Config) rollout.Outcome {
	var out rollout.Outcome
	remaining := cfg.Budget

	for _, idx := range order {
		if cfg.MaxPicks > 0 && out.NumSelected >= cfg.MaxPicks {
			break
		}
		it := items[idx]
		if it.Cost > remaining {
			continue
		}

		eng := it.Engagement(cfg.Weights)
		out.TotalCost += it.Cost
		out.Trace = append(out.Trace, rollout.TraceStep{
			Username:        it.Username,
			Cost:            it.Cost,
			Engagement:      eng,
			Reward:          eng,
			RemainingBudget: remaining,
			CumulativeCost:  out.TotalCost,
			Niche:           it.Niche,
			Category:        it.Category,
			Gender:          it.Gender,
		})
		out.TotalReward += eng
		out.TotalEngagement += eng
		out.NumSelected++
		if cfg.underrepresented(it) {
			out.DiversityCount++
		}
		remaining -= it.Cost
	}

	if cfg.Budget > 0 {
		out.BudgetUtilization = out.TotalCost / cfg.Budget
	}
	return out
}

// #endregion accept
