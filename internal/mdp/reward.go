package mdp

import "github.com/campaignctl/influencer-planner/internal/catalog"

// #region reward

// Reward computes the shaped score for selecting it at position c. The
// caller is responsible for only offering affordable items; Reward itself
// does not reject an item whose cost exceeds the remaining budget.
//
// Shaping applies in a fixed order: the weighted engagement base is scaled
// by the item's rate multiplier when present, a first-diverse selection is
// amplified once, and finally exactly one budget-utilization multiplier
// may fire, chosen by priority: overhang penalty, almost-spent bonus,
// exact-spend bonus.
func Reward(c Cursor, it catalog.Item, cfg Config) float64 {
	score := it.Engagement(cfg.Weights)
	if it.HasRate {
		score *= it.EngagementRate
	}

	if !c.Diverse && cfg.IsUnderrepresented(it) {
		score = score*cfg.DiversityMultiplier + cfg.DiversityBonus
	}

	projected := c.Budget - it.Cost
	remaining := cfg.Horizon - (c.Step + 1)
	switch {
	case remaining > 0 && projected > float64(remaining)*cfg.StepAllowance:
		score *= cfg.OverhangPenalty
	case projected > 0 && projected < cfg.LowBudgetThreshold:
		score *= cfg.LowBudgetBonus
	case projected == 0:
		score *= cfg.ExactSpendBonus
	}
	return score
}

// #endregion reward
