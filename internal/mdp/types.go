package mdp

import (
	"fmt"

	"github.com/campaignctl/influencer-planner/internal/catalog"
)

// #region config

// Config holds every tunable of the planning model: discounting,
// convergence, the budget grid, reward shaping and terminal values.
type Config struct {
	Gamma   float64 // discount factor, must lie in (0, 1)
	Epsilon float64 // convergence tolerance on the max value change per sweep
	Horizon int     // maximum number of selection steps

	BudgetMax int // top of the budget grid, also the starting budget
	GridStep  int // grid resolution; BudgetMax must be a multiple

	Weights catalog.Weights

	// Diversity shaping. An item counts as underrepresented when its
	// Category appears in UnderrepresentedCategories. The first such
	// selection in a trajectory has its base score multiplied by
	// DiversityMultiplier and raised by DiversityBonus.
	UnderrepresentedCategories []string
	DiversityMultiplier        float64
	DiversityBonus             float64

	// Budget-utilization shaping, keyed off the projected remaining
	// budget after an action. Mutually exclusive, in this priority order.
	StepAllowance      float64 // per-step budget allowance for the overhang test
	OverhangPenalty    float64 // multiplier when too much budget is left too early
	LowBudgetThreshold float64 // "almost spent" band upper bound
	LowBudgetBonus     float64 // multiplier inside the almost-spent band
	ExactSpendBonus    float64 // multiplier when the budget lands exactly on zero

	// Terminal values. EarlyStopPenalty is subtracted when the budget dies
	// before the horizon; TerminalDiversityBonus is added for a set
	// diversity flag; leftover budget above LeftoverThreshold at the true
	// horizon costs LeftoverPenaltyRate per unit.
	EarlyStopPenalty       float64
	TerminalDiversityBonus float64
	LeftoverThreshold      float64
	LeftoverPenaltyRate    float64

	// SweepCap bounds value iteration even if it never converges.
	SweepCap int
}

// DefaultConfig returns the standard planning parameters.
func DefaultConfig() Config {
	return Config{
		Gamma:   0.9,
		Epsilon: 0.01,
		Horizon: 5,

		BudgetMax: 1000,
		GridStep:  10,

		Weights: catalog.DefaultWeights(),

		UnderrepresentedCategories: []string{"underrepresented"},
		DiversityMultiplier:        3,
		DiversityBonus:             50,

		StepAllowance:      200,
		OverhangPenalty:    0.5,
		LowBudgetThreshold: 100,
		LowBudgetBonus:     1.2,
		ExactSpendBonus:    1.5,

		EarlyStopPenalty:       500,
		TerminalDiversityBonus: 100,
		LeftoverThreshold:      100,
		LeftoverPenaltyRate:    0.1,

		SweepCap: 1000,
	}
}

// #endregion config

// #region validate

// Validate rejects configurations that cannot be solved. A zero horizon is
// legal and yields an empty plan; a negative one is not.
func (c Config) Validate() error {
	if c.GridStep <= 0 {
		return fmt.Errorf("grid step must be positive, got %d", c.GridStep)
	}
	if c.BudgetMax <= 0 {
		return fmt.Errorf("budget max must be positive, got %d", c.BudgetMax)
	}
	if c.BudgetMax%c.GridStep != 0 {
		return fmt.Errorf("budget max %d is not a multiple of grid step %d", c.BudgetMax, c.GridStep)
	}
	if c.Horizon < 0 {
		return fmt.Errorf("horizon must be non-negative, got %d", c.Horizon)
	}
	if c.Gamma <= 0 || c.Gamma >= 1 {
		return fmt.Errorf("gamma must lie in (0, 1), got %g", c.Gamma)
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be positive, got %g", c.Epsilon)
	}
	if c.SweepCap <= 0 {
		return fmt.Errorf("sweep cap must be positive, got %d", c.SweepCap)
	}
	return nil
}

// #endregion validate

// #region underrepresented

// IsUnderrepresented reports whether the item belongs to the configured
// underrepresented category set.
func (c Config) IsUnderrepresented(it catalog.Item) bool {
	for _, cat := range c.UnderrepresentedCategories {
		if it.Category == cat {
			return true
		}
	}
	return false
}

// #endregion underrepresented
