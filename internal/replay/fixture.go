package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/campaignctl/influencer-planner/internal/catalog"
	"github.com/campaignctl/influencer-planner/internal/mdp"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a plan fixture: the item
// set, the planner configuration, and the outcome the solver is expected
// to reproduce exactly.
type Fixture struct {
	Description string          `json:"description"`
	Items       []FixtureItem   `json:"items"`
	Config      FixtureConfig   `json:"config"`
	Expected    FixtureExpected `json:"expected"`
}

// FixtureItem mirrors catalog.Item with JSON tags.
type FixtureItem struct {
	Username       string  `json:"username"`
	Cost           float64 `json:"cost"`
	Likes          float64 `json:"likes"`
	Comments       float64 `json:"comments"`
	Saves          float64 `json:"saves"`
	EngagementRate float64 `json:"engagement_rate,omitempty"`
	HasRate        bool    `json:"has_rate,omitempty"`
	Niche          string  `json:"niche,omitempty"`
	Category       string  `json:"category,omitempty"`
	Gender         string  `json:"gender,omitempty"`
}

// FixtureConfig mirrors mdp.Config with JSON tags.
type FixtureConfig struct {
	Gamma   float64 `json:"gamma"`
	Epsilon float64 `json:"epsilon"`
	Horizon int     `json:"horizon"`

	BudgetMax int `json:"budget_max"`
	GridStep  int `json:"grid_step"`

	Weights catalog.Weights `json:"weights"`

	UnderrepresentedCategories []string `json:"underrepresented_categories"`
	DiversityMultiplier        float64  `json:"diversity_multiplier"`
	DiversityBonus             float64  `json:"diversity_bonus"`

	StepAllowance      float64 `json:"step_allowance"`
	OverhangPenalty    float64 `json:"overhang_penalty"`
	LowBudgetThreshold float64 `json:"low_budget_threshold"`
	LowBudgetBonus     float64 `json:"low_budget_bonus"`
	ExactSpendBonus    float64 `json:"exact_spend_bonus"`

	EarlyStopPenalty       float64 `json:"early_stop_penalty"`
	TerminalDiversityBonus float64 `json:"terminal_diversity_bonus"`
	LeftoverThreshold      float64 `json:"leftover_threshold"`
	LeftoverPenaltyRate    float64 `json:"leftover_penalty_rate"`

	SweepCap int `json:"sweep_cap"`
}

// FixtureExpected captures the outcome a replay must reproduce.
type FixtureExpected struct {
	TotalReward     float64  `json:"total_reward"`
	TotalEngagement float64  `json:"total_engagement"`
	TotalCost       float64  `json:"total_cost"`
	NumSelected     int      `json:"num_selected"`
	DiversityCount  int      `json:"diversity_count"`
	Usernames       []string `json:"usernames"`
	Iterations      int      `json:"iterations"`
	Converged       bool     `json:"converged"`
}

// #endregion fixture-types

// #region conversions

// ToItems converts the fixture's item mirrors back to catalog items.
func (f *Fixture) ToItems() []catalog.Item {
	items := make([]catalog.Item, len(f.Items))
	for i, fi := range f.Items {
		items[i] = catalog.Item{
			Username:       fi.Username,
			Cost:           fi.Cost,
			Likes:          fi.Likes,
			Comments:       fi.Comments,
			Saves:          fi.Saves,
			EngagementRate: fi.EngagementRate,
			HasRate:        fi.HasRate,
			Niche:          fi.Niche,
			Category:       fi.Category,
			Gender:         fi.Gender,
		}
	}
	return items
}

// ToConfig converts the fixture's config mirror back to an mdp.Config.
func (f *Fixture) ToConfig() mdp.Config {
	c := f.Config
	return mdp.Config{
		Gamma:                      c.Gamma,
		Epsilon:                    c.Epsilon,
		Horizon:                    c.Horizon,
		BudgetMax:                  c.BudgetMax,
		GridStep:                   c.GridStep,
		Weights:                    c.Weights,
		UnderrepresentedCategories: c.UnderrepresentedCategories,
		DiversityMultiplier:        c.DiversityMultiplier,
		DiversityBonus:             c.DiversityBonus,
		StepAllowance:              c.StepAllowance,
		OverhangPenalty:            c.OverhangPenalty,
		LowBudgetThreshold:         c.LowBudgetThreshold,
		LowBudgetBonus:             c.LowBudgetBonus,
		ExactSpendBonus:            c.ExactSpendBonus,
		EarlyStopPenalty:           c.EarlyStopPenalty,
		TerminalDiversityBonus:     c.TerminalDiversityBonus,
		LeftoverThreshold:          c.LeftoverThreshold,
		LeftoverPenaltyRate:        c.LeftoverPenaltyRate,
		SweepCap:                   c.SweepCap,
	}
}

func fixtureItems(items []catalog.Item) []FixtureItem {
	out := make([]FixtureItem, len(items))
	for i, it := range items {
		out[i] = FixtureItem{
			Username:       it.Username,
			Cost:           it.Cost,
			Likes:          it.Likes,
			Comments:       it.Comments,
			Saves:          it.Saves,
			EngagementRate: it.EngagementRate,
			HasRate:        it.HasRate,
			Niche:          it.Niche,
			Category:       it.Category,
			Gender:         it.Gender,
		}
	}
	return out
}

func fixtureConfig(c mdp.Config) FixtureConfig {
	return FixtureConfig{
		Gamma:                      c.Gamma,
		Epsilon:                    c.Epsilon,
		Horizon:                    c.Horizon,
		BudgetMax:                  c.BudgetMax,
		GridStep:                   c.GridStep,
		Weights:                    c.Weights,
		UnderrepresentedCategories: c.UnderrepresentedCategories,
		DiversityMultiplier:        c.DiversityMultiplier,
		DiversityBonus:             c.DiversityBonus,
		StepAllowance:              c.StepAllowance,
		OverhangPenalty:            c.OverhangPenalty,
		LowBudgetThreshold:         c.LowBudgetThreshold,
		LowBudgetBonus:             c.LowBudgetBonus,
		ExactSpendBonus:            c.ExactSpendBonus,
		EarlyStopPenalty:           c.EarlyStopPenalty,
		TerminalDiversityBonus:     c.TerminalDiversityBonus,
		LeftoverThreshold:          c.LeftoverThreshold,
		LeftoverPenaltyRate:        c.LeftoverPenaltyRate,
		SweepCap:                   c.SweepCap,
	}
}

// #endregion conversions

// #region fixture-io

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// SaveFixture writes a fixture as indented JSON.
func SaveFixture(path string, f *Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// #endregion fixture-io
