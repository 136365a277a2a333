package mdp

import (
	"math"
	"testing"

	"github.com/campaignctl/influencer-planner/internal/catalog"
)

func shapingTestConfig() Config {
	cfg := DefaultConfig()
	cfg.Horizon = 5
	return cfg
}

func approx(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("got %g, want %g", got, want)
	}
}

func TestRewardWeightsEngagementComponents(t *testing.T) {
	cfg := shapingTestConfig()
	it := catalog.Item{Username: "a", Cost: 100, Likes: 10, Comments: 5, Saves: 2}

	// 10*1 + 5*2 + 2*3 = 26; projected 600 clears no shaping band.
	got := Reward(Cursor{Budget: 700, Step: 0}, it, cfg)
	approx(t, got, 26)
}

func TestRewardAppliesRateMultiplierOnlyWhenPresent(t *testing.T) {
	cfg := shapingTestConfig()
	with := catalog.Item{Cost: 100, Likes: 10, EngagementRate: 0.5, HasRate: true}
	without := catalog.Item{Cost: 100, Likes: 10, EngagementRate: 0.5} // HasRate unset

	approx(t, Reward(Cursor{Budget: 700, Step: 0}, with, cfg), 5)
	approx(t, Reward(Cursor{Budget: 700, Step: 0}, without, cfg), 10)
}

func TestRewardDiversityShapingFiresOnceViaFlag(t *testing.T) {
	cfg := shapingTestConfig()
	it := catalog.Item{Cost: 100, Likes: 10, Category: "underrepresented"}

	// Flag unset: 10*3 + 50 = 80; projected 600 leaves it unshaped.
	approx(t, Reward(Cursor{Budget: 700, Step: 0}, it, cfg), 80)
	// Flag already set: no amplification.
	approx(t, Reward(Cursor{Budget: 700, Step: 0, Diverse: true}, it, cfg), 10)
}

func TestRewardOverhangPenalty(t *testing.T) {
	cfg := shapingTestConfig()
	it := catalog.Item{Cost: 100, Likes: 10}

	// Step 0 of 5: remaining 4, projected 900 > 4*200 = 800: halved.
	approx(t, Reward(Cursor{Budget: 1000, Step: 0}, it, cfg), 5)

	// A looser allowance (4*300 = 1200) leaves the score unshaped.
	cfg.StepAllowance = 300
	approx(t, Reward(Cursor{Budget: 1000, Step: 0}, it, cfg), 10)
}

func TestRewardAlmostSpentBonus(t *testing.T) {
	cfg := shapingTestConfig()
	it := catalog.Item{Cost: 100, Likes: 10}

	// Projected 50, inside (0, 100): 10 * 1.2.
	approx(t, Reward(Cursor{Budget: 150, Step: 4}, it, cfg), 12)
}

func TestRewardExactSpendBonus(t *testing.T) {
	cfg := shapingTestConfig()
	it := catalog.Item{Cost: 100, Likes: 10}

	// Projected exactly 0: 10 * 1.5.
	approx(t, Reward(Cursor{Budget: 100, Step: 4}, it, cfg), 15)
}

func TestRewardShapingPriorityOrder(t *testing.T) {
	cfg := shapingTestConfig()
	cfg.StepAllowance = 10
	it := catalog.Item{Cost: 100, Likes: 10}

	// Projected 50 satisfies both the overhang test (50 > 4*10 = 40) and
	// the almost-spent band (0 < 50 < 100); overhang wins.
	approx(t, Reward(Cursor{Budget: 150, Step: 0}, it, cfg), 5)
}

func TestRewardUnshapedOutsideAllBands(t *testing.T) {
	cfg := shapingTestConfig()
	it := catalog.Item{Cost: 100, Likes: 10}

	// Last step (remaining 0), projected 500: no shaping applies.
	approx(t, Reward(Cursor{Budget: 600, Step: 4}, it, cfg), 10)
}

func TestRewardDoesNotRejectUnaffordableItems(t *testing.T) {
	cfg := shapingTestConfig()
	it := catalog.Item{Cost: 500, Likes: 10}

	// Affordability is the caller's concern; projected is negative, so no
	// budget shaping fires.
	approx(t, Reward(Cursor{Budget: 100, Step: 4}, it, cfg), 10)
}
