package baselines

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/campaignctl/influencer-planner/internal/catalog"
)

// testItems ranks dave (4.5/unit) first, then bob (4.0), carol (2.0)
// and alice (1.0); dave's cost exceeds the default budget.
func testItems() []catalog.Item {
	return []catalog.Item{
		{Username: "alice", Cost: 100, Likes: 100, Category: "mainstream"},
		{Username: "bob", Cost: 50, Likes: 200, Category: "underrepresented"},
		{Username: "carol", Cost: 300, Likes: 600, Category: "mainstream"},
		{Username: "dave", Cost: 2000, Likes: 9000, Category: "underrepresented"},
	}
}

func TestGreedyOrdersByEngagementPerCost(t *testing.T) {
	cfg := DefaultConfig()
	out := Greedy(testItems(), cfg)

	want := []string{"bob", "carol", "alice"}
	if out.NumSelected != len(want) {
		t.Fatalf("selected %d items, want %d", out.NumSelected, len(want))
	}
	for i, step := range out.Trace {
		if step.Username != want[i] {
			t.Fatalf("pick %d = %s, want %s", i, step.Username, want[i])
		}
	}
	if out.TotalCost != 450 {
		t.Fatalf("total cost = %g, want 450", out.TotalCost)
	}
	if out.TotalEngagement != 900 {
		t.Fatalf("total engagement = %g, want 900", out.TotalEngagement)
	}
	if out.DiversityCount != 1 {
		t.Fatalf("diversity count = %d, want 1", out.DiversityCount)
	}
	if out.BudgetUtilization != 0.45 {
		t.Fatalf("utilization = %g, want 0.45", out.BudgetUtilization)
	}
}

func TestGreedyRespectsBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Budget = 120
	out := Greedy(testItems(), cfg)

	// bob (50) fits, carol (300) skipped, alice (100) exceeds the 70 left.
	if out.NumSelected != 1 || out.Trace[0].Username != "bob" {
		t.Fatalf("unexpected selection under tight budget: %+v", out.Trace)
	}
	if out.TotalCost > cfg.Budget {
		t.Fatalf("total cost %g exceeds budget %g", out.TotalCost, cfg.Budget)
	}
}

func TestGreedyHonorsPickCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPicks = 2
	out := Greedy(testItems(), cfg)

	if out.NumSelected != 2 {
		t.Fatalf("selected %d items, want 2", out.NumSelected)
	}
	if out.Trace[0].Username != "bob" || out.Trace[1].Username != "carol" {
		t.Fatalf("capped picks = %+v", out.Trace)
	}
}

func TestGreedyTiesKeepItemOrder(t *testing.T) {
	items := []catalog.Item{
		{Username: "first", Cost: 100, Likes: 100},
		{Username: "second", Cost: 100, Likes: 100},
	}
	out := Greedy(items, DefaultConfig())
	if out.Trace[0].Username != "first" || out.Trace[1].Username != "second" {
		t.Fatalf("tie ordering changed: %+v", out.Trace)
	}
}

func TestRandomIsDeterministicPerSeed(t *testing.T) {
	cfg := DefaultConfig()
	a := Random(testItems(), cfg)
	b := Random(testItems(), cfg)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("same seed diverged (-a +b):\n%s", diff)
	}
}

func TestRandomExcludesUnaffordableItems(t *testing.T) {
	cfg := DefaultConfig()
	for seed := int64(0); seed < 20; seed++ {
		cfg.Seed = seed
		out := Random(testItems(), cfg)
		for _, step := range out.Trace {
			if step.Username == "dave" {
				t.Fatalf("seed %d selected item costing more than the budget", seed)
			}
		}
		if out.TotalCost > cfg.Budget {
			t.Fatalf("seed %d total cost %g exceeds budget", seed, out.TotalCost)
		}
	}
}

func TestRandomTraceBookkeeping(t *testing.T) {
	cfg := DefaultConfig()
	out := Random(testItems(), cfg)

	remaining := cfg.Budget
	var cum float64
	for i, step := range out.Trace {
		if step.RemainingBudget != remaining {
			t.Fatalf("step %d remaining = %g, want %g", i, step.RemainingBudget, remaining)
		}
		cum += step.Cost
		if step.CumulativeCost != cum {
			t.Fatalf("step %d cumulative = %g, want %g", i, step.CumulativeCost, cum)
		}
		remaining -= step.Cost
	}
}
