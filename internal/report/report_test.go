package report

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/campaignctl/influencer-planner/internal/baselines"
	"github.com/campaignctl/influencer-planner/internal/catalog"
	"github.com/campaignctl/influencer-planner/internal/rollout"
)

func TestRowFromOutcome(t *testing.T) {
	out := rollout.Outcome{
		TotalReward:       77,
		TotalEngagement:   300,
		TotalCost:         50,
		NumSelected:       1,
		DiversityCount:    1,
		BudgetUtilization: 0.05,
	}
	r := RowFromOutcome("mdp", out)
	if r.Strategy != "mdp" || r.TotalReward != 77 || r.TotalEngagement != 300 {
		t.Fatalf("row mismatch: %+v", r)
	}
	if r.Iterations != 0 || r.Converged {
		t.Fatalf("solver-only fields should stay zero: %+v", r)
	}
}

func TestWriteJSONKeyedByStrategy(t *testing.T) {
	var c Comparison
	c.Add(Row{Strategy: "mdp", TotalEngagement: 300, Iterations: 2, Converged: true})
	c.Add(Row{Strategy: "greedy", TotalEngagement: 250})
	c.Add(Row{Strategy: "random", TotalEngagement: 120})

	var buf bytes.Buffer
	if err := WriteJSON(&buf, c); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded map[string]Row
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 3 {
		t.Fatalf("got %d strategies, want 3", len(decoded))
	}
	if decoded["mdp"].TotalEngagement != 300 || !decoded["mdp"].Converged {
		t.Fatalf("mdp row mismatch: %+v", decoded["mdp"])
	}
	if decoded["greedy"].Converged {
		t.Fatal("baseline row should not report convergence")
	}
	if !strings.Contains(buf.String(), "    ") {
		t.Fatal("output should be indented")
	}
}

func TestRandomSpreadStatistics(t *testing.T) {
	items := []catalog.Item{
		{Username: "a", Cost: 100, Likes: 100},
		{Username: "b", Cost: 200, Likes: 300},
		{Username: "c", Cost: 400, Likes: 900},
		{Username: "d", Cost: 500, Likes: 400},
	}
	cfg := baselines.DefaultConfig()

	seeds := []int64{1, 2, 3, 4, 5}
	s, err := RandomSpread(items, cfg, seeds)
	if err != nil {
		t.Fatalf("RandomSpread: %v", err)
	}
	if s.Seeds != len(seeds) {
		t.Fatalf("seeds = %d, want %d", s.Seeds, len(seeds))
	}
	if s.MeanEngagement <= 0 || math.IsNaN(s.StddevEngagement) {
		t.Fatalf("engagement stats malformed: %+v", s)
	}
	if s.MeanCost <= 0 || s.MeanCost > cfg.Budget {
		t.Fatalf("mean cost out of range: %+v", s)
	}
	if s.MeanUtilization <= 0 || s.MeanUtilization > 1 {
		t.Fatalf("mean utilization out of range: %+v", s)
	}

	again, err := RandomSpread(items, cfg, seeds)
	if err != nil {
		t.Fatalf("RandomSpread repeat: %v", err)
	}
	if s != again {
		t.Fatalf("spread not deterministic:\n first %+v\nsecond %+v", s, again)
	}
}

func TestRandomSpreadRejectsEmptySeeds(t *testing.T) {
	if _, err := RandomSpread(nil, baselines.DefaultConfig(), nil); err == nil {
		t.Fatal("expected error for empty seed list")
	}
}

func TestRenderChartProducesHTML(t *testing.T) {
	var c Comparison
	c.Add(Row{Strategy: "mdp", TotalEngagement: 300, TotalCost: 50, NumSelected: 1})
	c.Add(Row{Strategy: "greedy", TotalEngagement: 250, TotalCost: 400, NumSelected: 3})

	var buf bytes.Buffer
	if err := RenderChart(&buf, c); err != nil {
		t.Fatalf("RenderChart: %v", err)
	}

	html := buf.String()
	if !strings.Contains(html, "<html") {
		t.Fatal("output is not an HTML document")
	}
	for _, want := range []string{"mdp", "greedy", "engagement", "cost", "selected"} {
		if !strings.Contains(html, want) {
			t.Fatalf("chart output missing %q", want)
		}
	}
}
