package store

import (
	"path/filepath"
	"testing"

	"github.com/campaignctl/influencer-planner/internal/catalog"
	"github.com/campaignctl/influencer-planner/internal/rollout"
)

func tempDB(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestImportItemsRoundTrip(t *testing.T) {
	s := tempDB(t)

	items := []catalog.Item{
		{Username: "anna", Cost: 150, Likes: 100, Comments: 20, Saves: 5, EngagementRate: 0.04, HasRate: true, Niche: "fitness", Category: "underrepresented", Gender: "f"},
		{Username: "ben", Cost: 90, Likes: 50, Saves: 10},
	}

	id, err := s.ImportItems(items)
	if err != nil {
		t.Fatalf("ImportItems: %v", err)
	}
	if id == "" {
		t.Fatal("empty import id")
	}

	got, err := s.ListItems(id)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d items, want 2", len(got))
	}
	if got[0] != items[0] {
		t.Fatalf("item 0 round trip mismatch:\n got %+v\nwant %+v", got[0], items[0])
	}
	if got[1].HasRate {
		t.Fatal("item without rate came back with HasRate set")
	}
	if got[1] != items[1] {
		t.Fatalf("item 1 round trip mismatch:\n got %+v\nwant %+v", got[1], items[1])
	}
}

func TestListItemsPreservesPositionOrder(t *testing.T) {
	s := tempDB(t)

	items := []catalog.Item{
		{Username: "zeta", Cost: 1},
		{Username: "alpha", Cost: 2},
		{Username: "mid", Cost: 3},
	}
	id, err := s.ImportItems(items)
	if err != nil {
		t.Fatalf("ImportItems: %v", err)
	}

	got, err := s.ListItems(id)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	for i := range items {
		if got[i].Username != items[i].Username {
			t.Fatalf("position %d = %s, want %s", i, got[i].Username, items[i].Username)
		}
	}
}

func TestLatestImport(t *testing.T) {
	s := tempDB(t)

	if _, err := s.ImportItems([]catalog.Item{{Username: "old"}}); err != nil {
		t.Fatalf("ImportItems: %v", err)
	}
	newest, err := s.ImportItems([]catalog.Item{{Username: "new"}})
	if err != nil {
		t.Fatalf("ImportItems: %v", err)
	}

	latest, err := s.LatestImport()
	if err != nil {
		t.Fatalf("LatestImport: %v", err)
	}
	if latest != newest {
		t.Fatalf("latest import = %s, want %s", latest, newest)
	}
}

func TestSaveRunRoundTrip(t *testing.T) {
	s := tempDB(t)

	out := rollout.Outcome{
		TotalReward:       77,
		TotalEngagement:   300,
		TotalCost:         50,
		NumSelected:       1,
		DiversityCount:    0,
		BudgetUtilization: 0.05,
		Trace: []rollout.TraceStep{
			{Username: "carol", Cost: 50, Engagement: 300, Reward: 77, RemainingBudget: 1000, CumulativeCost: 50, Niche: "travel"},
		},
	}

	id, err := s.SaveRun("mdp", `{"horizon":1}`, out, 2, true)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	rec, err := s.GetRun(id)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if rec.Strategy != "mdp" || rec.ConfigJSON != `{"horizon":1}` {
		t.Fatalf("run metadata mismatch: %+v", rec)
	}
	if rec.TotalReward != 77 || rec.NumSelected != 1 || !rec.Converged || rec.Iterations != 2 {
		t.Fatalf("run fields mismatch: %+v", rec)
	}
	if rec.CreatedAt.IsZero() {
		t.Fatal("created_at not persisted")
	}

	trace, err := s.RunSelections(id)
	if err != nil {
		t.Fatalf("RunSelections: %v", err)
	}
	if len(trace) != 1 || trace[0] != out.Trace[0] {
		t.Fatalf("trace round trip mismatch: %+v", trace)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	s := tempDB(t)

	first, err := s.SaveRun("greedy", "", rollout.Outcome{}, 0, false)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	second, err := s.SaveRun("random", "", rollout.Outcome{}, 0, false)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	runs, err := s.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].RunID != second || runs[1].RunID != first {
		t.Fatalf("runs not newest first: %s then %s", runs[0].RunID, runs[1].RunID)
	}

	limited, err := s.ListRuns(1)
	if err != nil {
		t.Fatalf("ListRuns limited: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("limit ignored, got %d runs", len(limited))
	}
}

func TestGetRunMissing(t *testing.T) {
	s := tempDB(t)
	if _, err := s.GetRun("no-such-run"); err == nil {
		t.Fatal("expected error for unknown run id")
	}
}

func TestProvenanceLogRoundTrip(t *testing.T) {
	s := tempDB(t)

	runID, err := s.SaveRun("mdp", "", rollout.Outcome{}, 1, true)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	events := []ProvenanceEntry{
		{RunID: runID, Event: "solve_started", Detail: "3 items"},
		{RunID: runID, Event: "solve_finished", Detail: "converged after 2 sweeps"},
		{Event: "import", Detail: "unrelated to the run"},
	}
	for _, e := range events {
		if err := s.LogEvent(e); err != nil {
			t.Fatalf("LogEvent: %v", err)
		}
	}

	got, err := s.RunEvents(runID)
	if err != nil {
		t.Fatalf("RunEvents: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].Event != "solve_started" || got[1].Event != "solve_finished" {
		t.Fatalf("events out of order: %+v", got)
	}
	if got[0].Detail != "3 items" {
		t.Fatalf("detail mismatch: %q", got[0].Detail)
	}
	if got[0].CreatedAt.IsZero() {
		t.Fatal("event timestamp not persisted")
	}
}
