package logging

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestJSONLStore_AppendAndQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decisions.log")
	store, err := NewJSONLStore(path)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []Record{
		{Timestamp: base, PlanID: "p1", Strategy: "exhaustive", Feasible: true, PlantIDs: []string{"SP1"}, Allocations: map[string]int64{"SP1": 400}},
		{Timestamp: base.Add(time.Hour), PlanID: "p2", Strategy: "best_effort", Feasible: false, PlantIDs: []string{"SP2"}, Breaches: []string{"energy_shortfall"}},
		{Timestamp: base.Add(2 * time.Hour), PlanID: "p3", Strategy: "greedy", Feasible: true, PlantIDs: []string{"SP1", "SP2"}},
	}
	for _, r := range records {
		if err := store.Append(ctx, r); err != nil {
			t.Fatalf("append %s: %v", r.PlanID, err)
		}
	}

	all, err := store.Query(ctx, Query{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}

	feasible, err := store.Query(ctx, Query{FeasibleOnly: true})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(feasible) != 2 {
		t.Fatalf("expected 2 feasible records, got %d", len(feasible))
	}

	byPlant, err := store.Query(ctx, Query{PlantID: "SP2"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(byPlant) != 2 {
		t.Fatalf("expected 2 records naming SP2, got %d", len(byPlant))
	}

	windowed, err := store.Query(ctx, Query{Start: base.Add(30 * time.Minute), End: base.Add(90 * time.Minute)})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(windowed) != 1 || windowed[0].PlanID != "p2" {
		t.Fatalf("expected only p2 in window, got %v", windowed)
	}
}

func TestJSONLStore_PlantIDMatchesAllocations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decisions.log")
	store, err := NewJSONLStore(path)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	rec := Record{Timestamp: time.Now(), PlanID: "p1", PlantIDs: []string{"SP1"}, Allocations: map[string]int64{"SP1": 100, "SP9": 50}}
	if err := store.Append(context.Background(), rec); err != nil {
		t.Fatalf("append: %v", err)
	}
	got, err := store.Query(context.Background(), Query{PlantID: "SP9"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("allocation key should match plant filter, got %d records", len(got))
	}
}
