package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/steelworks-io/uplift/core/plan/logging"
)

func TestSQLiteStore_AppendAndQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decisions.db")
	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []logging.Record{
		{Timestamp: base, PlanID: "p1", Strategy: "exhaustive", Feasible: true, RequiredIncrease: 400, AchievedIncrease: 400, PlantIDs: []string{"SP1"}, Allocations: map[string]int64{"SP1": 400}},
		{Timestamp: base.Add(time.Hour), PlanID: "p2", Strategy: "best_effort", Feasible: false, PlantIDs: []string{"SP2"}, Breaches: []string{"energy_shortfall"}},
	}
	for _, r := range records {
		if err := store.Append(ctx, r); err != nil {
			t.Fatalf("append %s: %v", r.PlanID, err)
		}
	}

	all, err := store.Query(ctx, logging.Query{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 records, got %d", len(all))
	}
	if all[0].PlanID != "p1" || all[0].Allocations["SP1"] != 400 {
		t.Errorf("round trip mismatch: %+v", all[0])
	}
	if len(all[1].Breaches) != 1 || all[1].Breaches[0] != "energy_shortfall" {
		t.Errorf("breaches not preserved: %+v", all[1])
	}

	feasible, err := store.Query(ctx, logging.Query{FeasibleOnly: true})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(feasible) != 1 || feasible[0].PlanID != "p1" {
		t.Fatalf("feasible filter failed: %v", feasible)
	}

	byPlant, err := store.Query(ctx, logging.Query{PlantID: "SP2"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(byPlant) != 1 || byPlant[0].PlanID != "p2" {
		t.Fatalf("plant filter failed: %v", byPlant)
	}

	windowed, err := store.Query(ctx, logging.Query{Start: base.Add(30 * time.Minute)})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(windowed) != 1 || windowed[0].PlanID != "p2" {
		t.Fatalf("time filter failed: %v", windowed)
	}
}

func TestSQLiteStore_AppendIsIdempotentPerPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decisions.db")
	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer func() { _ = store.Close() }()

	rec := logging.Record{Timestamp: time.Now(), PlanID: "p1", Strategy: "greedy"}
	ctx := context.Background()
	if err := store.Append(ctx, rec); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append(ctx, rec); err != nil {
		t.Fatalf("second append: %v", err)
	}
	all, err := store.Query(ctx, logging.Query{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 record after replay, got %d", len(all))
	}
}
