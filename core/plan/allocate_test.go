package plan

import (
	"testing"

	"github.com/steelworks-io/uplift/core/model"
)

func alloc(id string, feasible, capex int64) model.Candidate {
	return model.Candidate{ID: id, FeasibleIncrease: feasible, CapexUSD: capex, MonthlyIncomeUSD: 1}
}

func TestAllocate_Proportional(t *testing.T) {
	combo := model.Combination{alloc("SP1", 600, 600_000), alloc("SP2", 400, 400_000)}
	recs := Allocate(combo, 700)
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Allocated != 420 || recs[1].Allocated != 280 {
		t.Fatalf("expected 420/280, got %d/%d", recs[0].Allocated, recs[1].Allocated)
	}
	if recs[0].CapexShareUSD != 420_000 || recs[1].CapexShareUSD != 280_000 {
		t.Errorf("capex shares %d/%d not proportional to allocation", recs[0].CapexShareUSD, recs[1].CapexShareUSD)
	}
}

func TestAllocate_CapsAtFeasible(t *testing.T) {
	combo := model.Combination{alloc("SP1", 600, 0), alloc("SP2", 400, 0)}
	recs := Allocate(combo, 1200)
	var total int64
	for _, r := range recs {
		if r.Allocated > r.Feasible {
			t.Errorf("%s allocated %d above feasible %d", r.PlantID, r.Allocated, r.Feasible)
		}
		total += r.Allocated
	}
	if total != 1000 {
		t.Fatalf("expected full capacity 1000 allocated, got %d", total)
	}
}

func TestAllocate_RoundingDriftCorrected(t *testing.T) {
	combo := model.Combination{alloc("SP1", 333, 0), alloc("SP2", 333, 0), alloc("SP3", 334, 0)}
	recs := Allocate(combo, 500)
	var total int64
	for _, r := range recs {
		if r.Allocated > r.Feasible {
			t.Errorf("%s allocated above feasible", r.PlantID)
		}
		total += r.Allocated
	}
	if total != 500 {
		t.Fatalf("rounding drift not corrected: total %d", total)
	}
}

func TestAllocate_NoUsableCapacity(t *testing.T) {
	combo := model.Combination{alloc("SP1", 0, 0), alloc("SP2", -5, 0)}
	if recs := Allocate(combo, 100); recs != nil {
		t.Fatalf("expected nil for zero-capacity combination, got %v", recs)
	}
}

func TestAllocate_SinglePlant(t *testing.T) {
	combo := model.Combination{alloc("SP1", 500_000, 1000)}
	recs := Allocate(combo, 400_000)
	if recs[0].Allocated != 400_000 {
		t.Fatalf("expected 400000, got %d", recs[0].Allocated)
	}
	if recs[0].CapexShareUSD != 800 {
		t.Errorf("expected capex share 800, got %d", recs[0].CapexShareUSD)
	}
}
