package plan

import (
	"testing"

	"github.com/steelworks-io/uplift/core/model"
)

func cand(id string, feasible int64, energy float64, capex int64, income float64) model.Candidate {
	var payback float64
	if income > 0 {
		payback = float64(capex) / income
	}
	return model.Candidate{
		ID:               id,
		FeasibleIncrease: feasible,
		EnergyRequiredMW: energy,
		CapexUSD:         capex,
		MonthlyIncomeUSD: income,
		PaybackMonths:    payback,
	}
}

func TestExhaustive_PrefersSmallestSubset(t *testing.T) {
	// C alone covers the target but blows the payback ceiling, so the
	// smallest acceptable subset is the pair A+B.
	candidates := []model.Candidate{
		cand("A", 500, 1, 100, 10),
		cand("B", 400, 1, 100, 10),
		cand("C", 900, 1, 5000, 10),
	}
	q := Query{RequiredIncrease: 800, PortHeadroom: 5000, EnergyHeadroomMW: 100, MaxPaybackMonths: 36}

	combo, ok := ExhaustiveStrategy{}.Select(candidates, q)
	if !ok {
		t.Fatalf("expected a combination")
	}
	if combo.Label() != "A+B" {
		t.Fatalf("expected A+B, got %s", combo.Label())
	}
}

func TestExhaustive_InputOrderBreaksTies(t *testing.T) {
	candidates := []model.Candidate{
		cand("A", 500, 1, 100, 10),
		cand("B", 500, 1, 100, 10),
		cand("C", 500, 1, 100, 10),
	}
	q := Query{RequiredIncrease: 900, PortHeadroom: 5000, EnergyHeadroomMW: 100, MaxPaybackMonths: 36}

	combo, ok := ExhaustiveStrategy{}.Select(candidates, q)
	if !ok {
		t.Fatalf("expected a combination")
	}
	if combo.Label() != "A+B" {
		t.Fatalf("expected earliest pair A+B, got %s", combo.Label())
	}
}

func TestExhaustive_NoMatch(t *testing.T) {
	candidates := []model.Candidate{cand("A", 100, 1, 100, 10)}
	q := Query{RequiredIncrease: 500, PortHeadroom: 5000, EnergyHeadroomMW: 100, MaxPaybackMonths: 36}
	if _, ok := (ExhaustiveStrategy{}).Select(candidates, q); ok {
		t.Fatalf("expected no combination")
	}
}

func TestGreedy_TakesLargestFirst(t *testing.T) {
	candidates := []model.Candidate{
		cand("small", 100, 1, 100, 10),
		cand("big", 900, 1, 100, 10),
	}
	q := Query{RequiredIncrease: 900, PortHeadroom: 5000, EnergyHeadroomMW: 100, MaxPaybackMonths: 36}

	combo, ok := GreedyStrategy{}.Select(candidates, q)
	if !ok {
		t.Fatalf("expected a combination")
	}
	if combo.Label() != "big" {
		t.Fatalf("expected big alone, got %s", combo.Label())
	}
}

func TestGreedy_CanMissWhereExhaustiveFinds(t *testing.T) {
	// Greedy commits to X, then X+Y overshoots the port headroom and it
	// never reconsiders. The exhaustive search finds X+Z.
	candidates := []model.Candidate{
		cand("X", 600, 1, 100, 10),
		cand("Y", 500, 1, 100, 10),
		cand("Z", 400, 1, 100, 10),
	}
	q := Query{RequiredIncrease: 900, PortHeadroom: 1000, EnergyHeadroomMW: 100, MaxPaybackMonths: 36}

	if _, ok := (GreedyStrategy{}).Select(candidates, q); ok {
		t.Fatalf("expected greedy to miss")
	}
	combo, ok := ExhaustiveStrategy{}.Select(candidates, q)
	if !ok {
		t.Fatalf("expected exhaustive to find a combination")
	}
	if combo.Label() != "X+Z" {
		t.Fatalf("expected X+Z, got %s", combo.Label())
	}
}

func TestExhaustive_MoreHeadroomStaysFeasible(t *testing.T) {
	candidates := []model.Candidate{
		cand("A", 500, 2, 100, 10),
		cand("B", 400, 3, 100, 10),
		cand("C", 300, 1, 100, 10),
	}
	base := Query{RequiredIncrease: 800, PortHeadroom: 900, EnergyHeadroomMW: 5, MaxPaybackMonths: 36}
	if _, ok := (ExhaustiveStrategy{}).Select(candidates, base); !ok {
		t.Fatalf("base query must be feasible")
	}

	// widening either headroom must never turn a feasible query infeasible
	for _, extraPort := range []int64{0, 1, 100, 1_000_000} {
		for _, extraEnergy := range []float64{0, 0.5, 10, 1000} {
			q := base
			q.PortHeadroom += extraPort
			q.EnergyHeadroomMW += extraEnergy
			if _, ok := (ExhaustiveStrategy{}).Select(candidates, q); !ok {
				t.Fatalf("infeasible at port+%d energy+%g", extraPort, extraEnergy)
			}
		}
	}
}

func TestSatisfies_InfinitePaybackFails(t *testing.T) {
	combo := model.Combination{cand("A", 1000, 1, 100, 0)}
	q := Query{RequiredIncrease: 500, PortHeadroom: 5000, EnergyHeadroomMW: 100, MaxPaybackMonths: 36}
	if Satisfies(combo, q) {
		t.Fatalf("zero-income combination must fail the payback bound")
	}
}

func TestBestEffortPick_LargestWinsEarliestTies(t *testing.T) {
	candidates := []model.Candidate{
		cand("first", 500, 1, 100, 10),
		cand("second", 500, 1, 100, 10),
		cand("smaller", 400, 1, 100, 10),
	}
	if top := bestEffortPick(candidates); top.ID != "first" {
		t.Fatalf("expected earliest of the tied candidates, got %s", top.ID)
	}
}

func TestEvaluateBreaches_AllThree(t *testing.T) {
	c := cand("A", 300, 5, 100, 10)
	q := Query{RequiredIncrease: 1000, PortHeadroom: 250, EnergyHeadroomMW: 3, MaxPaybackMonths: 36}
	breaches := evaluateBreaches(c, q)
	want := []Breach{BreachInsufficientIncrease, BreachEnergyShortfall, BreachPortShortfall}
	if len(breaches) != len(want) {
		t.Fatalf("expected %d breaches, got %v", len(want), breaches)
	}
	for i, b := range want {
		if breaches[i] != b {
			t.Errorf("breach %d: expected %s, got %s", i, b, breaches[i])
		}
		if b.Mitigation() == "" {
			t.Errorf("breach %s has no mitigation", b)
		}
	}
}
