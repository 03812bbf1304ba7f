package plan

import (
	"github.com/steelworks-io/uplift/core/model"
)

// bestEffortPick returns the candidate with the largest feasible increase.
// Ties keep the earliest-listed candidate, which the scorer emits in
// ascending payback order.
func bestEffortPick(candidates []model.Candidate) model.Candidate {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.FeasibleIncrease > best.FeasibleIncrease {
			best = c
		}
	}
	return best
}

// evaluateBreaches checks the single candidate against the three
// independent constraints. Payback is deliberately not checked here: a lone
// plant is reported for what it can physically deliver, and the caller reads
// the payback figure from the decision itself.
func evaluateBreaches(c model.Candidate, q Query) []Breach {
	var breaches []Breach
	if c.UsableIncrease() < q.RequiredIncrease {
		breaches = append(breaches, BreachInsufficientIncrease)
	}
	if c.EnergyRequiredMW > q.EnergyHeadroomMW {
		breaches = append(breaches, BreachEnergyShortfall)
	}
	if c.UsableIncrease() > q.PortHeadroom {
		breaches = append(breaches, BreachPortShortfall)
	}
	return breaches
}
