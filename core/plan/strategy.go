package plan

import (
	"github.com/steelworks-io/uplift/core/model"
)

// Strategy searches for a combination of candidates satisfying the query
// bounds. Implementations must not mutate the candidate slice; tie-breaking
// between equally good combinations follows the input order of the slice.
type Strategy interface {
	Name() string
	// Select returns the chosen combination and true on success, or false
	// when no combination satisfying all constraints was found.
	Select(candidates []model.Candidate, q Query) (model.Combination, bool)
}

// Satisfies reports whether the combination meets all four query bounds:
// uplift target reached, energy within headroom, shipments within port
// headroom and combined payback under the ceiling. An infinite payback
// (zero combined income) always fails the payback bound.
func Satisfies(combo model.Combination, q Query) bool {
	if combo.TotalIncrease() < q.RequiredIncrease {
		return false
	}
	if combo.TotalEnergyMW() > q.EnergyHeadroomMW {
		return false
	}
	if combo.TotalShipment() > q.PortHeadroom {
		return false
	}
	return combo.CombinedPayback() <= q.MaxPaybackMonths
}
