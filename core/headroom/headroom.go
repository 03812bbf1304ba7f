// Package headroom reduces provider records to the single headroom scalars
// the selection engine consumes. Aggregation is plain summation; no caps or
// class-specific discount rules apply.
package headroom

import "github.com/steelworks-io/uplift/core/model"

// Port sums the unused throughput of the given port units in tonnes.
func Port(units []model.PortUnit) int64 {
	var total int64
	for _, u := range units {
		total += u.Headroom()
	}
	return total
}

// Energy sums the spare grid capacity of the given units in MW.
func Energy(units []model.EnergyUnit) float64 {
	var total float64
	for _, u := range units {
		if u.AvailableMW > 0 {
			total += u.AvailableMW
		}
	}
	return total
}
