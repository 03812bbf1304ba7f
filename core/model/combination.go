package model

import (
	"math"
	"strings"
)

// Combination is a non-empty set of candidates evaluated as a unit. Order is
// irrelevant for the derived totals but preserved for allocation.
type Combination []Candidate

// TotalIncrease sums the feasible increases of all members in tonnes.
func (c Combination) TotalIncrease() int64 {
	var total int64
	for _, m := range c {
		total += m.UsableIncrease()
	}
	return total
}

// TotalEnergyMW sums the auxiliary energy requirement of all members.
func (c Combination) TotalEnergyMW() float64 {
	var total float64
	for _, m := range c {
		if m.EnergyRequiredMW > 0 {
			total += m.EnergyRequiredMW
		}
	}
	return total
}

// TotalShipment returns the logistics throughput the combination requires.
// Every uplifted tonne has to move through the port, so this equals the
// total feasible increase.
func (c Combination) TotalShipment() int64 {
	return c.TotalIncrease()
}

// TotalCapexUSD sums the capital cost of all members.
func (c Combination) TotalCapexUSD() int64 {
	var total int64
	for _, m := range c {
		if m.CapexUSD > 0 {
			total += m.CapexUSD
		}
	}
	return total
}

// CombinedPayback returns the aggregate capital cost divided by the
// aggregate monthly income in months. A combination with zero income never
// pays back and reports +Inf.
func (c Combination) CombinedPayback() float64 {
	var income float64
	for _, m := range c {
		if m.MonthlyIncomeUSD > 0 {
			income += m.MonthlyIncomeUSD
		}
	}
	if income == 0 {
		return math.Inf(1)
	}
	return float64(c.TotalCapexUSD()) / income
}

// Label joins the member identifiers into a single display label.
func (c Combination) Label() string {
	ids := make([]string, 0, len(c))
	for _, m := range c {
		ids = append(ids, m.ID)
	}
	return strings.Join(ids, "+")
}

// IDs returns the member identifiers in combination order.
func (c Combination) IDs() []string {
	ids := make([]string, 0, len(c))
	for _, m := range c {
		ids = append(ids, m.ID)
	}
	return ids
}
