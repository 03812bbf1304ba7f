package plan

import (
	"math"

	"github.com/steelworks-io/uplift/core/model"
)

// maxDistributionRounds bounds the single-unit distribution pass against
// pathological inputs. Exceeding it stops further distribution rather than
// failing.
const maxDistributionRounds = 10000

// Allocate distributes required tonnes across the combination members in
// proportion to their feasible increase, capping each member at its own
// feasible quantity. The work happens in pure stages: proportional rounded
// shares, then a cycling one-unit correction of the rounding drift, then the
// capex share derivation. Returns nil when the combination has no usable
// capacity.
func Allocate(combo model.Combination, required int64) []AllocationRecord {
	total := combo.TotalIncrease()
	if total <= 0 {
		return nil
	}
	shares := initialShares(combo, required, total)
	shares = distributeShortfall(combo, shares, required-sumShares(shares))
	return finalize(combo, shares)
}

// initialShares computes round(required * feasible / total) per member,
// capped at the member's feasible increase.
func initialShares(combo model.Combination, required, total int64) []int64 {
	shares := make([]int64, len(combo))
	for i, m := range combo {
		f := m.UsableIncrease()
		s := int64(math.Round(float64(required) * float64(f) / float64(total)))
		if s > f {
			s = f
		}
		if s < 0 {
			s = 0
		}
		shares[i] = s
	}
	return shares
}

// distributeShortfall corrects the rounding drift one unit at a time,
// cycling through members in combination order. A positive shortfall moves
// units into members with spare capacity; a negative one takes units back
// so the total never exceeds the required quantity.
func distributeShortfall(combo model.Combination, shares []int64, shortfall int64) []int64 {
	out := append([]int64(nil), shares...)
	for round := 0; round < maxDistributionRounds && shortfall != 0; round++ {
		moved := false
		for i, m := range combo {
			if shortfall == 0 {
				break
			}
			switch {
			case shortfall > 0 && out[i] < m.UsableIncrease():
				out[i]++
				shortfall--
				moved = true
			case shortfall < 0 && out[i] > 0:
				out[i]--
				shortfall++
				moved = true
			}
		}
		if !moved {
			break
		}
	}
	return out
}

// finalize derives the capex share for each member from its allocated
// fraction of the feasible increase.
func finalize(combo model.Combination, shares []int64) []AllocationRecord {
	records := make([]AllocationRecord, len(combo))
	for i, m := range combo {
		f := m.UsableIncrease()
		var capex int64
		if f > 0 {
			capex = int64(math.Round(float64(m.CapexUSD) * float64(shares[i]) / float64(f)))
		}
		records[i] = AllocationRecord{
			PlantID:       m.ID,
			Allocated:     shares[i],
			Feasible:      f,
			CapexShareUSD: capex,
		}
	}
	return records
}

func sumShares(shares []int64) int64 {
	var total int64
	for _, s := range shares {
		total += s
	}
	return total
}
