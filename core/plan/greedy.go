package plan

import (
	"sort"

	"github.com/steelworks-io/uplift/core/model"
)

// GreedyStrategy sorts candidates by descending feasible increase (stable,
// preserving input order on ties) and accumulates them one at a time,
// accepting the first prefix meeting all query bounds. It never revisits a
// candidate and can miss smaller combinations the exhaustive search would
// find, trading optimality for linear-time execution.
type GreedyStrategy struct{}

func (GreedyStrategy) Name() string { return "greedy" }

// Select implements Strategy.
func (GreedyStrategy) Select(candidates []model.Candidate, q Query) (model.Combination, bool) {
	sorted := append([]model.Candidate(nil), candidates...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FeasibleIncrease > sorted[j].FeasibleIncrease
	})

	var combo model.Combination
	for _, c := range sorted {
		combo = append(combo, c)
		subsetsEvaluated.Inc()
		if Satisfies(combo, q) {
			return combo, true
		}
	}
	return nil, false
}
