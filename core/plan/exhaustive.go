package plan

import (
	"github.com/steelworks-io/uplift/core/model"
)

// ExhaustiveStrategy enumerates every non-empty candidate subset in
// increasing size order and accepts the first one satisfying all query
// bounds. Within a size, subsets are visited in the candidate list's
// relative order, so among equally sized feasible combinations the one
// whose members appear earliest in the input wins.
//
// The enumeration is exponential in the candidate count. It is only meant
// for the small candidate sets this planner sees (low single digits to low
// tens); larger sets must be reduced by the caller or handled by a
// polynomial Strategy substituted in its place.
type ExhaustiveStrategy struct{}

func (ExhaustiveStrategy) Name() string { return "exhaustive" }

// Select implements Strategy.
func (s ExhaustiveStrategy) Select(candidates []model.Candidate, q Query) (model.Combination, bool) {
	n := len(candidates)
	picked := make([]model.Candidate, 0, n)
	for size := 1; size <= n; size++ {
		if combo, ok := s.search(candidates, q, picked, 0, size); ok {
			return combo, true
		}
	}
	return nil, false
}

// search extends picked with members drawn from candidates[start:] until the
// target size is reached, visiting index combinations in lexicographic
// order.
func (s ExhaustiveStrategy) search(candidates []model.Candidate, q Query, picked []model.Candidate, start, size int) (model.Combination, bool) {
	if len(picked) == size {
		subsetsEvaluated.Inc()
		combo := model.Combination(append([]model.Candidate(nil), picked...))
		if Satisfies(combo, q) {
			return combo, true
		}
		return nil, false
	}
	for i := start; i <= len(candidates)-(size-len(picked)); i++ {
		if combo, ok := s.search(candidates, q, append(picked, candidates[i]), i+1, size); ok {
			return combo, true
		}
	}
	return nil, false
}
