package plan

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	plansTotal        *prometheus.CounterVec
	breachesTotal     *prometheus.CounterVec
	subsetsEvaluated  prometheus.Counter
	selectionDuration prometheus.Histogram
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, *prometheus.CounterVec, prometheus.Counter, prometheus.Histogram) {
	plans := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uplift_plans_total",
			Help: "Number of planning decisions issued",
		},
		[]string{"strategy"},
	)
	breaches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uplift_constraint_breaches_total",
			Help: "Constraint breaches reported by best-effort decisions",
		},
		[]string{"breach"},
	)
	subsets := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "uplift_subsets_evaluated_total",
			Help: "Candidate combinations evaluated across all strategies",
		},
	)
	dur := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "uplift_selection_duration_seconds",
			Help:    "Wall time of one selection pass through the strategy chain",
			Buckets: prometheus.DefBuckets,
		},
	)
	return plans, breaches, subsets, dur
}

func init() {
	plansTotal, breachesTotal, subsetsEvaluated, selectionDuration = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers planning metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(plansTotal, breachesTotal, subsetsEvaluated, selectionDuration)
}

// ResetMetrics reinitializes metric collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	plansTotal, breachesTotal, subsetsEvaluated, selectionDuration = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
