package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/steelworks-io/uplift/core/metrics"
)

// PromSink records planning decisions in Prometheus metrics.
type PromSink struct {
	decisions *prometheus.CounterVec
	allocated *prometheus.CounterVec
	sites     prometheus.Gauge
}

// NewPromSink registers decision metrics on the default Prometheus
// registerer. The Prometheus server is started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.DecisionSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.DecisionSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "uplift_plant_decisions_total",
		Help: "Total number of per-plant decision records",
	}, []string{"plant_id", "strategy", "feasible"})
	allocated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "uplift_allocated_tonnes_total",
		Help: "Tonnes of uplift allocated per plant",
	}, []string{"plant_id"})
	sites := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "uplift_discovered_plants_total",
		Help: "Number of plants seen during the last site discovery",
	})

	if err := reg.Register(decisions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			decisions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(allocated); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			allocated = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(sites); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			sites = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{decisions: decisions, allocated: allocated, sites: sites}, nil
}

// RecordDecision increments the counters for each per-plant record.
func (s *PromSink) RecordDecision(recs []coremetrics.PlantDecision) error {
	for _, r := range recs {
		s.decisions.WithLabelValues(r.PlantID, r.Strategy, strconv.FormatBool(r.Feasible)).Inc()
		if r.AllocatedTonnes > 0 {
			s.allocated.WithLabelValues(r.PlantID).Add(float64(r.AllocatedTonnes))
		}
	}
	return nil
}

// RecordDiscovery sets the gauge to the number of discovered plants.
func (s *PromSink) RecordDiscovery(ev coremetrics.DiscoveryEvent) error {
	if s.sites != nil {
		s.sites.Set(float64(ev.Plants))
	}
	return nil
}
