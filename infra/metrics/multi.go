package metrics

import coremetrics "github.com/steelworks-io/uplift/core/metrics"

// MultiSink fans decision records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.DecisionSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.DecisionSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordDecision forwards the records to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordDecision(recs []coremetrics.PlantDecision) error {
	for _, s := range m.Sinks {
		if err := s.RecordDecision(recs); err != nil {
			return err
		}
	}
	return nil
}

// RecordDiscovery forwards discovery events to sinks that support them.
func (m *MultiSink) RecordDiscovery(ev coremetrics.DiscoveryEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.DiscoveryRecorder); ok {
			if err := rec.RecordDiscovery(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
