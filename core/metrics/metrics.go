package metrics

import "time"

// PlantDecision represents one plant's share of an issued decision, the
// granularity at which sinks record planning outcomes.
type PlantDecision struct {
	PlanID          string
	Strategy        string
	PlantID         string
	AllocatedTonnes int64
	CapexShareUSD   int64
	Feasible        bool
	PaybackMonths   float64
	Time            time.Time
}

// DecisionSink records planning decisions for observability purposes.
type DecisionSink interface {
	RecordDecision(records []PlantDecision) error
}

// DiscoveryEvent captures data about one site discovery cycle.
type DiscoveryEvent struct {
	Plants      int
	PortUnits   int
	EnergyUnits int
	Time        time.Time
}

// DiscoveryRecorder is implemented by sinks able to record discovery
// cycles.
type DiscoveryRecorder interface {
	RecordDiscovery(ev DiscoveryEvent) error
}

// NopSink implements DecisionSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordDecision([]PlantDecision) error { return nil }

// Ensure NopSink implements DiscoveryRecorder.
func (NopSink) RecordDiscovery(DiscoveryEvent) error { return nil }
