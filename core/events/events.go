package events

// QueryEvent is published when a planning query enters the engine.
type QueryEvent struct {
	RequiredIncrease int64
	PortHeadroom     int64
	EnergyHeadroomMW float64
	MaxPaybackMonths float64
}

// StrategyEvent traces one attempt of the strategy chain. Action is one of
// "attempt", "accept" or "miss".
type StrategyEvent struct {
	Strategy string
	Action   string
	Err      error
}

// DecisionEvent is published after a decision has been built.
type DecisionEvent struct {
	PlanID   string
	Strategy string
	Feasible bool
	Plants   string
}
