package plan

import (
	"time"
)

// Query bounds a single planning invocation. All fields are plain numeric
// bounds; only the candidate list itself is validated by the engine.
type Query struct {
	// RequiredIncrease is the uplift target in tonnes per year.
	RequiredIncrease int64 `json:"required_increase_tonnes"`
	// PortHeadroom is the unused logistics throughput in tonnes per year.
	PortHeadroom int64 `json:"port_headroom_tonnes"`
	// EnergyHeadroomMW is the spare grid capacity available to the uplift.
	EnergyHeadroomMW float64 `json:"energy_headroom_mw"`
	// MaxPaybackMonths caps the combined payback of the chosen combination.
	MaxPaybackMonths float64 `json:"max_payback_months"`
}

// Breach names a constraint the best-effort strategy found violated.
type Breach string

const (
	// BreachInsufficientIncrease reports that no single plant can carry the
	// full uplift target.
	BreachInsufficientIncrease Breach = "insufficient_single_plant_increase"
	// BreachEnergyShortfall reports that the grid headroom cannot cover the
	// required draw.
	BreachEnergyShortfall Breach = "energy_shortfall"
	// BreachPortShortfall reports that port throughput cannot absorb the
	// extra shipments.
	BreachPortShortfall Breach = "port_shortfall"
)

var mitigations = map[Breach]string{
	BreachInsufficientIncrease: "combine multiple plants or extend timeline",
	BreachEnergyShortfall:      "phase energy allocation; procure temporary energy",
	BreachPortShortfall:        "stagger shipments; temporary staging",
}

// Mitigation returns the fixed remediation hint for the breach.
func (b Breach) Mitigation() string { return mitigations[b] }

// AllocationRecord is the per-plant share of a distributed uplift target.
type AllocationRecord struct {
	PlantID string `json:"plant_id"`
	// Allocated never exceeds Feasible.
	Allocated int64 `json:"allocated_tonnes"`
	Feasible  int64 `json:"feasible_tonnes"`
	// CapexShareUSD is the plant's capital cost scaled by its allocated
	// fraction of the feasible increase.
	CapexShareUSD int64 `json:"capex_share_usd"`
}

// Justification records the headroom figures the decision was made against
// and, for best-effort outcomes, the breached constraints.
type Justification struct {
	PortHeadroomTonnes int64    `json:"port_headroom_tonnes"`
	EnergyHeadroomMW   float64  `json:"energy_headroom_mw"`
	Breaches           []Breach `json:"breaches"`
	Mitigations        []string `json:"mitigations"`
}

// Decision is the outcome of one planning invocation. A feasible decision
// carries an empty breach list; a best-effort decision reports the breached
// constraints as data, never as an error.
type Decision struct {
	PlanID   string `json:"plan_id"`
	Strategy string `json:"strategy"`
	Feasible bool   `json:"feasible"`

	Plants   string   `json:"plants"`
	PlantIDs []string `json:"plant_ids"`

	AchievedIncrease int64   `json:"achieved_increase_tonnes"`
	TotalCapexUSD    int64   `json:"total_capex_usd"`
	PaybackMonths    float64 `json:"payback_months"`
	EnergyRequiredMW float64 `json:"energy_required_mw"`

	Summary    string   `json:"summary"`
	ActionPlan string   `json:"action_plan"`
	Rationale  []string `json:"rationale,omitempty"`

	Justification Justification      `json:"justification"`
	Explain       map[string]any     `json:"explain,omitempty"`
	Allocations   []AllocationRecord `json:"allocations,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}
