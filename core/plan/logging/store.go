package logging

import (
	"context"
	"time"
)

// Record is the persisted trace of one planning decision.
type Record struct {
	Timestamp        time.Time        `json:"timestamp"`
	PlanID           string           `json:"plan_id"`
	Strategy         string           `json:"strategy"`
	Feasible         bool             `json:"feasible"`
	RequiredIncrease int64            `json:"required_increase_tonnes"`
	PlantIDs         []string         `json:"plant_ids"`
	AchievedIncrease int64            `json:"achieved_increase_tonnes"`
	TotalCapexUSD    int64            `json:"total_capex_usd"`
	PaybackMonths    float64          `json:"payback_months"`
	Breaches         []string         `json:"breaches,omitempty"`
	Allocations      map[string]int64 `json:"allocations,omitempty"`
}

// Query filters stored records.
type Query struct {
	Start        time.Time
	End          time.Time
	PlantID      string
	FeasibleOnly bool
}

// DecisionStore persists decision records.
type DecisionStore interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}
