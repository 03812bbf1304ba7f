package plans

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/steelworks-io/uplift/core/model"
	"github.com/steelworks-io/uplift/core/plan"
	"github.com/steelworks-io/uplift/core/plan/logging"
)

// PlanRequest is the JSON body of POST /api/plans. When the plant list is
// omitted the service falls back to its discovery source for site records.
type PlanRequest struct {
	RequiredIncrease int64   `json:"required_increase_tonnes"`
	MaxPaybackMonths float64 `json:"max_payback_months,omitempty"`

	Plants      []model.Plant      `json:"plants,omitempty"`
	PortUnits   []model.PortUnit   `json:"port_units,omitempty"`
	EnergyUnits []model.EnergyUnit `json:"energy_units,omitempty"`
}

// Planner runs one planning query end to end: record collection, scoring,
// headroom aggregation and selection.
type Planner interface {
	Plan(ctx context.Context, req PlanRequest) (plan.Decision, error)
}

// NewPlanHandler returns an HTTP handler accepting planning requests via
// POST /api/plans.
func NewPlanHandler(p Planner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req PlanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		decision, err := p.Plan(r.Context(), req)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, plan.ErrNoCandidates) {
				status = http.StatusBadRequest
			}
			http.Error(w, err.Error(), status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(decision); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// NewLogHandler returns an HTTP handler exposing issued decisions via
// GET /api/plans/logs. A non-empty token is enforced as a bearer credential.
func NewLogHandler(store logging.DecisionStore, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		q := logging.Query{}
		if s := r.URL.Query().Get("start"); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				q.Start = t
			}
		}
		if s := r.URL.Query().Get("end"); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				q.End = t
			}
		}
		q.PlantID = r.URL.Query().Get("plant_id")
		q.FeasibleOnly = r.URL.Query().Get("feasible_only") == "true"
		records, err := store.Query(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
