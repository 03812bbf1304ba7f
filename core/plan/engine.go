package plan

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/steelworks-io/uplift/core/events"
	"github.com/steelworks-io/uplift/core/logger"
	"github.com/steelworks-io/uplift/core/metrics"
	"github.com/steelworks-io/uplift/core/model"
	"github.com/steelworks-io/uplift/core/plan/logging"
	"github.com/steelworks-io/uplift/internal/eventbus"
)

// ErrNoCandidates is returned when Select is invoked with an empty
// candidate list, the engine's one hard precondition.
var ErrNoCandidates = errors.New("plan: candidate list is empty")

// Engine runs a planning query through an ordered chain of selection
// strategies and falls back to a best-effort single-plant decision when none
// of them finds a combination meeting every constraint. One invocation makes
// exactly one pass over the chain; infeasibility is reported as data on the
// decision, never as an error.
//
// The engine holds no per-query state. Concurrent Select calls are safe as
// long as each is given independently owned inputs.
type Engine struct {
	strategies []Strategy
	logger     logger.Logger
	sink       metrics.DecisionSink
	bus        eventbus.EventBus

	mu    sync.Mutex
	store logging.DecisionStore
}

// NewEngine creates an engine running the given strategy chain. When
// strategies is nil the default exhaustive-then-greedy chain is used. The
// sink and bus may be nil.
func NewEngine(strategies []Strategy, sink metrics.DecisionSink, bus eventbus.EventBus, log logger.Logger) (*Engine, error) {
	if log == nil {
		return nil, fmt.Errorf("plan: nil logger provided to NewEngine")
	}
	if strategies == nil {
		strategies = []Strategy{ExhaustiveStrategy{}, GreedyStrategy{}}
	}
	return &Engine{strategies: strategies, sink: sink, bus: bus, logger: log}, nil
}

// SetDecisionStore configures the store used to persist issued decisions.
func (e *Engine) SetDecisionStore(store logging.DecisionStore) {
	e.mu.Lock()
	e.store = store
	e.mu.Unlock()
}

// Close releases resources held by the engine.
func (e *Engine) Close() error {
	if e.bus != nil {
		e.bus.Close()
	}
	e.mu.Lock()
	store := e.store
	e.mu.Unlock()
	if store != nil {
		return store.Close()
	}
	return nil
}

// Select finds a set of plants covering the uplift target within the query
// bounds. Strategies are tried strictly in order; the first to produce a
// satisfying combination wins and its members receive their proportional
// allocation. When the whole chain misses, a best-effort decision naming the
// breached constraints is returned instead.
func (e *Engine) Select(candidates []model.Candidate, q Query) (Decision, error) {
	if len(candidates) == 0 {
		return Decision{}, ErrNoCandidates
	}
	start := time.Now()
	e.publish(events.QueryEvent{
		RequiredIncrease: q.RequiredIncrease,
		PortHeadroom:     q.PortHeadroom,
		EnergyHeadroomMW: q.EnergyHeadroomMW,
		MaxPaybackMonths: q.MaxPaybackMonths,
	})

	var decision Decision
	matched := false
	for _, s := range e.strategies {
		e.publish(events.StrategyEvent{Strategy: s.Name(), Action: "attempt"})
		combo, ok := s.Select(candidates, q)
		if !ok {
			e.logger.Debugf("%s strategy found no satisfying combination", s.Name())
			e.publish(events.StrategyEvent{Strategy: s.Name(), Action: "miss"})
			continue
		}
		e.publish(events.StrategyEvent{Strategy: s.Name(), Action: "accept"})
		decision = e.feasibleDecision(s.Name(), combo, q)
		matched = true
		break
	}
	if !matched {
		decision = e.bestEffortDecision(candidates, q)
	}

	selectionDuration.Observe(time.Since(start).Seconds())
	plansTotal.WithLabelValues(decision.Strategy).Inc()
	for _, b := range decision.Justification.Breaches {
		breachesTotal.WithLabelValues(string(b)).Inc()
	}
	e.logger.Infof("plan %s issued via %s (feasible=%t, plants=%s)", decision.PlanID, decision.Strategy, decision.Feasible, decision.Plants)
	e.record(decision, q)
	e.publish(events.DecisionEvent{
		PlanID:   decision.PlanID,
		Strategy: decision.Strategy,
		Feasible: decision.Feasible,
		Plants:   decision.Plants,
	})
	return decision, nil
}

func (e *Engine) publish(ev eventbus.Event) {
	if e.bus != nil {
		e.bus.Publish(ev)
	}
}

// feasibleDecision distributes the target across the accepted combination
// and assembles the decision record.
func (e *Engine) feasibleDecision(strategy string, combo model.Combination, q Query) Decision {
	allocations := Allocate(combo, q.RequiredIncrease)
	var achieved int64
	for _, a := range allocations {
		achieved += a.Allocated
	}
	label := combo.Label()
	energy := combo.TotalEnergyMW()
	payback := combo.CombinedPayback()

	return Decision{
		PlanID:           uuid.NewString(),
		Strategy:         strategy,
		Feasible:         true,
		Plants:           label,
		PlantIDs:         combo.IDs(),
		AchievedIncrease: achieved,
		TotalCapexUSD:    combo.TotalCapexUSD(),
		PaybackMonths:    payback,
		EnergyRequiredMW: energy,
		Summary:          fmt.Sprintf("uplift of %d t/y across %s satisfies the energy, port and payback constraints", achieved, label),
		ActionPlan:       fmt.Sprintf("commission %d t/y of additional production across %s; reserve %.1f MW of grid headroom and %d t/y of port throughput", achieved, label, energy, combo.TotalShipment()),
		Rationale: []string{
			fmt.Sprintf("combined feasible increase %d t/y covers the %d t/y target", combo.TotalIncrease(), q.RequiredIncrease),
			fmt.Sprintf("energy requirement %.1f MW fits within %.1f MW of headroom", energy, q.EnergyHeadroomMW),
			fmt.Sprintf("shipment volume %d t/y fits within %d t/y of port headroom", combo.TotalShipment(), q.PortHeadroom),
			fmt.Sprintf("combined payback of %.1f months is under the %.1f month ceiling", payback, q.MaxPaybackMonths),
		},
		Justification: Justification{
			PortHeadroomTonnes: q.PortHeadroom,
			EnergyHeadroomMW:   q.EnergyHeadroomMW,
			Breaches:           []Breach{},
			Mitigations:        []string{},
		},
		Explain:     explainPayload(combo),
		Allocations: allocations,
		Timestamp:   time.Now().UTC(),
	}
}

// bestEffortDecision picks the single strongest candidate and reports every
// constraint it cannot meet on its own, each with its fixed mitigation.
func (e *Engine) bestEffortDecision(candidates []model.Candidate, q Query) Decision {
	top := bestEffortPick(candidates)
	breaches := evaluateBreaches(top, q)
	mits := make([]string, 0, len(breaches))
	rationale := make([]string, 0, len(breaches))
	for _, b := range breaches {
		mits = append(mits, b.Mitigation())
		rationale = append(rationale, fmt.Sprintf("constraint %s breached: %s", b, b.Mitigation()))
	}

	summary := fmt.Sprintf("no plant combination satisfies every constraint; best effort selects %s for %d t/y of uplift", top.ID, top.UsableIncrease())
	action := "review breached constraints before committing"
	if len(breaches) == 0 {
		action = fmt.Sprintf("physical constraints hold for %s; revisit the payback ceiling", top.ID)
	}

	return Decision{
		PlanID:           uuid.NewString(),
		Strategy:         "best_effort",
		Feasible:         false,
		Plants:           top.ID,
		PlantIDs:         []string{top.ID},
		AchievedIncrease: top.UsableIncrease(),
		TotalCapexUSD:    top.CapexUSD,
		PaybackMonths:    top.PaybackMonths,
		EnergyRequiredMW: top.EnergyRequiredMW,
		Summary:          summary,
		ActionPlan:       action,
		Rationale:        rationale,
		Justification: Justification{
			PortHeadroomTonnes: q.PortHeadroom,
			EnergyHeadroomMW:   q.EnergyHeadroomMW,
			Breaches:           breaches,
			Mitigations:        mits,
		},
		Explain:   explainPayload(model.Combination{top}),
		Timestamp: time.Now().UTC(),
	}
}

func explainPayload(combo model.Combination) map[string]any {
	var payload map[string]any
	for _, m := range combo {
		if m.Explain == nil {
			continue
		}
		if payload == nil {
			payload = make(map[string]any, len(combo))
		}
		payload[m.ID] = m.Explain
	}
	return payload
}

// record persists the decision to the configured sink and store. Failures
// are logged, never propagated: observability must not fail a plan.
func (e *Engine) record(d Decision, q Query) {
	if e.sink != nil {
		recs := make([]metrics.PlantDecision, 0, len(d.Allocations))
		for _, a := range d.Allocations {
			recs = append(recs, metrics.PlantDecision{
				PlanID:          d.PlanID,
				Strategy:        d.Strategy,
				PlantID:         a.PlantID,
				AllocatedTonnes: a.Allocated,
				CapexShareUSD:   a.CapexShareUSD,
				Feasible:        d.Feasible,
				PaybackMonths:   d.PaybackMonths,
				Time:            d.Timestamp,
			})
		}
		if len(recs) == 0 {
			recs = append(recs, metrics.PlantDecision{
				PlanID:          d.PlanID,
				Strategy:        d.Strategy,
				PlantID:         d.Plants,
				AllocatedTonnes: d.AchievedIncrease,
				Feasible:        d.Feasible,
				PaybackMonths:   d.PaybackMonths,
				Time:            d.Timestamp,
			})
		}
		if err := e.sink.RecordDecision(recs); err != nil {
			e.logger.Errorf("decision sink error: %v", err)
		}
	}

	e.mu.Lock()
	store := e.store
	e.mu.Unlock()
	if store == nil {
		return
	}
	rec := logging.Record{
		Timestamp:        d.Timestamp,
		PlanID:           d.PlanID,
		Strategy:         d.Strategy,
		Feasible:         d.Feasible,
		RequiredIncrease: q.RequiredIncrease,
		PlantIDs:         d.PlantIDs,
		AchievedIncrease: d.AchievedIncrease,
		TotalCapexUSD:    d.TotalCapexUSD,
		PaybackMonths:    d.PaybackMonths,
	}
	for _, b := range d.Justification.Breaches {
		rec.Breaches = append(rec.Breaches, string(b))
	}
	if len(d.Allocations) > 0 {
		rec.Allocations = make(map[string]int64, len(d.Allocations))
		for _, a := range d.Allocations {
			rec.Allocations[a.PlantID] = a.Allocated
		}
	}
	if err := store.Append(context.Background(), rec); err != nil {
		e.logger.Errorf("decision store error: %v", err)
	}
}
