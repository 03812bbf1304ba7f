package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/steelworks-io/uplift/api/plans"
	"github.com/steelworks-io/uplift/config"
	"github.com/steelworks-io/uplift/core/headroom"
	coremetrics "github.com/steelworks-io/uplift/core/metrics"
	"github.com/steelworks-io/uplift/core/model"
	"github.com/steelworks-io/uplift/core/plan"
	"github.com/steelworks-io/uplift/core/plan/logging"
	"github.com/steelworks-io/uplift/core/scorer"
	"github.com/steelworks-io/uplift/infra/logger"
	"github.com/steelworks-io/uplift/infra/metrics"
	"github.com/steelworks-io/uplift/infra/mqtt"
	"github.com/steelworks-io/uplift/infra/store"
	"github.com/steelworks-io/uplift/internal/eventbus"
)

// SiteDiscovery collects plant and provider records from the field.
type SiteDiscovery interface {
	Discover(ctx context.Context, timeout time.Duration) (model.SiteSnapshot, error)
	Close() error
}

// Service orchestrates the planning engine, scoring, discovery and the HTTP
// surface.
type Service struct {
	Engine    *plan.Engine
	scorer    scorer.Scorer
	discovery SiteDiscovery
	store     logging.DecisionStore
	sink      coremetrics.DecisionSink
	bus       eventbus.EventBus
	log       logger.Logger
	cfg       *config.Config

	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.DecisionSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket)
		sinks = append(sinks, sink)
	}
	var sink coremetrics.DecisionSink
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New()
	engine, err := plan.NewEngine(nil, sink, bus, logg)
	if err != nil {
		return nil, fmt.Errorf("plan engine: %w", err)
	}

	svc := &Service{
		Engine:      engine,
		scorer:      scorer.NewDefaultScorer(cfg.Scorer),
		sink:        sink,
		bus:         bus,
		log:         logg,
		cfg:         cfg,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}

	decStore, err := OpenDecisionStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("decision store: %w", err)
	}
	if decStore != nil {
		svc.store = decStore
		engine.SetDecisionStore(decStore)
	}

	if cfg.MQTT.Broker != "" {
		disc, err := mqtt.NewPahoSiteDiscovery(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("site discovery: %w", err)
		}
		svc.discovery = disc
	}
	return svc, nil
}

// OpenDecisionStore opens the decision store named by the configuration.
// Returns nil when decision logging is disabled.
func OpenDecisionStore(cfg *config.Config) (logging.DecisionStore, error) {
	switch cfg.Logging.Backend {
	case "jsonl":
		return logging.NewJSONLStore(cfg.Logging.Path)
	case "sqlite":
		return store.NewSQLiteStore(cfg.Logging.Path)
	default:
		return nil, nil
	}
}

// SetDiscovery overrides the discovery source, mainly for tests.
func (s *Service) SetDiscovery(d SiteDiscovery) { s.discovery = d }

// Plan runs one planning query end to end: collect site records, score the
// plants, aggregate the headroom figures and run the selection engine.
func (s *Service) Plan(ctx context.Context, req plans.PlanRequest) (plan.Decision, error) {
	snap := model.SiteSnapshot{
		Plants:      req.Plants,
		PortUnits:   req.PortUnits,
		EnergyUnits: req.EnergyUnits,
	}
	if len(snap.Plants) == 0 && s.discovery != nil {
		timeout := time.Duration(s.cfg.Planner.DiscoveryTimeoutSeconds) * time.Second
		discovered, err := s.discovery.Discover(ctx, timeout)
		if err != nil {
			return plan.Decision{}, fmt.Errorf("site discovery: %w", err)
		}
		snap = discovered
		s.log.Infof("discovered %d plants, %d port units, %d energy units", len(snap.Plants), len(snap.PortUnits), len(snap.EnergyUnits))
		if dr, ok := s.sink.(coremetrics.DiscoveryRecorder); ok {
			if err := dr.RecordDiscovery(coremetrics.DiscoveryEvent{
				Plants:      len(snap.Plants),
				PortUnits:   len(snap.PortUnits),
				EnergyUnits: len(snap.EnergyUnits),
				Time:        time.Now().UTC(),
			}); err != nil {
				s.log.Errorf("discovery metrics error: %v", err)
			}
		}
	}

	candidates := s.score(snap.Plants)
	maxPayback := req.MaxPaybackMonths
	if maxPayback == 0 {
		maxPayback = s.cfg.Planner.DefaultMaxPaybackMonths
	}
	q := plan.Query{
		RequiredIncrease: req.RequiredIncrease,
		PortHeadroom:     headroom.Port(snap.PortUnits),
		EnergyHeadroomMW: headroom.Energy(snap.EnergyUnits),
		MaxPaybackMonths: maxPayback,
	}
	return s.Engine.Select(candidates, q)
}

func (s *Service) score(plants []model.Plant) []model.Candidate {
	if batch, ok := s.scorer.(interface {
		ScoreAll([]model.Plant) []model.Candidate
	}); ok {
		return batch.ScoreAll(plants)
	}
	out := make([]model.Candidate, 0, len(plants))
	for _, p := range plants {
		out = append(out, s.scorer.Score(p))
	}
	return out
}

// Run starts the HTTP API and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/api/plans", plans.NewPlanHandler(s))
	if s.store != nil {
		mux.Handle("/api/plans/logs", plans.NewLogHandler(s.store, s.cfg.API.Token))
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{Addr: s.cfg.API.Addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("api shutdown: %v", err)
		}
	}()
	s.log.Infof("serving planning API on %s", s.cfg.API.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.discovery != nil {
		if err := s.discovery.Close(); err != nil {
			return err
		}
	}
	return s.Engine.Close()
}
