package scorer

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/steelworks-io/uplift/core/model"
)

// Scorer turns raw plant records into scored uplift candidates. The
// selection engine consumes its output without further validation.
type Scorer interface {
	Score(p model.Plant) model.Candidate
}

// Config carries the tunable constants of the default scorer. None of these
// are validated business rules; deployments tune them per market.
type Config struct {
	// RevenueProxyUSD approximates the annual revenue of one baseline
	// plant running flat out, used to derive the income of an uplift.
	RevenueProxyUSD float64 `json:"revenue_proxy_usd"`
	// HighUtilizationCap and LowUtilizationCap bound the feasible increase
	// as a fraction of capacity, depending on which side of
	// UtilizationKnee the plant's utilization sits.
	HighUtilizationCap float64 `json:"high_utilization_cap"`
	LowUtilizationCap  float64 `json:"low_utilization_cap"`
	UtilizationKnee    float64 `json:"utilization_knee"`
	// CapacityBaselineTPA is the fixed capacity the energy draw and income
	// proxy are scaled against.
	CapacityBaselineTPA int64 `json:"capacity_baseline_tpa"`
	// DefaultMarginFrac replaces a missing or non-positive plant margin.
	DefaultMarginFrac float64 `json:"default_margin_frac"`
}

// SetDefaults applies the stock constants.
func (c *Config) SetDefaults() {
	if c.RevenueProxyUSD == 0 {
		c.RevenueProxyUSD = 3_000_000
	}
	if c.HighUtilizationCap == 0 {
		c.HighUtilizationCap = 0.20
	}
	if c.LowUtilizationCap == 0 {
		c.LowUtilizationCap = 0.30
	}
	if c.UtilizationKnee == 0 {
		c.UtilizationKnee = 0.85
	}
	if c.CapacityBaselineTPA == 0 {
		c.CapacityBaselineTPA = 2_000_000
	}
	if c.DefaultMarginFrac == 0 {
		c.DefaultMarginFrac = 0.15
	}
}

// DefaultScorer scores plants with the utilization-capped feasibility model.
type DefaultScorer struct {
	cfg Config
}

// NewDefaultScorer returns a scorer with zero-value config fields replaced
// by the stock constants.
func NewDefaultScorer(cfg Config) *DefaultScorer {
	cfg.SetDefaults()
	return &DefaultScorer{cfg: cfg}
}

// Score implements Scorer. The feasible increase is a utilization-dependent
// fraction of capacity, never more than the plant's unused capacity; energy
// and income scale with the feasible fraction of the capacity baseline.
func (s *DefaultScorer) Score(p model.Plant) model.Candidate {
	util := p.Utilization()
	if len(p.UtilizationHistory) > 0 {
		util = stat.Mean(p.UtilizationHistory, nil)
	}
	capFrac := s.cfg.LowUtilizationCap
	if util > s.cfg.UtilizationKnee {
		capFrac = s.cfg.HighUtilizationCap
	}

	feasible := int64(float64(p.CapacityTPA) * capFrac)
	if headroom := p.CapacityTPA - p.ProductionTPA; headroom >= 0 && feasible > headroom {
		feasible = headroom
	}
	if feasible < 0 {
		feasible = 0
	}

	baseline := float64(s.cfg.CapacityBaselineTPA)
	scale := float64(feasible) / baseline
	energy := p.EnergyAtCapacityMW * scale

	margin := p.MarginFrac
	if margin <= 0 {
		margin = s.cfg.DefaultMarginFrac
	}
	income := s.cfg.RevenueProxyUSD / 12 * margin * scale
	capex := int64(math.Round(p.CapexPerTonneUSD * float64(feasible)))

	var payback float64
	if income > 0 {
		payback = float64(capex) / income
	}

	return model.Candidate{
		ID:               p.ID,
		FeasibleIncrease: feasible,
		EnergyRequiredMW: energy,
		CapexUSD:         capex,
		MonthlyIncomeUSD: income,
		PaybackMonths:    payback,
		Explain: map[string]any{
			"utilization":     util,
			"feasibility_cap": capFrac,
			"margin_frac":     margin,
			"baseline_tpa":    s.cfg.CapacityBaselineTPA,
		},
	}
}

// ScoreAll scores a batch of plants, preserving input order. Plants failing
// validation are skipped.
func (s *DefaultScorer) ScoreAll(plants []model.Plant) []model.Candidate {
	out := make([]model.Candidate, 0, len(plants))
	for _, p := range plants {
		if err := p.Validate(); err != nil {
			continue
		}
		out = append(out, s.Score(p))
	}
	return out
}
