package model

import "fmt"

// Plant is a raw facility record before scoring. Only the scorer consumes
// it; the selection engine works on Candidates.
type Plant struct {
	ID            string `json:"id"`
	CapacityTPA   int64  `json:"capacity_tpa"`
	ProductionTPA int64  `json:"production_tpa"`
	// UtilizationHistory holds recent utilization samples in [0,1]. When
	// empty the scorer falls back to ProductionTPA / CapacityTPA.
	UtilizationHistory []float64 `json:"utilization_history,omitempty"`
	// EnergyAtCapacityMW is the plant's grid draw when running flat out.
	EnergyAtCapacityMW float64 `json:"energy_at_capacity_mw"`
	CapexPerTonneUSD   float64 `json:"capex_per_tonne_usd"`
	// MarginFrac is the operating margin applied to the revenue proxy.
	MarginFrac float64 `json:"margin_frac"`

	Metadata map[string]string `json:"metadata,omitempty"`
}

// Validate checks that the plant record is sound. Capacity must be positive.
func (p Plant) Validate() error {
	if p.CapacityTPA <= 0 {
		return fmt.Errorf("plant capacity must be positive")
	}
	return nil
}

// Utilization returns the point-in-time utilization derived from current
// production, clamped to [0,1].
func (p Plant) Utilization() float64 {
	if p.CapacityTPA <= 0 {
		return 0
	}
	u := float64(p.ProductionTPA) / float64(p.CapacityTPA)
	if u < 0 {
		return 0
	}
	if u > 1 {
		return 1
	}
	return u
}
