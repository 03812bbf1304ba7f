package model

import "fmt"

// Candidate is a scored plant eligible for uplift selection. All fields come
// from the scorer; the selection engine treats them as immutable inputs and
// never recomputes a single candidate's payback.
type Candidate struct {
	ID string `json:"id"`
	// FeasibleIncrease is the additional annual production the plant can
	// absorb, in tonnes.
	FeasibleIncrease int64 `json:"feasible_increase_tonnes"`
	// EnergyRequiredMW is the extra grid draw needed to run the uplift.
	EnergyRequiredMW float64 `json:"energy_required_mw"`
	CapexUSD         int64   `json:"capex_usd"`
	MonthlyIncomeUSD float64 `json:"monthly_income_usd"`
	PaybackMonths    float64 `json:"payback_months"`

	// Explain carries the scorer's explainability payload. It is passed
	// through to the decision unchanged.
	Explain map[string]any `json:"explain,omitempty"`
}

// Validate checks that the candidate carries an identifier.
func (c Candidate) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("candidate id must not be empty")
	}
	return nil
}

// UsableIncrease returns the feasible increase with negative values clamped
// to zero, the form used by combination arithmetic.
func (c Candidate) UsableIncrease() int64 {
	if c.FeasibleIncrease < 0 {
		return 0
	}
	return c.FeasibleIncrease
}
