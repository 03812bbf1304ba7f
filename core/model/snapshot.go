package model

// SiteSnapshot bundles the raw records one discovery cycle collected from
// the field: plants to score and the provider units the headroom
// aggregators reduce.
type SiteSnapshot struct {
	Plants      []Plant      `json:"plants"`
	PortUnits   []PortUnit   `json:"port_units"`
	EnergyUnits []EnergyUnit `json:"energy_units"`
}
