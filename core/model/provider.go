package model

// PortUnit is a logistics provider record. Headroom is the berth capacity
// minus the throughput already committed.
type PortUnit struct {
	ID               string `json:"id"`
	CapacityTonnes   int64  `json:"capacity_tonnes"`
	ThroughputTonnes int64  `json:"throughput_tonnes"`
}

// Headroom returns the unused annual throughput of the unit in tonnes.
func (u PortUnit) Headroom() int64 {
	h := u.CapacityTonnes - u.ThroughputTonnes
	if h < 0 {
		return 0
	}
	return h
}

// EnergyUnit is a grid provider record exposing spare generation or
// transmission capacity.
type EnergyUnit struct {
	ID          string  `json:"id"`
	AvailableMW float64 `json:"available_mw"`
}
