package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/steelworks-io/uplift/core/model"
)

var siteRng = rand.New(rand.NewSource(time.Now().UnixNano()))

// SiteConfig holds parameters for bulk site generation.
type SiteConfig struct {
	Plants      int
	PortUnits   int
	EnergyUnits int
}

// GenerateSite creates a synthetic snapshot with Plants plant records and
// the requested provider units. Utilization and margins are randomized
// within realistic bands.
func GenerateSite(cfg SiteConfig) model.SiteSnapshot {
	var snap model.SiteSnapshot
	for i := 0; i < cfg.Plants; i++ {
		capacity := int64(1_000_000 + siteRng.Intn(3_000_000))
		util := 0.6 + siteRng.Float64()*0.35
		snap.Plants = append(snap.Plants, model.Plant{
			ID:                 fmt.Sprintf("SP%02d", i+1),
			CapacityTPA:        capacity,
			ProductionTPA:      int64(float64(capacity) * util),
			EnergyAtCapacityMW: 3 + siteRng.Float64()*7,
			CapexPerTonneUSD:   0.4 + siteRng.Float64()*0.4,
			MarginFrac:         0.1 + siteRng.Float64()*0.15,
		})
	}
	for i := 0; i < cfg.PortUnits; i++ {
		capacity := int64(2_000_000 + siteRng.Intn(2_000_000))
		snap.PortUnits = append(snap.PortUnits, model.PortUnit{
			ID:               fmt.Sprintf("berth-%02d", i+1),
			CapacityTonnes:   capacity,
			ThroughputTonnes: int64(float64(capacity) * (0.5 + siteRng.Float64()*0.4)),
		})
	}
	for i := 0; i < cfg.EnergyUnits; i++ {
		snap.EnergyUnits = append(snap.EnergyUnits, model.EnergyUnit{
			ID:          fmt.Sprintf("feeder-%02d", i+1),
			AvailableMW: 2 + siteRng.Float64()*8,
		})
	}
	return snap
}
