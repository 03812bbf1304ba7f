package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/steelworks-io/uplift/api/plans"
	"github.com/steelworks-io/uplift/config"
	"github.com/steelworks-io/uplift/core/model"
	"github.com/steelworks-io/uplift/core/plan"
	"github.com/steelworks-io/uplift/infra/mqtt"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Logging.Backend = "none"
	cfg.Scorer.SetDefaults()
	cfg.Planner.SetDefaults()
	cfg.API.SetDefaults()
	return cfg
}

func testSnapshot() model.SiteSnapshot {
	return model.SiteSnapshot{
		Plants: []model.Plant{{
			ID:                 "SP1",
			CapacityTPA:        2_000_000,
			ProductionTPA:      1_000_000,
			EnergyAtCapacityMW: 10,
			CapexPerTonneUSD:   0.5,
			MarginFrac:         0.2,
		}},
		PortUnits:   []model.PortUnit{{ID: "berth-01", CapacityTonnes: 1_000_000, ThroughputTonnes: 200_000}},
		EnergyUnits: []model.EnergyUnit{{ID: "feeder-01", AvailableMW: 5}},
	}
}

func TestService_PlanInlineRecords(t *testing.T) {
	svc, err := New(testConfig())
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	snap := testSnapshot()
	d, err := svc.Plan(context.Background(), plans.PlanRequest{
		RequiredIncrease: 400_000,
		Plants:           snap.Plants,
		PortUnits:        snap.PortUnits,
		EnergyUnits:      snap.EnergyUnits,
	})
	require.NoError(t, err)
	require.True(t, d.Feasible)
	require.Equal(t, "SP1", d.Plants)
	require.Equal(t, int64(400_000), d.AchievedIncrease)
	require.Equal(t, int64(800_000), d.Justification.PortHeadroomTonnes)
	require.Equal(t, 5.0, d.Justification.EnergyHeadroomMW)
}

func TestService_PlanViaDiscovery(t *testing.T) {
	svc, err := New(testConfig())
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()
	svc.SetDiscovery(mqtt.MockDiscovery{Snapshot: testSnapshot()})

	d, err := svc.Plan(context.Background(), plans.PlanRequest{RequiredIncrease: 400_000})
	require.NoError(t, err)
	require.True(t, d.Feasible)
	require.Equal(t, []string{"SP1"}, d.PlantIDs)
}

func TestService_PlanDefaultPaybackCeiling(t *testing.T) {
	svc, err := New(testConfig())
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	snap := testSnapshot()
	// scored payback is 20 months; the configured default ceiling of 36
	// applies when the request omits one
	d, err := svc.Plan(context.Background(), plans.PlanRequest{
		RequiredIncrease: 400_000,
		Plants:           snap.Plants,
		PortUnits:        snap.PortUnits,
		EnergyUnits:      snap.EnergyUnits,
	})
	require.NoError(t, err)
	require.True(t, d.Feasible)

	d, err = svc.Plan(context.Background(), plans.PlanRequest{
		RequiredIncrease: 400_000,
		MaxPaybackMonths: 10,
		Plants:           snap.Plants,
		PortUnits:        snap.PortUnits,
		EnergyUnits:      snap.EnergyUnits,
	})
	require.NoError(t, err)
	require.False(t, d.Feasible)
	require.Equal(t, "best_effort", d.Strategy)
}

func TestService_PlanNoRecords(t *testing.T) {
	svc, err := New(testConfig())
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	_, err = svc.Plan(context.Background(), plans.PlanRequest{RequiredIncrease: 100})
	require.ErrorIs(t, err, plan.ErrNoCandidates)
}
