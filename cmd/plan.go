package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/steelworks-io/uplift/api/plans"
	"github.com/steelworks-io/uplift/app"
	"github.com/steelworks-io/uplift/config"
)

var scenarioPath string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run a one-shot planning query from a scenario file",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&scenarioPath, "scenario", "f", "scenario.json", "scenario file with plants, providers and the query bounds")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	// One-shot runs stay local: no broker, no decision log side effects.
	cfg.MQTT.Broker = ""
	cfg.Logging.Backend = "none"

	data, err := os.ReadFile(scenarioPath)
	if err != nil {
		return fmt.Errorf("read scenario: %w", err)
	}
	var req plans.PlanRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("parse scenario: %w", err)
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	decision, err := svc.Plan(context.Background(), req)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(decision)
}
