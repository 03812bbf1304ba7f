package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/steelworks-io/uplift/app"
	"github.com/steelworks-io/uplift/config"
	"github.com/steelworks-io/uplift/core/plan/logging"
	"github.com/steelworks-io/uplift/pkg/export"
)

var (
	exportFormat string
	exportOutput string
	exportSince  string
	exportPlant  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the decision log for reporting",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv or json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only decisions issued after this RFC3339 time")
	exportCmd.Flags().StringVar(&exportPlant, "plant", "", "only decisions naming this plant")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := app.OpenDecisionStore(cfg)
	if err != nil {
		return fmt.Errorf("open decision store: %w", err)
	}
	if store == nil {
		return fmt.Errorf("decision logging is disabled in the configuration")
	}
	defer func() { _ = store.Close() }()

	q := logging.Query{PlantID: exportPlant}
	if exportSince != "" {
		start, err := time.Parse(time.RFC3339, exportSince)
		if err != nil {
			return fmt.Errorf("parse --since: %w", err)
		}
		q.Start = start
	}
	records, err := store.Query(cmd.Context(), q)
	if err != nil {
		return fmt.Errorf("query decision store: %w", err)
	}

	out := os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	switch exportFormat {
	case "csv":
		return export.WriteCSV(out, records)
	case "json":
		return export.WriteJSON(out, records)
	default:
		return fmt.Errorf("unknown format %q", exportFormat)
	}
}
