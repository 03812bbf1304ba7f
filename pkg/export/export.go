// Package export renders decision log records for downstream reporting.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/steelworks-io/uplift/core/plan/logging"
)

// WriteJSON writes the decision records to w in JSON format.
func WriteJSON(w io.Writer, records []logging.Record) error {
	enc := json.NewEncoder(w)
	return enc.Encode(records)
}

// WriteCSV writes the decision records to w as CSV, one row per decision.
func WriteCSV(w io.Writer, records []logging.Record) error {
	cw := csv.NewWriter(w)
	header := []string{"timestamp", "plan_id", "strategy", "feasible", "required_tonnes", "achieved_tonnes", "capex_usd", "payback_months", "plants", "breaches"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Timestamp.Format(time.RFC3339),
			r.PlanID,
			r.Strategy,
			strconv.FormatBool(r.Feasible),
			strconv.FormatInt(r.RequiredIncrease, 10),
			strconv.FormatInt(r.AchievedIncrease, 10),
			strconv.FormatInt(r.TotalCapexUSD, 10),
			strconv.FormatFloat(r.PaybackMonths, 'f', -1, 64),
			strings.Join(r.PlantIDs, "+"),
			strings.Join(r.Breaches, ";"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
