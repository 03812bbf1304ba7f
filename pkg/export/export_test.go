package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/steelworks-io/uplift/core/plan/logging"
)

func sampleRecords() []logging.Record {
	return []logging.Record{
		{
			Timestamp:        time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			PlanID:           "p1",
			Strategy:         "exhaustive",
			Feasible:         true,
			RequiredIncrease: 400,
			AchievedIncrease: 400,
			TotalCapexUSD:    1000,
			PaybackMonths:    10,
			PlantIDs:         []string{"SP1", "SP2"},
		},
		{
			Timestamp: time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC),
			PlanID:    "p2",
			Strategy:  "best_effort",
			PlantIDs:  []string{"SP3"},
			Breaches:  []string{"energy_shortfall", "port_shortfall"},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRecords()); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "timestamp,plan_id,strategy") {
		t.Errorf("unexpected header %s", lines[0])
	}
	if !strings.Contains(lines[1], "SP1+SP2") {
		t.Errorf("plants not joined: %s", lines[1])
	}
	if !strings.Contains(lines[2], "energy_shortfall;port_shortfall") {
		t.Errorf("breaches not joined: %s", lines[2])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleRecords()); err != nil {
		t.Fatalf("write json: %v", err)
	}
	var out []logging.Record
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 2 || out[0].PlanID != "p1" {
		t.Fatalf("round trip mismatch: %v", out)
	}
}
