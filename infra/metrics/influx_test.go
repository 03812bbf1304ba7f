package metrics

import (
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/steelworks-io/uplift/core/metrics"
)

func TestInfluxSink_RecordDecision(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	defer sink.Close()
	now := time.Now()
	rec := coremetrics.PlantDecision{
		PlanID:          "p1",
		Strategy:        "exhaustive",
		PlantID:         "SP1",
		AllocatedTonnes: 400_000,
		CapexShareUSD:   800,
		Feasible:        true,
		PaybackMonths:   10,
		Time:            now,
	}
	if err := sink.RecordDecision([]coremetrics.PlantDecision{rec}); err != nil {
		t.Fatalf("record error: %v", err)
	}

	p := write.NewPointWithMeasurement("uplift_decision").
		AddTag("plan_id", "p1").
		AddTag("plant_id", "SP1").
		AddTag("strategy", "exhaustive").
		AddTag("feasible", "true").
		AddField("allocated_tonnes", int64(400_000)).
		AddField("capex_share_usd", int64(800)).
		AddField("payback_months", 10.0).
		SetTime(now)
	expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if strings.TrimSpace(body) != expected {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(srv.URL, "tok", "org", "bucket")
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}

func TestRound3(t *testing.T) {
	if got := round3(10.12345); got != 10.123 {
		t.Errorf("round3: %f", got)
	}
	if got := round3(math.Inf(1)); got != 0 {
		t.Errorf("infinite payback must flatten to 0, got %f", got)
	}
	if got := round3(math.NaN()); got != 0 {
		t.Errorf("NaN must flatten to 0, got %f", got)
	}
}
