package mqtt

import (
	"context"
	"encoding/json"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/steelworks-io/uplift/core/model"
	"github.com/steelworks-io/uplift/infra/logger"
)

// envelope is the wire format site agents answer a discovery probe with.
// Kind is one of "plant", "port" or "energy".
type envelope struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// probe is the broadcast message that opens a discovery cycle. Agents echo
// the probe ID so stale responses can be told apart.
type probe struct {
	ProbeID string `json:"probe_id"`
	Time    int64  `json:"timestamp"`
}

// PahoSiteDiscovery collects plant and provider records over MQTT. It
// publishes a probe on a broadcast topic and gathers typed responses from
// the response topic for a short period.
type PahoSiteDiscovery struct {
	cli           paho.Client
	probeTopic    string
	responseTopic string
	log           logger.Logger
}

// NewPahoSiteDiscovery connects to the broker and returns a discovery
// instance.
func NewPahoSiteDiscovery(cfg Config) (*PahoSiteDiscovery, error) {
	cfg.SetDefaults()
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}

	d := &PahoSiteDiscovery{
		probeTopic:    cfg.ProbeTopic,
		responseTopic: cfg.ResponseTopic,
		log:           logger.New("site_discovery"),
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		d.log.Errorf("connection lost: %v", err)
	}
	cli := paho.NewClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	d.cli = cli
	return d, nil
}

// Discover broadcasts a probe and collects site responses until the timeout.
func (d *PahoSiteDiscovery) Discover(ctx context.Context, timeout time.Duration) (model.SiteSnapshot, error) {
	var snap model.SiteSnapshot
	responses := make(chan envelope, 64)

	if token := d.cli.Subscribe(d.responseTopic, 0, func(_ paho.Client, m paho.Message) {
		var env envelope
		if err := json.Unmarshal(m.Payload(), &env); err != nil {
			d.log.Errorf("invalid discovery payload: %v", err)
			return
		}
		select {
		case responses <- env:
		default:
		}
	}); token.Wait() && token.Error() != nil {
		return snap, token.Error()
	}

	p, err := json.Marshal(probe{ProbeID: uuid.NewString(), Time: time.Now().UnixMilli()})
	if err != nil {
		return snap, err
	}
	if token := d.cli.Publish(d.probeTopic, 0, false, p); token.Wait() && token.Error() != nil {
		_ = d.cli.Unsubscribe(d.responseTopic)
		return snap, token.Error()
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
loop:
	for {
		select {
		case env := <-responses:
			d.collect(&snap, env)
		case <-ctx.Done():
			break loop
		case <-timer.C:
			break loop
		}
	}

	if token := d.cli.Unsubscribe(d.responseTopic); token.Wait() && token.Error() != nil {
		d.log.Errorf("unsubscribe error: %v", token.Error())
	}
	return snap, nil
}

func (d *PahoSiteDiscovery) collect(snap *model.SiteSnapshot, env envelope) {
	switch env.Kind {
	case "plant":
		var p model.Plant
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			d.log.Errorf("invalid plant record: %v", err)
			return
		}
		snap.Plants = append(snap.Plants, p)
	case "port":
		var u model.PortUnit
		if err := json.Unmarshal(env.Payload, &u); err != nil {
			d.log.Errorf("invalid port record: %v", err)
			return
		}
		snap.PortUnits = append(snap.PortUnits, u)
	case "energy":
		var u model.EnergyUnit
		if err := json.Unmarshal(env.Payload, &u); err != nil {
			d.log.Errorf("invalid energy record: %v", err)
			return
		}
		snap.EnergyUnits = append(snap.EnergyUnits, u)
	default:
		d.log.Warnf("unknown discovery record kind %q", env.Kind)
	}
}

// Close disconnects from the broker.
func (d *PahoSiteDiscovery) Close() error {
	if d.cli != nil && d.cli.IsConnected() {
		d.cli.Disconnect(250)
	}
	return nil
}

// MockDiscovery is a SiteDiscovery used in tests.
type MockDiscovery struct {
	Snapshot model.SiteSnapshot
}

func (m MockDiscovery) Discover(ctx context.Context, timeout time.Duration) (model.SiteSnapshot, error) {
	_ = ctx
	_ = timeout
	return m.Snapshot, nil
}

func (MockDiscovery) Close() error { return nil }
