package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/steelworks-io/uplift/core/metrics"
	"github.com/steelworks-io/uplift/core/scorer"
	"github.com/steelworks-io/uplift/infra/mqtt"
)

type Config struct {
	MQTT    mqtt.Config    `json:"mqtt"`
	Metrics metrics.Config `json:"metrics"`
	Scorer  scorer.Config  `json:"scorer"`
	Planner PlannerConfig  `json:"planner"`
	Logging LoggingConfig  `json:"logging"`
	API     APIConfig      `json:"api"`
}

// PlannerConfig defines engine-level settings.
type PlannerConfig struct {
	// DefaultMaxPaybackMonths is applied when a query omits the ceiling.
	DefaultMaxPaybackMonths float64 `json:"default_max_payback_months"`
	// DiscoveryTimeoutSeconds bounds one MQTT site discovery cycle.
	DiscoveryTimeoutSeconds int `json:"discovery_timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *PlannerConfig) SetDefaults() {
	if c.DefaultMaxPaybackMonths == 0 {
		c.DefaultMaxPaybackMonths = 36
	}
	if c.DiscoveryTimeoutSeconds == 0 {
		c.DiscoveryTimeoutSeconds = 2
	}
}

// APIConfig defines the HTTP API listener settings. Token, when set, is
// required as a bearer credential for the decision log endpoint.
type APIConfig struct {
	Addr  string `json:"addr"`
	Token string `json:"token"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("UPLIFT_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "uplift_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.MQTT.SetDefaults()
	cfg.Scorer.SetDefaults()
	cfg.Planner.SetDefaults()
	cfg.Logging.SetDefaults()
	cfg.API.SetDefaults()
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
