package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the metrics block.
const (
	EnvMetricsBackend = "METRICS_BACKEND"
	EnvPushgatewayURL = "PUSHGATEWAY_URL"
	EnvDatadogAddr    = "DD_AGENT_ADDR"
)

// Load reads a run file. Files ending in .yaml or .yml are decoded as YAML,
// everything else as JSON. Environment overrides are applied afterwards.
func Load(path string) (Pipeline, error) {
	var p Pipeline
	b, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("config: read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &p)
	default:
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		err = dec.Decode(&p)
	}
	if err != nil {
		return p, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if p.Parser.Options == nil {
		p.Parser.Options = Options{}
	}
	p.ApplyEnv(os.Getenv)
	return p, nil
}

// ApplyEnv overrides the metrics block from the environment. Unset or empty
// variables leave the file values alone.
func (p *Pipeline) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvMetricsBackend); v != "" {
		p.Metrics.Backend = v
	}
	if v := getenv(EnvPushgatewayURL); v != "" {
		p.Metrics.PushgatewayURL = v
	}
	if v := getenv(EnvDatadogAddr); v != "" {
		p.Metrics.DatadogAddr = v
	}
}
