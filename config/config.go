package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds optional defaults for the tradebook commands. Command line
// flags always win over values loaded from a file.
type Config struct {
	Ledger LedgerConfig `json:"ledger" yaml:"ledger"`
	Sizing SizingConfig `json:"sizing" yaml:"sizing"`
	Log    LogConfig    `json:"log" yaml:"log"`
}

// LedgerConfig says where the trade ledger lives.
type LedgerConfig struct {
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty" validate:"omitempty,oneof=csv sqlite"`
}

// SizingConfig holds defaults for the card command. A zero bankroll means
// the bankroll must be given on the command line.
type SizingConfig struct {
	Bankroll float64 `json:"bankroll" yaml:"bankroll" validate:"gte=0"`
	RiskPct  float64 `json:"risk_pct" yaml:"risk_pct" validate:"gt=0,lte=100"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level" validate:"required,oneof=trace debug info warn warning error fatal panic"`
}

var validate = validator.New()

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
// and validates it.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Start from defaults so a partial file only overrides what it sets.
	cfg := Default()

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile writes the configuration as YAML for .yaml/.yml paths and as
// indented JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks field constraints and reports every failing field by its
// config key, e.g. "sizing.risk_pct".
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation failed: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", configKey(fe.Namespace()), fe.Tag(), fe.Value()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

var keyNames = map[string]string{
	"Ledger":   "ledger",
	"Sizing":   "sizing",
	"Log":      "log",
	"Path":     "path",
	"Backend":  "backend",
	"Bankroll": "bankroll",
	"RiskPct":  "risk_pct",
	"Level":    "level",
}

// configKey turns "Config.Sizing.RiskPct" into "sizing.risk_pct".
func configKey(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 0 && parts[0] == "Config" {
		parts = parts[1:]
	}
	for i, p := range parts {
		if k, ok := keyNames[p]; ok {
			parts[i] = k
		}
	}
	return strings.Join(parts, ".")
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{},
		Sizing: SizingConfig{
			RiskPct: 1.0,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}
