package store

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"options-wizard/internal/journal"
	"options-wizard/internal/pricing"
)

// Rule set identifiers selectable via strategy.rule_set.
const (
	RuleSetSentiment  = "sentiment"
	RuleSetVolatility = "volatility"
)

var ErrUnknownRuleSet = errors.New("unknown rule set")

type IndexConfig struct {
	Spot       float64 `yaml:"spot" json:"spot"`
	StrikeStep float64 `yaml:"strike_step" json:"strike_step"`
}

type Config struct {
	Server struct {
		Addr               string `yaml:"addr"`
		ReadTimeoutSeconds int    `yaml:"read_timeout_seconds"`
	} `yaml:"server"`
	Strategy struct {
		RuleSet string `yaml:"rule_set"`
	} `yaml:"strategy"`
	Pricing struct {
		RiskFreeRate    float64 `yaml:"risk_free_rate"`
		Volatility      float64 `yaml:"volatility"`
		DaysToExpiry    float64 `yaml:"days_to_expiry"`
		PayoffHalfWidth float64 `yaml:"payoff_half_width"`
		PayoffStep      float64 `yaml:"payoff_step"`
		SmileSlope      float64 `yaml:"smile_slope"`
	} `yaml:"pricing"`
	Journal struct {
		Enabled       bool   `yaml:"enabled"`
		Dir           string `yaml:"dir"`
		RetentionDays int    `yaml:"retention_days"`
		CompressCron  string `yaml:"compress_cron"`
	} `yaml:"journal"`
	DefaultIndex string                 `yaml:"default_index"`
	Indices      map[string]IndexConfig `yaml:"indices"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = 10
	}
	if c.Strategy.RuleSet == "" {
		c.Strategy.RuleSet = RuleSetSentiment
	}
	if c.Pricing.RiskFreeRate == 0 {
		c.Pricing.RiskFreeRate = 0.06
	}
	if c.Pricing.Volatility == 0 {
		c.Pricing.Volatility = 0.20
	}
	if c.Pricing.DaysToExpiry == 0 {
		c.Pricing.DaysToExpiry = 7
	}
	if c.Pricing.PayoffHalfWidth == 0 {
		c.Pricing.PayoffHalfWidth = pricing.DefaultHalfWidth
	}
	if c.Pricing.PayoffStep == 0 {
		c.Pricing.PayoffStep = pricing.DefaultStep
	}
	if c.Pricing.SmileSlope == 0 {
		c.Pricing.SmileSlope = pricing.DefaultSmileSlope
	}
	if len(c.Indices) == 0 {
		c.Indices = map[string]IndexConfig{
			"NIFTY":     {Spot: 22000, StrikeStep: 50},
			"BANKNIFTY": {Spot: 48000, StrikeStep: 100},
			"SENSEX":    {Spot: 73000, StrikeStep: 100},
		}
	}
	if c.DefaultIndex == "" {
		c.DefaultIndex = "NIFTY"
	}
	if c.Journal.Dir == "" {
		c.Journal.Dir = "logs/recommendations"
	}
	if c.Journal.CompressCron == "" {
		c.Journal.CompressCron = journal.DefaultCompactionSpec
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("WIZARD_RULE_SET"); v != "" {
		c.Strategy.RuleSet = v
	}
	if v := os.Getenv("WIZARD_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("WIZARD_JOURNAL_DIR"); v != "" {
		c.Journal.Dir = v
		c.Journal.Enabled = true
	}
	if v := os.Getenv("WIZARD_RISK_FREE_RATE"); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil {
			// Validate rejects a non-finite rate.
			c.Pricing.RiskFreeRate = r
		}
	}
}

func (c *Config) Validate() error {
	switch c.Strategy.RuleSet {
	case RuleSetSentiment, RuleSetVolatility:
	default:
		return fmt.Errorf("strategy.rule_set: %w %q", ErrUnknownRuleSet, c.Strategy.RuleSet)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"risk_free_rate", c.Pricing.RiskFreeRate},
		{"volatility", c.Pricing.Volatility},
		{"days_to_expiry", c.Pricing.DaysToExpiry},
		{"payoff_half_width", c.Pricing.PayoffHalfWidth},
		{"payoff_step", c.Pricing.PayoffStep},
		{"smile_slope", c.Pricing.SmileSlope},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("pricing.%s must be finite, got %v", f.name, f.v)
		}
	}
	if c.Pricing.Volatility <= 0 {
		return fmt.Errorf("pricing.volatility must be positive, got %.4f", c.Pricing.Volatility)
	}
	if c.Pricing.PayoffStep <= 0 || c.Pricing.PayoffHalfWidth < 0 {
		return fmt.Errorf("pricing.payoff_step must be positive and payoff_half_width non-negative")
	}
	for name, idx := range c.Indices {
		if idx.Spot <= 0 || idx.StrikeStep <= 0 {
			return fmt.Errorf("indices.%s: spot and strike_step must be positive", name)
		}
	}
	if _, ok := c.Index(c.DefaultIndex); !ok {
		return fmt.Errorf("default_index %q is not configured", c.DefaultIndex)
	}
	return nil
}

// Index looks up an index case-insensitively.
func (c *Config) Index(name string) (IndexConfig, bool) {
	idx, ok := c.Indices[strings.ToUpper(strings.TrimSpace(name))]
	return idx, ok
}

// IndexNames returns the configured index names in sorted order.
func (c *Config) IndexNames() []string {
	names := make([]string, 0, len(c.Indices))
	for n := range c.Indices {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LoadConfig reads path, fills defaults, applies environment overrides and
// validates. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	var c Config

	b, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(b) > 0 {
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	upper := make(map[string]IndexConfig, len(c.Indices))
	for n, idx := range c.Indices {
		upper[strings.ToUpper(n)] = idx
	}
	c.Indices = upper
	c.DefaultIndex = strings.ToUpper(c.DefaultIndex)

	c.applyDefaults()
	c.applyEnv()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}
