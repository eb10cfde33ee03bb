// Package config provides configuration management for the analysis tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Risk     RiskConfig     `mapstructure:"risk"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Store    StoreConfig    `mapstructure:"store"`
}

// AnalysisConfig holds payoff-calculation defaults.
type AnalysisConfig struct {
	PriceRangePct float64 `mapstructure:"price_range_pct"` // half-width of the sampled price range
	CurvePoints   int     `mapstructure:"curve_points"`    // sampling intervals on the payoff curve
}

// RiskConfig holds risk-engine defaults.
type RiskConfig struct {
	AccountSize   float64 `mapstructure:"account_size"`
	RiskPct       float64 `mapstructure:"risk_pct"`
	ATRMultiplier float64 `mapstructure:"atr_multiplier"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
	Path    string `mapstructure:"path"`
}

// StoreConfig holds analysis-journal configuration.
type StoreConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/optionist"
	}
	return filepath.Join(home, ".config", "optionist")
}

// Load loads configuration from the specified directory. If configDir is
// empty, the default config directory is used. A missing config file is
// not an error; defaults apply.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("analysis.price_range_pct", 0.30)
	v.SetDefault("analysis.curve_points", 200)
	v.SetDefault("risk.account_size", 100000.0)
	v.SetDefault("risk.risk_pct", 0.01)
	v.SetDefault("risk.atr_multiplier", 2.0)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", false)
	v.SetDefault("logging.path", filepath.Join(configDir, "logs", "optionist.log"))
	v.SetDefault("store.enabled", true)
	v.SetDefault("store.path", filepath.Join(configDir, "optionist.db"))
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPTIONIST_ACCOUNT_SIZE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Risk.AccountSize = f
		}
	}
	if v := os.Getenv("OPTIONIST_RISK_PCT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Risk.RiskPct = f
		}
	}
	if v := os.Getenv("OPTIONIST_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Analysis.PriceRangePct <= 0 || c.Analysis.PriceRangePct > 1 {
		return fmt.Errorf("analysis.price_range_pct must be in (0, 1]")
	}
	if c.Analysis.CurvePoints < 2 {
		return fmt.Errorf("analysis.curve_points must be at least 2")
	}
	if c.Risk.RiskPct <= 0 || c.Risk.RiskPct > 0.10 {
		return fmt.Errorf("risk.risk_pct must be in (0, 0.10]")
	}
	if c.Risk.AccountSize < 0 {
		return fmt.Errorf("risk.account_size must be non-negative")
	}
	if c.Risk.ATRMultiplier <= 0 {
		return fmt.Errorf("risk.atr_multiplier must be positive")
	}
	return nil
}
