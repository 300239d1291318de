package config

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Fraud   FraudConfig   `mapstructure:"fraud"`
	Anomaly AnomalyConfig `mapstructure:"anomaly"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// FraudConfig holds the rule engine thresholds
type FraudConfig struct {
	HighAmountThreshold string        `mapstructure:"high_amount_threshold"` // String for YAML compatibility
	SuspiciousGap       time.Duration `mapstructure:"suspicious_gap"`
}

// GetHighAmountThreshold returns the high amount threshold as decimal
func (c *FraudConfig) GetHighAmountThreshold() decimal.Decimal {
	d, err := decimal.NewFromString(c.HighAmountThreshold)
	if err != nil {
		return decimal.NewFromInt(1000)
	}
	return d
}

// AnomalyConfig holds the isolation forest parameters. The seed is an
// explicit value so batch scoring stays reproducible.
type AnomalyConfig struct {
	Estimators    int     `mapstructure:"estimators"`
	Contamination float64 `mapstructure:"contamination"`
	Seed          int64   `mapstructure:"seed"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Fraud: FraudConfig{
			HighAmountThreshold: "1000",
			SuspiciousGap:       60 * time.Second,
		},
		Anomaly: AnomalyConfig{
			Estimators:    100,
			Contamination: 0.02,
			Seed:          42,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
