package config

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	if _, err := decimal.NewFromString(c.Fraud.HighAmountThreshold); err != nil {
		return errors.New("high_amount_threshold must be numeric")
	}

	if c.Fraud.SuspiciousGap <= 0 {
		return errors.New("suspicious_gap must be positive")
	}

	if c.Anomaly.Estimators <= 0 {
		return errors.New("anomaly estimators must be positive")
	}

	if c.Anomaly.Contamination <= 0 || c.Anomaly.Contamination >= 1 {
		return errors.New("contamination must be between 0 and 1 exclusive")
	}

	return nil
}
