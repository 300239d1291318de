package ml

import "errors"

var (
	// ErrTooFewRecords is returned when a batch is too small to fit an
	// anomaly model against
	ErrTooFewRecords = errors.New("batch has too few records to fit an anomaly model")
)
