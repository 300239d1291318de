package transaction

import "errors"

var (
	// ErrInvalidTransactionID is returned when the transaction ID is invalid
	ErrInvalidTransactionID = errors.New("invalid transaction ID")

	// ErrMissingAmount is returned when a scoring request omits the amount
	ErrMissingAmount = errors.New("transaction amount is required")

	// ErrInvalidAmount is returned when the amount is not numeric
	ErrInvalidAmount = errors.New("invalid transaction amount")

	// ErrNegativeAmount is returned when transaction amount is negative
	ErrNegativeAmount = errors.New("transaction amount cannot be negative")
)
