package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction represents a single card transaction flowing through the
// fraud scoring pipeline. It is constructed from an external record,
// enriched in place by the rule engine and (in batch mode) the anomaly
// scorer, and discarded once its verdict has been emitted. Nothing about
// a Transaction survives a pipeline invocation.
type Transaction struct {
	// Identity
	ID uuid.UUID `json:"id"`

	// Input fields
	CardNumber string          `json:"card_number"`
	Amount     decimal.Decimal `json:"amount"` // Using decimal for financial precision
	Timestamp  *time.Time      `json:"timestamp,omitempty"`

	// Derived fields - set by the pipeline, never by callers
	LuhnValid  bool `json:"luhn_valid"`
	HighAmount bool `json:"high_amount"`

	// TimeGapSeconds is the gap to the chronologically preceding record
	// in the same batch. Nil for the first record and in online mode,
	// where no prior record exists.
	TimeGapSeconds *float64 `json:"time_gap_seconds,omitempty"`

	// SuspiciousTime is only defined when a preceding record exists in a
	// timestamp-ordered batch. Nil means undefined, not false.
	SuspiciousTime *bool `json:"suspicious_time,omitempty"`

	// Anomaly is the isolation forest outlier label. Batch mode only;
	// nil when no model was fit. Reported independently of Fraudulent.
	Anomaly *bool `json:"anomaly,omitempty"`

	// Fraudulent is the rule-based verdict. Derived purely from the
	// other fields.
	Fraudulent bool `json:"fraudulent"`
}

// New creates a transaction from raw input fields.
func New(cardNumber string, amount decimal.Decimal) *Transaction {
	return &Transaction{
		ID:         uuid.New(),
		CardNumber: cardNumber,
		Amount:     amount,
	}
}

// NewAt creates a transaction with a known timestamp, as read from a
// batch dataset.
func NewAt(cardNumber string, amount decimal.Decimal, ts time.Time) *Transaction {
	t := New(cardNumber, amount)
	t.Timestamp = &ts
	return t
}

// HasTimestamp reports whether time-based rules can apply to this record.
func (t *Transaction) HasTimestamp() bool {
	return t.Timestamp != nil
}

// IsSuspiciousTime reports the time-gap flag, treating undefined as false.
func (t *Transaction) IsSuspiciousTime() bool {
	return t.SuspiciousTime != nil && *t.SuspiciousTime
}

// IsAnomaly reports the outlier label, treating unscored as false.
func (t *Transaction) IsAnomaly() bool {
	return t.Anomaly != nil && *t.Anomaly
}

// Validate performs basic validation on the input fields.
func (t *Transaction) Validate() error {
	if t.ID == uuid.Nil {
		return ErrInvalidTransactionID
	}
	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}
