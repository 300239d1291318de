package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"card-fraud-pipeline/internal/domain/transaction"
)

// ScoreTransactionRequest is the online scoring request body. The field
// names match the wire format of the batch dataset columns. Amount is a
// pointer so a missing field can be told apart from zero; a non-numeric
// amount is rejected during decoding.
type ScoreTransactionRequest struct {
	CardNumber string           `json:"CardNumber"`
	Amount     *decimal.Decimal `json:"Amount"`
}

// Validate checks the request before a transaction is constructed.
func (r *ScoreTransactionRequest) Validate() error {
	if r.Amount == nil {
		return transaction.ErrMissingAmount
	}
	if r.Amount.IsNegative() {
		return transaction.ErrNegativeAmount
	}
	return nil
}

// ScoreTransactionResponse echoes the transaction fields plus the
// online rule flags and verdict.
type ScoreTransactionResponse struct {
	CardNumber string          `json:"CardNumber"`
	Amount     decimal.Decimal `json:"Amount"`
	LuhnValid  bool            `json:"LuhnValid"`
	HighAmount bool            `json:"HighAmount"`
	Fraudulent bool            `json:"Fraudulent"`
}

// BatchScoreRequest carries a whole batch for offline-style scoring
// over HTTP, including the per-batch anomaly model.
type BatchScoreRequest struct {
	Transactions []BatchRecord `json:"transactions"`
}

// BatchRecord is one input row of a batch request.
type BatchRecord struct {
	CardNumber string           `json:"CardNumber"`
	Amount     *decimal.Decimal `json:"Amount"`
	Timestamp  *time.Time       `json:"Timestamp,omitempty"`
}

// Validate checks a single batch row.
func (r *BatchRecord) Validate() error {
	if r.Amount == nil {
		return transaction.ErrMissingAmount
	}
	if r.Amount.IsNegative() {
		return transaction.ErrNegativeAmount
	}
	return nil
}

// ToTransaction builds the domain entity for this row.
func (r *BatchRecord) ToTransaction() *transaction.Transaction {
	if r.Timestamp != nil {
		return transaction.NewAt(r.CardNumber, *r.Amount, *r.Timestamp)
	}
	return transaction.New(r.CardNumber, *r.Amount)
}

// BatchRecordResult is one fully enriched row of a batch response.
// SuspiciousTime and Anomaly are omitted where undefined rather than
// defaulting to false.
type BatchRecordResult struct {
	ID             uuid.UUID       `json:"id"`
	CardNumber     string          `json:"CardNumber"`
	Amount         decimal.Decimal `json:"Amount"`
	Timestamp      *time.Time      `json:"Timestamp,omitempty"`
	LuhnValid      bool            `json:"LuhnValid"`
	HighAmount     bool            `json:"HighAmount"`
	TimeGapSeconds *float64        `json:"TimeGap,omitempty"`
	SuspiciousTime *bool           `json:"SuspiciousTime,omitempty"`
	Fraudulent     bool            `json:"Fraudulent"`
	Anomaly        *bool           `json:"Anomaly,omitempty"`
}

// BatchScoreResponse summarizes an enriched batch.
type BatchScoreResponse struct {
	Records         []BatchRecordResult `json:"records"`
	Count           int                 `json:"count"`
	FraudulentCount int                 `json:"fraudulent_count"`
	AnomalyCount    int                 `json:"anomaly_count"`
}

// FromTransaction copies the enriched fields of a transaction into a
// batch result row.
func FromTransaction(tx *transaction.Transaction) BatchRecordResult {
	return BatchRecordResult{
		ID:             tx.ID,
		CardNumber:     tx.CardNumber,
		Amount:         tx.Amount,
		Timestamp:      tx.Timestamp,
		LuhnValid:      tx.LuhnValid,
		HighAmount:     tx.HighAmount,
		TimeGapSeconds: tx.TimeGapSeconds,
		SuspiciousTime: tx.SuspiciousTime,
		Fraudulent:     tx.Fraudulent,
		Anomaly:        tx.Anomaly,
	}
}
