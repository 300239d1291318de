package rules

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"card-fraud-pipeline/internal/domain/card"
	"card-fraud-pipeline/internal/domain/transaction"
)

// Engine applies the deterministic fraud rules: Luhn validity, the
// high-amount threshold and, in batch mode, the time-gap rule. It holds
// only its configured thresholds, so a single instance is safe to share
// across calls.
type Engine struct {
	highAmountThreshold decimal.Decimal
	suspiciousGap       time.Duration
}

// NewEngine creates a rule engine with the given thresholds.
func NewEngine(highAmountThreshold decimal.Decimal, suspiciousGap time.Duration) *Engine {
	return &Engine{
		highAmountThreshold: highAmountThreshold,
		suspiciousGap:       suspiciousGap,
	}
}

// EvaluateOnline runs the reduced single-transaction rule set. With no
// prior record available, the time-gap rule cannot apply, so the verdict
// is Luhn validity gating the high-amount signal.
func (e *Engine) EvaluateOnline(tx *transaction.Transaction) {
	tx.LuhnValid = card.Valid(tx.CardNumber)
	tx.HighAmount = tx.Amount.GreaterThan(e.highAmountThreshold)
	tx.Fraudulent = tx.LuhnValid && tx.HighAmount
}

// ApplyBatch enriches every transaction in the batch with rule flags and
// the rule-based verdict.
//
// The time-gap rule only applies when every record carries a timestamp.
// Gaps are computed over a chronologically sorted view of the batch so
// callers do not have to pre-sort their input; row order in the slice is
// preserved. The chronologically first record has no preceding record,
// so its gap and SuspiciousTime stay undefined.
//
// Verdict policy: a card that fails the Luhn check is never fraudulent,
// regardless of amount or timing. Validity is a gate, not a signal.
func (e *Engine) ApplyBatch(txs []*transaction.Transaction) {
	for _, tx := range txs {
		tx.LuhnValid = card.Valid(tx.CardNumber)
		tx.HighAmount = tx.Amount.GreaterThan(e.highAmountThreshold)
	}

	if allTimestamped(txs) {
		e.applyTimeGaps(txs)
	}

	for _, tx := range txs {
		tx.Fraudulent = tx.LuhnValid && (tx.HighAmount || tx.IsSuspiciousTime())
	}
}

func (e *Engine) applyTimeGaps(txs []*transaction.Transaction) {
	order := make([]int, len(txs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return txs[order[a]].Timestamp.Before(*txs[order[b]].Timestamp)
	})

	for k := 1; k < len(order); k++ {
		prev := txs[order[k-1]]
		cur := txs[order[k]]

		gap := cur.Timestamp.Sub(*prev.Timestamp).Seconds()
		suspicious := gap < e.suspiciousGap.Seconds()

		cur.TimeGapSeconds = &gap
		cur.SuspiciousTime = &suspicious
	}
}

func allTimestamped(txs []*transaction.Transaction) bool {
	if len(txs) == 0 {
		return false
	}
	for _, tx := range txs {
		if !tx.HasTimestamp() {
			return false
		}
	}
	return true
}
