package ml

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"card-fraud-pipeline/internal/domain/transaction"
)

func newScorer() *AnomalyScorer {
	return NewAnomalyScorer(100, 0.02, 42)
}

// batchOfAmounts builds a deterministic batch: ordinary amounts between
// 20 and 120 plus the given extras.
func batchOfAmounts(n int, extras ...float64) []*transaction.Transaction {
	txs := make([]*transaction.Transaction, 0, n+len(extras))
	for i := 0; i < n; i++ {
		amount := 20.0 + float64((i*37)%100)
		txs = append(txs, transaction.New("4539148803436467", decimal.NewFromFloat(amount)))
	}
	for _, a := range extras {
		txs = append(txs, transaction.New("4539148803436467", decimal.NewFromFloat(a)))
	}
	return txs
}

func TestScoreFlagsExtremeOutlier(t *testing.T) {
	txs := batchOfAmounts(60, 250000)

	require.NoError(t, newScorer().Score(txs))

	last := txs[len(txs)-1]
	require.NotNil(t, last.Anomaly)
	assert.True(t, *last.Anomaly, "extreme amount should isolate quickly")

	flagged := 0
	for _, tx := range txs {
		require.NotNil(t, tx.Anomaly, "every record in the batch gets a label")
		if *tx.Anomaly {
			flagged++
		}
	}
	assert.LessOrEqual(t, flagged, 3, "contamination of 2%% should flag very few records")
}

func TestScoreDeterministicUnderFixedSeed(t *testing.T) {
	first := batchOfAmounts(40, 80000, 90000)
	second := batchOfAmounts(40, 80000, 90000)

	require.NoError(t, newScorer().Score(first))
	require.NoError(t, newScorer().Score(second))

	for i := range first {
		require.NotNil(t, first[i].Anomaly)
		require.NotNil(t, second[i].Anomaly)
		assert.Equal(t, *first[i].Anomaly, *second[i].Anomaly, "record %d", i)
	}
}

func TestScoreSeedChangesModel(t *testing.T) {
	// Different seeds build different forests. Labels may or may not
	// coincide, but scoring must still succeed and label every record.
	txs := batchOfAmounts(40, 80000)
	require.NoError(t, NewAnomalyScorer(100, 0.02, 7).Score(txs))
	for _, tx := range txs {
		require.NotNil(t, tx.Anomaly)
	}
}

func TestScoreRejectsDegenerateBatch(t *testing.T) {
	assert.ErrorIs(t, newScorer().Score(nil), ErrTooFewRecords)

	one := batchOfAmounts(1)
	assert.ErrorIs(t, newScorer().Score(one), ErrTooFewRecords)
	assert.Nil(t, one[0].Anomaly, "rejected batch stays unlabeled")
}
