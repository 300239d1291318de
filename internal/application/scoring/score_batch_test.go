package scoring

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"card-fraud-pipeline/internal/infrastructure/dataset"
	"card-fraud-pipeline/internal/infrastructure/ml"
)

func newBatchUseCase() *ScoreBatchUseCase {
	return NewScoreBatchUseCase(newRuleEngine(), ml.NewAnomalyScorer(100, 0.02, 42))
}

func TestExecuteDataset(t *testing.T) {
	in := strings.NewReader(
		"CardNumber,Amount,Timestamp\n" +
			"4539148803436467,100,2024-03-01T12:00:00Z\n" +
			"4539148803436467,1500,2024-03-01T12:00:30Z\n" +
			"4111111111111111,200,2024-03-01T12:05:00Z\n")

	ds, err := dataset.Read(in)
	require.NoError(t, err)

	require.NoError(t, newBatchUseCase().ExecuteDataset(context.Background(), ds))

	first, second, third := ds.Transactions[0], ds.Transactions[1], ds.Transactions[2]

	assert.True(t, first.LuhnValid)
	assert.Nil(t, first.SuspiciousTime)
	assert.False(t, first.Fraudulent)

	assert.True(t, second.HighAmount)
	require.NotNil(t, second.SuspiciousTime)
	assert.True(t, *second.SuspiciousTime)
	assert.True(t, second.Fraudulent)

	require.NotNil(t, third.SuspiciousTime)
	assert.False(t, *third.SuspiciousTime)
	assert.False(t, third.Fraudulent)

	for _, tx := range ds.Transactions {
		assert.NotNil(t, tx.Anomaly, "batch mode labels every record")
	}
}

func TestExecuteDatasetWithoutAmountColumn(t *testing.T) {
	in := strings.NewReader(
		"CardNumber\n" +
			"4539148803436467\n" +
			"4111111111111111\n")

	ds, err := dataset.Read(in)
	require.NoError(t, err)

	require.NoError(t, newBatchUseCase().ExecuteDataset(context.Background(), ds))

	for _, tx := range ds.Transactions {
		assert.True(t, tx.LuhnValid)
		assert.False(t, tx.HighAmount)
		assert.Nil(t, tx.Anomaly, "no amount column, no anomaly model")
		assert.False(t, tx.Fraudulent)
	}
}

func TestExecuteDatasetDegenerateBatch(t *testing.T) {
	in := strings.NewReader("CardNumber,Amount\n4539148803436467,10\n")

	ds, err := dataset.Read(in)
	require.NoError(t, err)

	assert.ErrorIs(t, newBatchUseCase().ExecuteDataset(context.Background(), ds), ml.ErrTooFewRecords)
}
