package ml

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"

	"card-fraud-pipeline/internal/domain/transaction"
)

// AnomalyScorer flags outlier transaction amounts within a batch using
// an isolation forest. The model is fit fresh on every batch and owned
// exclusively by that call; there is no pre-trained or persisted model.
//
// Because the model is re-fit per batch, the label for an identical
// record can differ across batches with different compositions. That is
// inherent to in-batch scoring, not a defect. For a fixed seed and a
// fixed batch the labels are fully deterministic.
type AnomalyScorer struct {
	estimators    int
	contamination float64
	seed          int64
}

// NewAnomalyScorer creates a scorer. The seed is an explicit
// configuration value rather than global random state so that results
// are reproducible.
func NewAnomalyScorer(estimators int, contamination float64, seed int64) *AnomalyScorer {
	return &AnomalyScorer{
		estimators:    estimators,
		contamination: contamination,
		seed:          seed,
	}
}

// Score fits a forest on the batch's amounts and sets the Anomaly label
// on every transaction. The label is reported independently of the
// rule-based Fraudulent verdict. A batch of fewer than two records
// cannot produce a meaningful model and is rejected.
func (s *AnomalyScorer) Score(txs []*transaction.Transaction) error {
	if len(txs) < 2 {
		return ErrTooFewRecords
	}

	// Feature: the amount alone. Transactions carry a single numeric
	// input field, so there is nothing further to fall back to.
	features := make([][]float64, len(txs))
	for i, tx := range txs {
		features[i] = []float64{tx.Amount.InexactFloat64()}
	}

	rng := rand.New(rand.NewSource(s.seed))
	forest := fitForest(features, s.estimators, rng)
	scores := forest.scores(features)

	threshold := s.cutoff(scores)
	for i, tx := range txs {
		outlier := scores[i] > threshold
		tx.Anomaly = &outlier
	}

	return nil
}

// cutoff returns the score above which a point counts as an outlier:
// the interpolated quantile leaving the configured contamination
// fraction on the high side. Interpolation keeps the cutoff below the
// maximum score on small batches, so a clear outlier is still flagged
// when the batch holds fewer than 1/contamination records.
func (s *AnomalyScorer) cutoff(scores []float64) float64 {
	sorted := append([]float64(nil), scores...)
	sort.Float64s(sorted)
	return stat.Quantile(1-s.contamination, stat.LinInterp, sorted, nil)
}
