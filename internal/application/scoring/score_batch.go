package scoring

import (
	"context"

	"card-fraud-pipeline/internal/application/dto"
	"card-fraud-pipeline/internal/domain/transaction"
	"card-fraud-pipeline/internal/infrastructure/dataset"
	"card-fraud-pipeline/internal/infrastructure/ml"
	"card-fraud-pipeline/internal/infrastructure/rules"
)

// ScoreBatchUseCase runs the full offline pipeline over one in-memory
// batch: rule flags first, then the per-batch anomaly model. The anomaly
// label is reported next to the rule-based verdict; it is deliberately
// not folded into it, so the two signals stay independently auditable.
type ScoreBatchUseCase struct {
	ruleEngine *rules.Engine
	scorer     *ml.AnomalyScorer
}

// NewScoreBatchUseCase creates the batch scoring use case.
func NewScoreBatchUseCase(ruleEngine *rules.Engine, scorer *ml.AnomalyScorer) *ScoreBatchUseCase {
	return &ScoreBatchUseCase{
		ruleEngine: ruleEngine,
		scorer:     scorer,
	}
}

// Execute enriches the batch in place. The anomaly model is fit fresh
// on this batch's amounts and discarded with the call.
func (uc *ScoreBatchUseCase) Execute(ctx context.Context, txs []*transaction.Transaction) error {
	uc.ruleEngine.ApplyBatch(txs)
	return uc.scorer.Score(txs)
}

// ExecuteDataset enriches a loaded dataset. When the source table has
// no Amount column the anomaly model has no feature to fit on, so
// scoring is skipped rather than fit against zero-filled values.
func (uc *ScoreBatchUseCase) ExecuteDataset(ctx context.Context, ds *dataset.Dataset) error {
	uc.ruleEngine.ApplyBatch(ds.Transactions)
	if !ds.HasAmount {
		return nil
	}
	return uc.scorer.Score(ds.Transactions)
}

// ExecuteRequest scores an HTTP batch request and assembles the
// response rows in input order.
func (uc *ScoreBatchUseCase) ExecuteRequest(ctx context.Context, req dto.BatchScoreRequest) (*dto.BatchScoreResponse, error) {
	txs := make([]*transaction.Transaction, 0, len(req.Transactions))
	for _, record := range req.Transactions {
		if err := record.Validate(); err != nil {
			return nil, err
		}
		txs = append(txs, record.ToTransaction())
	}

	if err := uc.Execute(ctx, txs); err != nil {
		return nil, err
	}

	resp := &dto.BatchScoreResponse{
		Records: make([]dto.BatchRecordResult, 0, len(txs)),
		Count:   len(txs),
	}
	for _, tx := range txs {
		resp.Records = append(resp.Records, dto.FromTransaction(tx))
		if tx.Fraudulent {
			resp.FraudulentCount++
		}
		if tx.IsAnomaly() {
			resp.AnomalyCount++
		}
	}

	return resp, nil
}
