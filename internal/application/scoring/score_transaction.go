package scoring

import (
	"context"

	"card-fraud-pipeline/internal/application/dto"
	"card-fraud-pipeline/internal/domain/transaction"
	"card-fraud-pipeline/internal/infrastructure/rules"
)

// ScoreTransactionUseCase evaluates a single incoming transaction
// against the reduced online rule set. There is no batch context, so
// neither the time-gap rule nor the anomaly model applies; the verdict
// is Luhn validity gating the high-amount signal.
//
// Each call constructs and discards its own transaction. No state is
// kept across requests.
type ScoreTransactionUseCase struct {
	ruleEngine *rules.Engine
}

// NewScoreTransactionUseCase creates the online scoring use case.
func NewScoreTransactionUseCase(ruleEngine *rules.Engine) *ScoreTransactionUseCase {
	return &ScoreTransactionUseCase{ruleEngine: ruleEngine}
}

// Execute scores one transaction and returns its verdict.
func (uc *ScoreTransactionUseCase) Execute(ctx context.Context, req dto.ScoreTransactionRequest) (*dto.ScoreTransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tx := transaction.New(req.CardNumber, *req.Amount)
	uc.ruleEngine.EvaluateOnline(tx)

	return &dto.ScoreTransactionResponse{
		CardNumber: tx.CardNumber,
		Amount:     tx.Amount,
		LuhnValid:  tx.LuhnValid,
		HighAmount: tx.HighAmount,
		Fraudulent: tx.Fraudulent,
	}, nil
}
