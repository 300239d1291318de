package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"card-fraud-pipeline/internal/application/dto"
	"card-fraud-pipeline/internal/application/scoring"
	"card-fraud-pipeline/internal/domain/transaction"
	"card-fraud-pipeline/internal/infrastructure/ml"
)

// maxBatchSize caps HTTP batch requests; offline datasets go through
// the CLI path instead.
const maxBatchSize = 1000

// ScoringHandler handles fraud scoring HTTP requests. Every per-request
// failure is converted to an error response; nothing a client sends can
// take the process down.
type ScoringHandler struct {
	scoreTransaction *scoring.ScoreTransactionUseCase
	scoreBatch       *scoring.ScoreBatchUseCase
}

// NewScoringHandler creates a new scoring handler.
func NewScoringHandler(scoreTransaction *scoring.ScoreTransactionUseCase, scoreBatch *scoring.ScoreBatchUseCase) *ScoringHandler {
	return &ScoringHandler{
		scoreTransaction: scoreTransaction,
		scoreBatch:       scoreBatch,
	}
}

// ScoreTransaction handles POST /api/v1/fraud/score
func (h *ScoringHandler) ScoreTransaction(w http.ResponseWriter, r *http.Request) {
	var req dto.ScoreTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Covers non-numeric amounts such as "abc".
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.scoreTransaction.Execute(r.Context(), req)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Scoring failed: "+err.Error())
		return
	}

	transactionsScored.WithLabelValues("online", verdictLabel(resp.Fraudulent)).Inc()
	writeJSON(w, http.StatusOK, resp)
}

// ScoreBatch handles POST /api/v1/fraud/score/batch
func (h *ScoringHandler) ScoreBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.BatchScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.Transactions) == 0 {
		writeError(w, http.StatusBadRequest, "No transactions provided")
		return
	}
	if len(req.Transactions) > maxBatchSize {
		writeError(w, http.StatusBadRequest, "Batch exceeds maximum size")
		return
	}

	resp, err := h.scoreBatch.ExecuteRequest(r.Context(), req)
	if err != nil {
		switch {
		case isValidationError(err):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ml.ErrTooFewRecords):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Batch scoring failed: "+err.Error())
		}
		return
	}

	for _, record := range resp.Records {
		transactionsScored.WithLabelValues("batch", verdictLabel(record.Fraudulent)).Inc()
	}
	writeJSON(w, http.StatusOK, resp)
}

func isValidationError(err error) bool {
	return errors.Is(err, transaction.ErrMissingAmount) ||
		errors.Is(err, transaction.ErrInvalidAmount) ||
		errors.Is(err, transaction.ErrNegativeAmount)
}

func verdictLabel(fraudulent bool) string {
	if fraudulent {
		return "fraudulent"
	}
	return "clean"
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
