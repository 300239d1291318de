package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"card-fraud-pipeline/internal/application/scoring"
	"card-fraud-pipeline/internal/infrastructure/http/router"
	"card-fraud-pipeline/internal/infrastructure/ml"
	"card-fraud-pipeline/internal/infrastructure/rules"
	"card-fraud-pipeline/internal/interfaces/http/handler"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	ruleEngine := rules.NewEngine(decimal.NewFromInt(1000), 60*time.Second)
	scorer := ml.NewAnomalyScorer(100, 0.02, 42)

	scoringHandler := handler.NewScoringHandler(
		scoring.NewScoreTransactionUseCase(ruleEngine),
		scoring.NewScoreBatchUseCase(ruleEngine, scorer),
	)
	healthHandler := handler.NewHealthHandler("test")

	srv := httptest.NewServer(router.NewRouter(scoringHandler, healthHandler))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestScoreTransactionEndpoint(t *testing.T) {
	srv := newServer(t)

	t.Run("fraudulent verdict", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/api/v1/fraud/score", `{"CardNumber": "4539148803436467", "Amount": 1500}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			CardNumber string `json:"CardNumber"`
			LuhnValid  bool   `json:"LuhnValid"`
			HighAmount bool   `json:"HighAmount"`
			Fraudulent bool   `json:"Fraudulent"`
		}
		decodeBody(t, resp, &body)

		assert.Equal(t, "4539148803436467", body.CardNumber)
		assert.True(t, body.LuhnValid)
		assert.True(t, body.HighAmount)
		assert.True(t, body.Fraudulent)
	})

	t.Run("clean verdict under threshold", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/api/v1/fraud/score", `{"CardNumber": "4539148803436467", "Amount": 500}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Fraudulent bool `json:"Fraudulent"`
		}
		decodeBody(t, resp, &body)
		assert.False(t, body.Fraudulent)
	})

	t.Run("legacy detect route", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/detect", `{"CardNumber": "4539148803436467", "Amount": 1500}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("non-numeric amount is a client error", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/api/v1/fraud/score", `{"CardNumber": "4539148803436467", "Amount": "abc"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Contains(t, body, "error")

		// The process survives the bad request.
		resp = postJSON(t, srv.URL+"/api/v1/fraud/score", `{"CardNumber": "4539148803436467", "Amount": 1500}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing amount is a client error", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/api/v1/fraud/score", `{"CardNumber": "4539148803436467"}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed body is a client error", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/api/v1/fraud/score", `{not json`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestScoreBatchEndpoint(t *testing.T) {
	srv := newServer(t)

	t.Run("scores a full batch", func(t *testing.T) {
		var rows []string
		base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		for i := 0; i < 10; i++ {
			ts := base.Add(time.Duration(i) * 5 * time.Minute)
			rows = append(rows, fmt.Sprintf(
				`{"CardNumber": "4539148803436467", "Amount": %d, "Timestamp": %q}`,
				50+i, ts.Format(time.RFC3339)))
		}
		body := fmt.Sprintf(`{"transactions": [%s]}`, strings.Join(rows, ","))

		resp := postJSON(t, srv.URL+"/api/v1/fraud/score/batch", body)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out struct {
			Count   int `json:"count"`
			Records []struct {
				LuhnValid      bool  `json:"LuhnValid"`
				SuspiciousTime *bool `json:"SuspiciousTime"`
				Anomaly        *bool `json:"Anomaly"`
			} `json:"records"`
		}
		decodeBody(t, resp, &out)

		assert.Equal(t, 10, out.Count)
		require.Len(t, out.Records, 10)
		assert.Nil(t, out.Records[0].SuspiciousTime, "first record stays undefined")
		require.NotNil(t, out.Records[1].SuspiciousTime)
		assert.False(t, *out.Records[1].SuspiciousTime, "5 minute gaps are not suspicious")
		require.NotNil(t, out.Records[0].Anomaly, "batch mode labels every record")
	})

	t.Run("empty batch is a client error", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/api/v1/fraud/score/batch", `{"transactions": []}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("single record cannot fit a model", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/api/v1/fraud/score/batch",
			`{"transactions": [{"CardNumber": "4539148803436467", "Amount": 10}]}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestHealthEndpoints(t *testing.T) {
	srv := newServer(t)

	for _, path := range []string{"/health", "/ready", "/live"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
