package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var transactionsScored = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "fraud",
		Name:      "transactions_scored_total",
		Help:      "Transactions scored, by pipeline mode and verdict.",
	},
	[]string{"mode", "verdict"},
)

// MetricsHandler returns the Prometheus metrics handler
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
