package router

import (
	"net/http"

	"card-fraud-pipeline/internal/interfaces/http/handler"
)

// Router holds all HTTP handlers
type Router struct {
	mux            *http.ServeMux
	scoringHandler *handler.ScoringHandler
	healthHandler  *handler.HealthHandler
}

// NewRouter creates a new router with all routes configured
func NewRouter(
	scoringHandler *handler.ScoringHandler,
	healthHandler *handler.HealthHandler,
) *Router {
	r := &Router{
		mux:            http.NewServeMux(),
		scoringHandler: scoringHandler,
		healthHandler:  healthHandler,
	}
	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	// Health endpoints
	r.mux.HandleFunc("GET /health", r.healthHandler.Health)
	r.mux.HandleFunc("GET /ready", r.healthHandler.Ready)
	r.mux.HandleFunc("GET /live", r.healthHandler.Live)

	// Metrics
	r.mux.Handle("GET /metrics", handler.MetricsHandler())

	// Scoring endpoints
	r.mux.HandleFunc("POST /api/v1/fraud/score", r.scoringHandler.ScoreTransaction)
	r.mux.HandleFunc("POST /api/v1/fraud/score/batch", r.scoringHandler.ScoreBatch)

	// Legacy route kept for clients of the original deployment
	r.mux.HandleFunc("POST /detect", r.scoringHandler.ScoreTransaction)
}

// ServeHTTP implements http.Handler
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// Add CORS headers
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if req.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.mux.ServeHTTP(w, req)
}

// Handler returns the http.Handler
func (r *Router) Handler() http.Handler {
	return r
}
