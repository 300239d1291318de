package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"card-fraud-pipeline/internal/application/scoring"
	"card-fraud-pipeline/internal/infrastructure/dataset"
	"card-fraud-pipeline/internal/infrastructure/http/router"
	"card-fraud-pipeline/internal/infrastructure/ml"
	"card-fraud-pipeline/internal/infrastructure/rules"
	"card-fraud-pipeline/internal/interfaces/http/handler"
	"card-fraud-pipeline/internal/pkg/config"
)

const version = "1.0.0"

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to config file")
	batchPath := flag.String("batch", "", "Score a CSV dataset and write the augmented table to stdout")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Warning: Could not load config file, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize the scoring pipeline. The rule engine and scorer hold
	// only configuration; per-call state (transactions, the fitted
	// model) is owned by each invocation.
	ruleEngine := rules.NewEngine(cfg.Fraud.GetHighAmountThreshold(), cfg.Fraud.SuspiciousGap)
	anomalyScorer := ml.NewAnomalyScorer(cfg.Anomaly.Estimators, cfg.Anomaly.Contamination, cfg.Anomaly.Seed)
	scoreBatch := scoring.NewScoreBatchUseCase(ruleEngine, anomalyScorer)

	// Offline mode: run the batch pipeline over a CSV dataset and exit.
	if *batchPath != "" {
		if err := runBatch(*batchPath, scoreBatch); err != nil {
			log.Fatalf("Batch scoring failed: %v", err)
		}
		return
	}

	log.Printf("Starting Fraud Scoring API v%s", version)
	log.Printf("Server will listen on %s:%d", cfg.Server.Host, cfg.Server.Port)

	scoreTransaction := scoring.NewScoreTransactionUseCase(ruleEngine)

	// Initialize handlers
	scoringHandler := handler.NewScoringHandler(scoreTransaction, scoreBatch)
	healthHandler := handler.NewHealthHandler(version)

	// Create router
	r := router.NewRouter(scoringHandler, healthHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("HTTP server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

// runBatch loads a CSV dataset, runs the full pipeline over it and
// writes the augmented table to stdout. Progress goes to stderr so the
// output stays pipeable.
func runBatch(path string, scoreBatch *scoring.ScoreBatchUseCase) error {
	ds, err := dataset.Load(path)
	if err != nil {
		return err
	}
	log.Printf("Loaded %d transactions from %s", len(ds.Transactions), path)

	if err := scoreBatch.ExecuteDataset(context.Background(), ds); err != nil {
		return err
	}

	fraudulent, anomalies := 0, 0
	for _, tx := range ds.Transactions {
		if tx.Fraudulent {
			fraudulent++
		}
		if tx.IsAnomaly() {
			anomalies++
		}
	}
	log.Printf("Scored batch: %d fraudulent, %d anomalies", fraudulent, anomalies)

	return dataset.Write(os.Stdout, ds)
}
