// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"maturity-assessment/internal/assessment/scoring"
	"maturity-assessment/internal/common/camunda"
	"maturity-assessment/internal/common/config"
	"maturity-assessment/internal/common/logger"
	"maturity-assessment/internal/common/observability"
	"maturity-assessment/pkg/registry"

	cms "maturity-assessment/internal/workers/assessment/calculate-maturity-score"
	gr "maturity-assessment/internal/workers/assessment/generate-recommendations"
	vas "maturity-assessment/internal/workers/assessment/validate-assessment-step"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Warn("otel metrics exporter unavailable", zap.Error(err))
	}
	defer obs.Shutdown()

	// --- Init Zeebe Client with retry ---
	var client *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		client, err = camunda.NewClientWithConfig(camunda.ConfigFrom(cfg.Camunda))
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	scorer := scoring.NewDefault()

	// --- Register Workers ---
	handlers := map[string]func(config.WorkerConfig) func(worker.JobClient, entities.Job){
		cms.TaskType: func(wcfg config.WorkerConfig) func(worker.JobClient, entities.Job) {
			return cms.NewHandler(cms.LoadConfig(wcfg), scorer, obs, log).Handle
		},
		gr.TaskType: func(wcfg config.WorkerConfig) func(worker.JobClient, entities.Job) {
			return gr.NewHandler(gr.LoadConfig(wcfg), scorer, obs, log).Handle
		},
		vas.TaskType: func(wcfg config.WorkerConfig) func(worker.JobClient, entities.Job) {
			return vas.NewHandler(vas.LoadConfig(wcfg), obs, log).Handle
		},
	}

	reg := registry.Default()
	if err := reg.Validate(); err != nil {
		zapLog.Fatal("activity registry is invalid", zap.Error(err))
	}

	var workers []*camunda.Worker
	for _, activity := range reg.Activities {
		build, ok := handlers[activity.TaskType]
		if !ok {
			zapLog.Warn("no handler for registered activity", zap.String("taskType", activity.TaskType))
			continue
		}
		wcfg := config.GetWorkerConfig(cfg, activity.TaskType)
		if w := camunda.StartWorker(client.GetClient(), activity.TaskType, wcfg, build(wcfg), log); w != nil {
			workers = append(workers, w)
		}
	}
	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	server := &http.Server{
		Addr:              cfg.Metrics.Address,
		Handler:           newMux(client),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping Health/Metrics server", zap.Error(err))
	}
	if err := client.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

// healthChecker is the broker probe behind /ready.
type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

func newMux(broker healthChecker) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy", "")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := broker.HealthCheck(r.Context()); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "unavailable", err.Error())
			return
		}
		writeStatus(w, http.StatusOK, "ready", "")
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeStatus(w http.ResponseWriter, code int, status, reason string) {
	body := map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	}
	if reason != "" {
		body["reason"] = reason
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
