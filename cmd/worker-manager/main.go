// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"voice-order-workers/internal/classifier"
	awsclient "voice-order-workers/internal/common/aws"
	"voice-order-workers/internal/common/camunda"
	"voice-order-workers/internal/common/config"
	"voice-order-workers/internal/common/logger"
	"voice-order-workers/internal/common/observability"
	"voice-order-workers/internal/dialogue"
	"voice-order-workers/internal/menu"
	"voice-order-workers/internal/nlu/extract"
	"voice-order-workers/internal/nlu/fuzzy"
	"voice-order-workers/internal/orders"

	di "voice-order-workers/internal/workers/dialogue/detect-intent"
	rt "voice-order-workers/internal/workers/dialogue/resolve-turn"
	poe "voice-order-workers/internal/workers/orders/publish-order-event"
	qo "voice-order-workers/internal/workers/orders/query-orders"
	so "voice-order-workers/internal/workers/orders/submit-order"
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
			delay *= 2 // Exponential backoff
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

	zapLog := logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output, logger.Rotation{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	})
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
		zap.String("orderStore", cfg.Orders.Store),
	)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Warn("otel meter unavailable, job telemetry disabled", zap.Error(err))
	}
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	zeebe, err := camunda.Connect(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
	}, log)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Order store stack ---
	stack, err := buildOrderStack(ctx, cfg, log, zapLog)
	if err != nil {
		zapLog.Fatal("order store initialization failed", zap.Error(err))
	}
	defer stack.Close()

	// --- Dialogue core ---
	settings := menu.Default()
	if cfg.Menu.Path != "" {
		settings, err = menu.LoadFile(cfg.Menu.Path)
		if err != nil {
			zapLog.Fatal("menu load failed", zap.String("path", cfg.Menu.Path), zap.Error(err))
		}
	}
	zapLog.Info("Menu loaded", zap.Int("items", settings.Catalog().Len()))

	names := extract.NewNameExtractor(settings)
	items := extract.NewItemExtractor(settings, fuzzy.New(settings.Matching()))
	dispatcher := dialogue.NewDispatcher(settings, items, names)

	intentClient := classifier.NewClient(classifier.Config{
		BaseURL:    cfg.Classifier.BaseURL,
		Timeout:    config.GetDuration(cfg.Classifier.Timeout),
		MaxRetries: cfg.Classifier.MaxRetries,
	}, log)
	agent := dialogue.NewAgent(intentClient, dispatcher, log)

	resolver := orders.NewResolver(stack.Store, names, orders.ResolverConfig{
		ETA: settings.ETA(),
		IDs: orders.NewIDGenerator(settings.Numerals()),
	}, log)

	// --- Register Workers ---
	client := zeebe.GetClient()
	var workers []worker.JobWorker
	register := func(taskType string, h camunda.JobHandler) {
		if w := camunda.StartWorker(client, taskType, config.GetWorkerConfig(cfg, taskType), h, obs, log); w != nil {
			workers = append(workers, w)
		}
	}

	register(di.TaskType, di.NewHandler(
		&di.Config{Timeout: workerTimeout(cfg, di.TaskType)},
		agent, log,
	))

	register(rt.TaskType, rt.NewHandler(
		&rt.Config{Timeout: workerTimeout(cfg, rt.TaskType), SeedNameFromHistory: true},
		agent, names, log,
	))

	var indexer so.Indexer
	if stack.Search != nil {
		indexer = stack.Search
	}
	register(so.TaskType, so.NewHandler(
		&so.Config{Timeout: workerTimeout(cfg, so.TaskType), StoreName: cfg.Orders.Store},
		resolver, indexer, log,
	))

	var searcher orders.NameSearcher
	if stack.Search != nil {
		searcher = stack.Search
	}
	register(qo.TaskType, qo.NewHandler(
		&qo.Config{Timeout: workerTimeout(cfg, qo.TaskType)},
		stack.Store, searcher, log,
	))

	if cfg.AWS.SNS.Enabled {
		snsClient, err := awsclient.NewSNSClient(ctx, cfg.AWS.Region)
		if err != nil {
			zapLog.Fatal("failed to create SNS client", zap.Error(err))
		}
		register(poe.TaskType, poe.NewHandler(
			&poe.Config{Timeout: workerTimeout(cfg, poe.TaskType)},
			orders.NewEventPublisher(snsClient, cfg.AWS.SNS.TopicARN, log), log,
		))
	} else {
		zapLog.Info("SNS disabled, publish-order-event worker not started")
	}
	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		readyCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := zeebe.HealthCheck(readyCtx); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "zeebe unavailable")
			return
		}
		if err := stack.Ping(readyCtx); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "order store unavailable")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
		w.Close()
		w.AwaitClose()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func workerTimeout(cfg *config.Config, taskType string) time.Duration {
	return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}
