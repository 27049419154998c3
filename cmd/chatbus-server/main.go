// cmd/chatbus-server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"chatbus/internal/api"
	"chatbus/internal/assistant"
	"chatbus/internal/common/camunda"
	"chatbus/internal/common/config"
	"chatbus/internal/common/database"
	"chatbus/internal/common/logger"
	"chatbus/internal/common/observability"
	"chatbus/internal/common/validation"
	"chatbus/internal/features"
	"chatbus/internal/nlp"
	"chatbus/internal/prediction"
	"chatbus/internal/reply"
	"chatbus/pkg/registry"

	cpr "chatbus/internal/workers/passenger/compose-passenger-reply"
	ppq "chatbus/internal/workers/passenger/parse-passenger-query"
	ppc "chatbus/internal/workers/passenger/predict-passenger-count"
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

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output).
		With(zap.String("service", cfg.App.Name))
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting ChatBus server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("modelBackend", cfg.Model.Backend),
	)

	obs, err := observability.New(observability.Options{
		ServiceName:    cfg.App.Name,
		Version:        cfg.App.Version,
		TracingEnabled: cfg.Tracing.Enabled,
		JaegerEndpoint: cfg.Tracing.JaegerEndpoint,
		SampleRatio:    cfg.Tracing.SampleRatio,
	})
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	// --- Encoders ---
	vocab := features.DefaultVocabulary()
	if cfg.Model.EncodersPath != "" {
		vocab, err = features.LoadVocabulary(cfg.Model.EncodersPath)
		if err != nil {
			zapLog.Fatal("encoder vocabulary load failed", zap.Error(err))
		}
	}
	assembler, err := features.NewAssembler(vocab)
	if err != nil {
		zapLog.Fatal("encoder setup failed", zap.Error(err))
	}
	validator, err := validation.NewValidator(features.QuerySchema(vocab))
	if err != nil {
		zapLog.Fatal("query schema compile failed", zap.Error(err))
	}

	// --- Model ---
	model, err := buildModel(cfg)
	if err != nil {
		zapLog.Fatal("model init failed", zap.Error(err))
	}

	var readiness []api.Option
	var redisClient *database.RedisClient
	if cfg.Cache.Enabled {
		redisClient = database.NewRedis(cfg.Database.Redis)
		err = retryWithBackoff(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx)
		}, 5, time.Second, zapLog, "Redis connection")
		if err != nil {
			// The cache is optional. Lookups fail open to the model.
			zapLog.Warn("redis unavailable, predictions will not be cached", zap.Error(err))
		}
		model = prediction.NewCachedModel(model, redisClient, config.GetDuration(cfg.Cache.TTL), cfg.Cache.KeyPrefix, log)
		readiness = append(readiness, api.WithReadinessCheck("redis", redisClient.Ping))
	}

	predictor := prediction.NewService(assembler, model, log,
		prediction.WithFallback(cfg.Pipeline.FallbackPrediction),
		prediction.WithFeatureNames(cfg.Model.FeatureNames),
		prediction.WithObservability(obs),
	)
	if err := predictor.Verify(); err != nil {
		zapLog.Fatal("model does not match the feature pipeline", zap.Error(err))
	}
	zapLog.Info("Model verified",
		zap.String("backend", model.Name()),
		zap.Strings("featureOrder", features.FeatureOrder),
		zap.Int("fallbackPrediction", predictor.Fallback()),
	)

	extractor := nlp.NewExtractor(nlp.WithLocation(cfg.Pipeline.Location()))
	composer := reply.NewComposer()
	svc := assistant.NewService(extractor, predictor, validator, log,
		assistant.WithComposer(composer),
		assistant.WithObservability(obs),
	)

	// --- Zeebe Workers ---
	var zeebe *camunda.Client
	workers := camunda.NewRegistry(log)
	if cfg.Camunda.Enabled {
		zeebe, err = camunda.Connect(context.Background(), camunda.ConfigFrom(cfg.Camunda), log)
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		zapLog.Info("Zeebe client connected successfully")
		readiness = append(readiness, api.WithReadinessCheck("zeebe", zeebe.HealthCheck))

		parseHandler := ppq.NewHandler(ppq.LoadConfig(config.GetWorkerConfig(cfg, ppq.TaskType)), extractor, log, obs)
		workers.Start(zeebe.Zeebe(), ppq.TaskType, config.GetWorkerConfig(cfg, ppq.TaskType), parseHandler.Handle)

		predictHandler := ppc.NewHandler(ppc.LoadConfig(config.GetWorkerConfig(cfg, ppc.TaskType)), predictor, log, obs)
		workers.Start(zeebe.Zeebe(), ppc.TaskType, config.GetWorkerConfig(cfg, ppc.TaskType), predictHandler.Handle)

		composeHandler := cpr.NewHandler(cpr.LoadConfig(config.GetWorkerConfig(cfg, cpr.TaskType)), composer, log)
		workers.Start(zeebe.Zeebe(), cpr.TaskType, config.GetWorkerConfig(cfg, cpr.TaskType), composeHandler.Handle)

		zapLog.Info("Workers registered", zap.Strings("taskTypes", workers.Active()))

		if activities, err := registry.LoadRegistry(cfg.Camunda.RegistryPath); err != nil {
			zapLog.Warn("activity registry not loaded", zap.String("path", cfg.Camunda.RegistryPath), zap.Error(err))
		} else if missing := activities.Missing(workers.Active()); len(missing) > 0 {
			zapLog.Warn("workers missing from activity registry", zap.Strings("taskTypes", missing))
		}
	}

	// --- HTTP Server ---
	server := api.NewServer(cfg.Server, svc, log, append(readiness, api.WithVersion(cfg.App.Version))...)
	go func() {
		if err := server.Start(); err != nil {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping HTTP server", zap.Error(err))
	}
	workers.Close()
	if zeebe != nil {
		if err := zeebe.Close(); err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			zapLog.Error("Error closing Redis client", zap.Error(err))
		}
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error flushing telemetry", zap.Error(err))
	}

	zapLog.Info("ChatBus server stopped gracefully")
}

func buildModel(cfg *config.Config) (prediction.Model, error) {
	switch cfg.Model.Backend {
	case config.BackendRemote:
		return prediction.NewRemoteModel(
			cfg.Model.RemoteURL,
			config.GetDuration(cfg.Model.Timeout),
			cfg.Model.MaxRetries,
			cfg.Model.FeatureNames,
		), nil
	case config.BackendXGBoost:
		return prediction.LoadXGBoost(cfg.Model.Path, cfg.Model.FeatureNames)
	default:
		return nil, fmt.Errorf("unknown model backend %q", cfg.Model.Backend)
	}
}
