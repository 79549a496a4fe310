// Package app assembles the service from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/polyglot/api/internal/analyzer"
	"github.com/polyglot/api/internal/config"
	"github.com/polyglot/api/internal/eventbus"
	"github.com/polyglot/api/internal/generation"
	"github.com/polyglot/api/internal/handlers"
	"github.com/polyglot/api/internal/history"
	"github.com/polyglot/api/internal/llm"
	"github.com/polyglot/api/internal/metrics"
	"github.com/polyglot/api/internal/router"
	"github.com/polyglot/api/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const (
	ServiceName = "polyglot-api"
	Version     = "1.0.0"
)

// App is a fully wired server
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	Generator *generation.Service
	Breaker   *llm.Breaker
	History   history.Store
	Bus       *eventbus.Bus
	Router    *gin.Engine

	shutdownTracer telemetry.ShutdownFunc
}

// NewLogger builds the production zap logger writing to outputPath
func NewLogger(outputPath string) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	zapConfig.OutputPaths = []string{outputPath}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	return zapConfig.Build()
}

// New connects every configured backend. Optional backends (tracing, NATS)
// that fail to start are logged and skipped; a history backend that fails
// is fatal.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}

	shutdown, err := telemetry.InitTracer(ctx, ServiceName, Version, cfg.OTELEndpoint)
	if err != nil {
		logger.Error("failed to initialize telemetry", zap.Error(err))
		shutdown = func(context.Context) error { return nil }
	}
	a.shutdownTracer = shutdown

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.Metrics = metrics.New(reg)

	a.History, err = history.Open(cfg, logger)
	if err != nil {
		a.shutdownTracer(ctx)
		return nil, fmt.Errorf("open history: %w", err)
	}

	a.Bus, err = eventbus.Connect(cfg.NATSURL, logger)
	if err != nil {
		logger.Error("failed to connect to NATS, continuing without events", zap.Error(err))
		a.Bus = nil
	}

	a.Generator, a.Breaker = NewGenerator(cfg, logger, a.Metrics, a.Bus)

	health := map[string]handlers.Pinger{"history": a.History}
	if a.Bus != nil {
		health["events"] = a.Bus
	} else {
		health["events"] = nil
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	a.Router = router.New(router.Deps{
		Logger:             logger,
		Metrics:            a.Metrics,
		Generator:          a.Generator,
		Analyzer:           analyzer.NewEngine(logger),
		History:            a.History,
		Health:             health,
		LLMStatus:          a.llmStatus,
		ServiceName:        ServiceName,
		Version:            Version,
		JWTSecret:          cfg.JWTSecret,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})

	return a, nil
}

// NewGenerator builds the generation service. Without an API key it only
// renders templates. m and bus may be nil.
func NewGenerator(cfg *config.Config, logger *zap.Logger, m *metrics.Metrics, bus *eventbus.Bus) (*generation.Service, *llm.Breaker) {
	opts := []generation.Option{generation.WithTimeout(cfg.LLMTimeout)}
	if m != nil {
		opts = append(opts, generation.WithRecorder(m))
	}
	if bus != nil {
		opts = append(opts, generation.WithPublisher(bus))
	}

	client, err := llm.New(llm.Config{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.LLMAPIKey(),
		BaseURL:  cfg.LLMBaseURL,
		Model:    cfg.LLMModel,
	})
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			logger.Warn("no LLM API key configured, serving templates only", zap.String("provider", cfg.LLMProvider))
		} else {
			logger.Error("failed to create LLM client, serving templates only", zap.Error(err))
		}
		return generation.NewService(logger, opts...), nil
	}

	breaker := llm.NewBreaker(client)
	breaker.OnStateChange = func(from, to llm.CircuitState) {
		logger.Warn("llm circuit state changed", zap.String("from", from.String()), zap.String("to", to.String()))
		if m != nil {
			m.CircuitState.Set(float64(to))
		}
	}

	logger.Info("remote generation enabled",
		zap.String("provider", cfg.LLMProvider),
		zap.String("model", client.Model()),
	)
	opts = append(opts, generation.WithCompleter(breaker))
	return generation.NewService(logger, opts...), breaker
}

func (a *App) llmStatus() string {
	if a.Breaker == nil {
		return "disabled"
	}
	return a.Config.LLMProvider + ": circuit " + a.Breaker.State().String()
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         ":" + a.Config.Port,
		Handler:      a.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: a.Config.LLMTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("starting server", zap.String("port", a.Config.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	a.Logger.Info("server exited gracefully")
	return nil
}

// Close releases every backend
func (a *App) Close(ctx context.Context) {
	a.Bus.Close()
	if err := a.History.Close(); err != nil {
		a.Logger.Error("failed to close history", zap.Error(err))
	}
	if err := a.shutdownTracer(ctx); err != nil {
		a.Logger.Error("failed to shutdown telemetry", zap.Error(err))
	}
}
