package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	agorahttp "github.com/agora-ai/agora/internal/adapter/http"
	"github.com/agora-ai/agora/internal/adapter/memstore"
	agoranats "github.com/agora-ai/agora/internal/adapter/nats"
	"github.com/agora-ai/agora/internal/adapter/openai"
	agoraotel "github.com/agora-ai/agora/internal/adapter/otel"
	"github.com/agora-ai/agora/internal/adapter/postgres"
	"github.com/agora-ai/agora/internal/adapter/ristretto"
	"github.com/agora-ai/agora/internal/adapter/serper"
	"github.com/agora-ai/agora/internal/adapter/ws"
	"github.com/agora-ai/agora/internal/config"
	"github.com/agora-ai/agora/internal/logger"
	"github.com/agora-ai/agora/internal/port/messagequeue"
	"github.com/agora-ai/agora/internal/port/search"
	"github.com/agora-ai/agora/internal/port/sessionstore"
	"github.com/agora-ai/agora/internal/resilience"
	"github.com/agora-ai/agora/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	slog.SetDefault(logger.New(cfg.Logging.Level, cfg.Logging.Service))

	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"mode", cfg.Deliberation.Mode,
		"model", cfg.LLM.Model,
		"phase_workers", cfg.Deliberation.PhaseWorkers,
	)

	ctx := context.Background()

	// --- Telemetry ---
	shutdownTelemetry, err := agoraotel.Init(ctx, cfg.Logging.Service, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			slog.Warn("telemetry shutdown", "error", err)
		}
	}()

	metrics, err := agoraotel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// --- Session store ---
	// Postgres when a DSN is configured, in-memory otherwise.
	var store sessionstore.Store
	if cfg.Postgres.DSN != "" {
		pool, err := postgres.NewPool(ctx, cfg.Postgres)
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		defer pool.Close()

		if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		store = postgres.NewStore(pool)
		slog.Info("postgres store ready")
	} else {
		store = memstore.New()
		slog.Info("using in-memory store")
	}

	// --- Event fan-out ---
	var queue messagequeue.Queue
	if cfg.NATS.URL != "" {
		natsQueue, err := agoranats.Connect(ctx, cfg.NATS.URL)
		if err != nil {
			return fmt.Errorf("nats: %w", err)
		}
		defer func() { _ = natsQueue.Close() }()
		queue = natsQueue
	}

	// --- Outbound clients ---
	llmClient := openai.NewClient(cfg.LLM)
	llmClient.SetBreaker(resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Timeout))

	var searcher search.Searcher
	if cfg.Search.APIKey != "" {
		serperClient := serper.NewClient("", cfg.Search.APIKey)
		serperClient.SetBreaker(resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Timeout))
		searcher = serperClient
	} else {
		slog.Warn("no search API key configured; research runs without web evidence")
	}

	searchCache, err := ristretto.New(cfg.Cache.MaxSizeMB * 1024 * 1024)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer searchCache.Close()

	// --- Services ---
	registry, err := service.NewRegistry()
	if err != nil {
		return fmt.Errorf("registry: %w", err)
	}

	hub := ws.NewHub()
	researcher := service.NewResearcher(searcher, searchCache, cfg.Search.MaxResults, cfg.Search.CacheTTL)
	orch := service.NewOrchestrator(registry, llmClient, researcher, service.KeywordScorer{},
		store, hub, queue, metrics, cfg.Deliberation)
	sessions := service.NewSessionService(store, orch)

	// --- HTTP ---
	r := chi.NewRouter()

	r.Use(agorahttp.CORS(cfg.Server.CORSOrigin))
	r.Use(agorahttp.Logger)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(agoraotel.HTTPMiddleware(cfg.Logging.Service))

	agorahttp.MountRoutes(r, agorahttp.NewHandlers(sessions, registry), hub.HandleWS)

	addr := ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr, "agents", len(registry.All()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
