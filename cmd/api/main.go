package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	httpAdapter "github.com/tcpl/ticket-dashboard-backend/internal/adapters/primary/http"
	mw "github.com/tcpl/ticket-dashboard-backend/internal/adapters/primary/http/middleware"
	"github.com/tcpl/ticket-dashboard-backend/internal/adapters/secondary/memstore"
	"github.com/tcpl/ticket-dashboard-backend/internal/adapters/secondary/spreadsheet"
	"github.com/tcpl/ticket-dashboard-backend/internal/config"
	"github.com/tcpl/ticket-dashboard-backend/internal/core/services"
	"github.com/tcpl/ticket-dashboard-backend/internal/infrastructure/logging"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger
	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stdout,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	})

	logger.Info("starting service",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	// 3. Initialize Session Store & Workbook Codec
	sessionRepo := memstore.NewSessionRepository(memstore.Config{
		TTL:           cfg.Session.TTL,
		SweepInterval: cfg.Session.SweepInterval,
	})
	workbookReader := spreadsheet.NewReader()
	workbookWriter := spreadsheet.NewWriter()

	// 4. Initialize Rate Limiter
	var rateLimiter *mw.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = mw.NewRateLimiter(mw.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.RateLimit.BurstSize,
			CleanupInterval:   time.Minute,
			TTL:               3 * time.Minute,
		})
	}

	// 5. Dependency Injection (Wiring the Hexagon)

	// Error Handler
	errorHandler := httpAdapter.NewErrorHandler(logger)

	// Services (Core)
	sessionService := services.NewSessionService(sessionRepo, workbookReader, logger)
	dashboardService := services.NewDashboardService(sessionRepo, workbookWriter, logger)

	// Load the fallback workbook, if one is present next to the binary
	ctx := context.Background()
	if _, err := sessionService.LoadDefault(ctx, cfg.Upload.DefaultDataFile); err != nil {
		logger.Error("failed to load default workbook", "path", cfg.Upload.DefaultDataFile, "error", err)
		os.Exit(1)
	}

	// Handlers (Primary Adapters)
	dashboardHandler := httpAdapter.NewDashboardHandler(dashboardService, errorHandler, logger)
	sessionHandler := httpAdapter.NewSessionHandler(sessionService, dashboardHandler, errorHandler, logger, cfg.Upload.MaxBytes)
	healthHandler := httpAdapter.NewHealthHandler(sessionRepo, cfg.App.Version)

	// 6. Setup Router
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.RecoveryLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", mw.RequestIDHeader},
		MaxAge:         300,
	}))

	if rateLimiter != nil {
		r.Use(rateLimiter.Middleware)
	}

	// Health check endpoints (outside /api/v1 for standard probe paths)
	r.Get("/health", healthHandler.HandleHealth)
	r.Get("/health/live", healthHandler.HandleLiveness)
	r.Get("/health/ready", healthHandler.HandleReadiness)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/sessions", sessionHandler.RegisterRoutes)
	})

	// 7. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", "signal", sig.String())

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server shutdown complete")
}
