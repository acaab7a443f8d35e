package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"store-dashboard/internal/config"
	"store-dashboard/internal/middleware"
	"store-dashboard/internal/models"
	"store-dashboard/internal/observability"
	"store-dashboard/internal/server"
	"store-dashboard/internal/services"
	"store-dashboard/internal/ui/templates"
)

const (
	renderTimeout  = 10 * time.Second
	csvLoadTimeout = 30 * time.Second
)

// dashboardPage renders the page for the default selection of the loaded
// dataset, or the upload prompt when nothing is loaded yet.
func dashboardPage(dashboard *services.Dashboard, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
		defer cancel()

		var (
			opts models.FilterOptions
			rep  *models.Report
		)
		if dashboard.Loaded() {
			o, err := dashboard.Options()
			if err == nil {
				if full, err := dashboard.Report(ctx, o.All()); err == nil {
					opts, rep = o, &full
				}
			}
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		if err := templates.Dashboard(opts, rep).Render(ctx, w); err != nil {
			logger.Error("render dashboard", "error", err)
			http.Error(w, "render error", http.StatusInternalServerError)
		}
	}
}

func newHandler(cfg *config.Config, dashboard *services.Dashboard, logger *slog.Logger) http.Handler {
	templateHandlers := &server.TemplateHandlers{
		Dashboard: dashboardPage(dashboard, logger),
	}

	srv := server.NewServer(dashboard, cfg, logger, templateHandlers)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(logger),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
		middleware.OriginCheck(cfg.Security, logger),
		middleware.Metrics(),
	)

	return middlewareChain(srv)
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to read .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger, os.Stdout)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", "1.0.0",
		"config", cfg,
	)

	dashboard := services.NewDashboard()
	if cfg.Dataset.Location != "" {
		ctx, cancel := context.WithTimeout(context.Background(), csvLoadTimeout)
		start := time.Now()
		// A bad startup dataset is not fatal; the user can still upload one.
		if _, err := dashboard.LoadFrom(ctx, cfg.Dataset.Location); err != nil {
			logger.Error("failed to load CSV data", "location", cfg.Dataset.Location, "error", err)
		} else {
			logger.Info("CSV data loaded successfully", "duration", time.Since(start))
		}
		cancel()
	}

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      newHandler(cfg, dashboard, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("shutting down dashboard service", "stats", dashboard.Stats())
		return nil
	})

	logger.Info("starting graceful server")
	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
