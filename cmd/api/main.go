package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"investease-api/internal/advisor"
	"investease-api/internal/config"
	"investease-api/internal/observability"
	"investease-api/internal/ratelimit"
	"investease-api/internal/server"
	"investease-api/internal/sip"

	"go.uber.org/zap"
)

func main() {

	ctx := context.Background()

	if err := loadDotEnv(); err != nil {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Logger
	err = observability.InitLogger()
	if err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	// Telemetry
	shutdownTelemetry, err := initTelemetry(ctx, cfg.TelemetryExporter)
	if err != nil {
		panic(err)
	}
	defer shutdownTelemetry(ctx)

	// Domains
	store, closeStore := newStore(ctx, cfg)
	defer closeStore()

	catalog, err := advisor.DefaultCatalog()
	if err != nil {
		panic(err)
	}

	opts := server.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		SIP:            sip.NewHandler(store),
		Advisor:        advisor.NewHandler(advisor.New(catalog)),
	}

	if cfg.RateLimitEnabled() {
		opts.Limiter = ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
		defer opts.Limiter.Stop()
	}

	// Router
	router := server.NewRouter(opts)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		observability.Logger.Info("server started",
			zap.String("addr", cfg.Addr),
			zap.String("telemetry_exporter", cfg.TelemetryExporter),
			zap.Bool("rate_limit", cfg.RateLimitEnabled()),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	waitForShutdown(srv, serverErr, cfg.ShutdownTimeout)
}

func waitForShutdown(srv *http.Server, serverErr <-chan error, timeout time.Duration) {

	stop := make(chan os.Signal, 1)

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		observability.Logger.Error("server failed", zap.Error(err))
		return
	case sig := <-stop:
		observability.Logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		observability.Logger.Error("server shutdown", zap.Error(err))
	}
}
