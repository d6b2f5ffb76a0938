package main

import (
	"context"
	"errors"
	"time"

	"investease-api/internal/advisor"
	"investease-api/internal/cache"
	"investease-api/internal/config"
	"investease-api/internal/observability"
	"investease-api/internal/sip"

	"go.uber.org/zap"
)

// initTelemetry initialises tracing, metrics, log export and the per-domain
// metric instruments. The returned function shuts every provider down.
func initTelemetry(ctx context.Context, exporter string) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error

	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	for _, start := range []func(context.Context, string) (func(context.Context) error, error){
		observability.InitTracing,
		observability.InitMetrics,
		observability.InitLogging,
	} {
		stop, err := start(ctx, exporter)
		if err != nil {
			_ = shutdown(ctx)
			return nil, err
		}
		shutdowns = append(shutdowns, stop)
	}

	if err := sip.InitMetrics(); err != nil {
		_ = shutdown(ctx)
		return nil, err
	}
	if err := advisor.InitMetrics(); err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	return shutdown, nil
}

// newStore returns the SIP result cache: Redis when REDIS_ADDR is set and
// reachable, memory otherwise.
func newStore(ctx context.Context, cfg config.Config) (cache.Store, func()) {
	if cfg.RedisAddr == "" {
		return cache.NewMemory(cfg.CacheTTL), func() {}
	}

	rdb := cache.NewRedis(cfg.RedisAddr, "investease:", cfg.CacheTTL)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx); err != nil {
		observability.Logger.Warn("redis unavailable, using in-memory cache",
			zap.String("addr", cfg.RedisAddr),
			zap.Error(err),
		)
		_ = rdb.Close()
		return cache.NewMemory(cfg.CacheTTL), func() {}
	}

	return rdb, func() { _ = rdb.Close() }
}
