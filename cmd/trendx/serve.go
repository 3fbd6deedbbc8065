package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"
	"github.com/spf13/cobra"

	"github.com/Jeanads/trendx-analytics/internal/config"
	"github.com/Jeanads/trendx-analytics/internal/handler"
	"github.com/Jeanads/trendx-analytics/internal/middleware"
	"github.com/Jeanads/trendx-analytics/internal/router"
	"github.com/Jeanads/trendx-analytics/internal/service"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the analytics HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(parent context.Context) error {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "trendx-api")
	logger := middleware.Logger

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, pool, err := openSource(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s source: %w", cfg.DataSource, err)
	}
	defer source.Close()

	handler.InitMetrics(pool)

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	snapshots := service.NewSnapshotService(source)
	snapshots.OnReload(handler.ObserveReload)
	dashboard := service.NewDashboardService(snapshots)

	worker := service.NewSnapshotWorker(snapshots, cfg.ReloadInterval)
	go worker.Start(ctx)
	defer worker.Stop()

	app := fiber.New(fiber.Config{
		AppName:      "TrendX Analytics API",
		ServerHeader: "TrendX",
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		UnescapePath: true,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	router.Setup(app, &router.Handlers{
		Health:    handler.NewHealthHandler(snapshots, cache.Client()),
		Dashboard: handler.NewDashboardHandler(dashboard, cache),
		Resolve:   handler.NewResolveHandler(dashboard),
	}, cfg.CORSOrigins)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Environment).
			Str("source", source.Name()).
			Msg("TrendX analytics API starting")
		errCh <- app.Listen(":"+cfg.Port, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}
