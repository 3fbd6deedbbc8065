// Package main provides the trendx CLI: the analytics API server and
// one-shot reports over the same dataset.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Jeanads/trendx-analytics/internal/config"
	"github.com/Jeanads/trendx-analytics/internal/db"
	"github.com/Jeanads/trendx-analytics/internal/repository"
	"github.com/Jeanads/trendx-analytics/internal/service"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command for the trendx CLI.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "trendx",
		Short:         "Creator analytics for the TrendX community",
		Long:          "trendx scores creators, ranks them and resolves social media links to known videos and accounts.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.SetVersionTemplate("trendx version {{.Version}}\n")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newRankCmd())
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newAccountsCmd())
	rootCmd.AddCommand(newSummaryCmd())

	return rootCmd
}

// openSource connects to the configured dataset. The pool is nil unless the
// source is Postgres.
func openSource(ctx context.Context, cfg *config.Config) (repository.Source, *pgxpool.Pool, error) {
	switch cfg.DataSource {
	case config.SourcePostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPostgresSource(pool), pool, nil
	case config.SourceDuckDB:
		conn, err := db.OpenDuckDB(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewDuckDBSource(conn), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown DATA_SOURCE %q: must be %q or %q",
			cfg.DataSource, config.SourceDuckDB, config.SourcePostgres)
	}
}

// loadSnapshot opens the source, builds one snapshot and closes the source.
// Report commands only log warnings.
func loadSnapshot(ctx context.Context) (*service.Snapshot, error) {
	if zerolog.GlobalLevel() < zerolog.WarnLevel {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	cfg := config.Load()
	source, _, err := openSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	return service.NewSnapshotService(source).Reload(ctx)
}
