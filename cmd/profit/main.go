package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"profitScope/internal/chart"
	"profitScope/internal/config"
	"profitScope/internal/model"
	"profitScope/internal/profit"
	"profitScope/internal/report"
	"profitScope/internal/storage"
	"profitScope/internal/storage/postgres"
)

// Fixed projection parameters, deliberately not configurable.
const (
	startPosition = 100.0
	numDays       = 365
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:          "profit",
		Short:        "DEX pool profit projector",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Rank cached pools by projected LP profit",
		RunE:  runProject,
	}

	projectCmd.Flags().String("cache-dir", "..", "directory holding the pool snapshot")
	projectCmd.Flags().String("cache-file", "", "pool snapshot file name")
	projectCmd.Flags().String("pg-dsn", "", "Postgres DSN, read the snapshot from pool_snapshot instead of the cache file")
	projectCmd.Flags().String("out", "cumulative_profit.png", "output chart path")
	projectCmd.Flags().StringSlice("pool", nil, "pool addresses to include (comma-separated)")
	projectCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(projectCmd)

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Export the pool snapshot from Postgres into the cache file",
		RunE:  runSnapshot,
	}

	snapshotCmd.Flags().String("pg-dsn", "", "Postgres DSN")
	snapshotCmd.Flags().String("cache-dir", "..", "directory holding the pool snapshot")
	snapshotCmd.Flags().String("cache-file", "", "pool snapshot file name")
	snapshotCmd.Flags().StringSlice("pool", nil, "pool addresses to include (comma-separated)")
	snapshotCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(snapshotCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runProject(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.PGDSN == "" && cfg.CacheFile == "" {
		return fmt.Errorf("cache-file is required (flag, PROFITSCOPE_CACHE_FILE or CACHE_FILENAME)")
	}

	filter, err := storage.ParsePoolFilter(cfg.Pools)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source := cfg.CachePath()
	if cfg.PGDSN != "" {
		source = "postgres"
	}

	logger.Info("project start",
		zap.String("source", source),
		zap.Float64("start_position", startPosition),
		zap.Int("num_days", numDays),
		zap.String("out", cfg.Out),
		zap.Int("filter", len(filter)),
	)

	records, err := loadSnapshot(ctx, cfg, filter)
	if err != nil {
		logger.Error("load pool snapshot", zap.Error(err))
		return nil
	}
	if len(records) == 0 {
		logger.Info("no pools found in the snapshot", zap.String("source", source))
		return nil
	}

	pools := profit.FilterValid(records, logger)
	projections := profit.Project(pools, startPosition, numDays)

	if err := report.WriteTable(os.Stdout, projections); err != nil {
		logger.Error("write table", zap.Error(err))
		return nil
	}

	if err := chart.NewRenderer().Render(pools, startPosition, numDays, cfg.Out); err != nil {
		logger.Error("render chart", zap.Error(err))
		return nil
	}

	logger.Info("chart written",
		zap.String("out", cfg.Out),
		zap.Int("pools", len(pools)),
		zap.Int("skipped", len(records)-len(pools)),
	)
	return nil
}

// loadSnapshot picks the pool source: Postgres when a DSN is set, the
// JSON cache file otherwise.
func loadSnapshot(ctx context.Context, cfg config.Config, filter storage.PoolFilter) ([]model.PoolRecord, error) {
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN, filter)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		return store.LoadPools(ctx)
	}

	records, err := storage.NewCacheFile(cfg.CachePath()).LoadPools(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(records), nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.OutputPaths = []string{"stdout"}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
