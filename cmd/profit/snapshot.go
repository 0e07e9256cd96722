package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"profitScope/internal/config"
	"profitScope/internal/storage"
	"profitScope/internal/storage/postgres"
)

func runSnapshot(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadSnapshot(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.PGDSN == "" {
		return fmt.Errorf("pg dsn is required")
	}
	if cfg.CacheFile == "" {
		return fmt.Errorf("cache-file is required (flag, PROFITSCOPE_CACHE_FILE or CACHE_FILENAME)")
	}

	filter, err := storage.ParsePoolFilter(cfg.Pools)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := postgres.NewStore(ctx, cfg.PGDSN, filter)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer store.Close()

	records, err := store.LoadPools(ctx)
	if err != nil {
		return fmt.Errorf("load pool snapshot: %w", err)
	}

	cache := storage.NewCacheFile(cfg.CachePath())
	if err := cache.WritePools(records); err != nil {
		return fmt.Errorf("write pool snapshot: %w", err)
	}

	logger.Info("snapshot written",
		zap.String("out", cache.Path()),
		zap.Int("pools", len(records)),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
	)
	return nil
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}
