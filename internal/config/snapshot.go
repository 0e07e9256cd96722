package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// SnapshotConfig holds configuration for the snapshot export command.
type SnapshotConfig struct {
	PGDSN     string
	CacheDir  string
	CacheFile string
	Pools     []string
	LogLevel  string
}

// CachePath joins the snapshot directory and file name.
func (c SnapshotConfig) CachePath() string {
	return filepath.Join(c.CacheDir, c.CacheFile)
}

// LoadSnapshot merges config file, environment variables, and flags into
// SnapshotConfig.
func LoadSnapshot(cfgFile string, flags *pflag.FlagSet) (SnapshotConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("PROFITSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("cache-file", "PROFITSCOPE_CACHE_FILE", "CACHE_FILENAME"); err != nil {
		return SnapshotConfig{}, fmt.Errorf("bind env: %w", err)
	}

	v.SetDefault("cache-dir", "..")
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return SnapshotConfig{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return SnapshotConfig{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return SnapshotConfig{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := SnapshotConfig{
		PGDSN:     v.GetString("pg-dsn"),
		CacheDir:  v.GetString("cache-dir"),
		CacheFile: v.GetString("cache-file"),
		Pools:     getStringSlice(v, "pool"),
		LogLevel:  v.GetString("log-level"),
	}

	return cfg, nil
}
