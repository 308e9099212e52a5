/*
Package config loads cmdpal configuration from config.yaml in the user
config directory, with environment overrides (CMDPAL_ prefix) and sane
defaults. A missing config file is not an error; a default file is
written on first run.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/cmdpal/cmdpal/internal/paths"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
)

// Config keys.
const (
	keySearchLimit = "search_limit"
	keyRecentLimit = "recent_limit"
	keyCacheTTL    = "cache_ttl"
)

// Defaults.
const (
	defaultSearchLimit = 10
	defaultRecentLimit = 10
	defaultCacheTTL    = time.Hour
	dbFileName         = "cmdpal.db"
	snapshotFileName   = "cmdpal.seed.db"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# cmdpal configuration

# Directory holding the command database (default: platform data dir)
# data_dir:

# Pre-seeded database snapshot copied into place on first run
# snapshot_path:

# Result limits
search_limit: 10
recent_limit: 10

# TTL for external-lookup cache entries
cache_ttl: 1h
`

// Config holds the resolved cmdpal settings.
type Config struct {
	// DataDir is the directory holding the command database.
	DataDir string `mapstructure:"data_dir"`

	// SnapshotPath points at a pre-seeded database copied into place
	// when the user database does not exist yet. Empty disables it.
	SnapshotPath string `mapstructure:"snapshot_path"`

	// SearchLimit caps search results.
	SearchLimit int `mapstructure:"search_limit"`

	// RecentLimit caps the recent-commands list.
	RecentLimit int `mapstructure:"recent_limit"`

	// CacheTTL is the lifetime of external-lookup cache entries.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// DBPath returns the path of the command database file.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, dbFileName)
}

// Load reads config.yaml from configDir, creating the directory and a
// default file on first run. dataDirFlag, when non-empty, overrides the
// configured data directory.
func Load(configDir, dataDirFlag string) (*Config, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(keySearchLimit, defaultSearchLimit)
	v.SetDefault(keyRecentLimit, defaultRecentLimit)
	v.SetDefault(keyCacheTTL, defaultCacheTTL)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("CMDPAL")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	dataDir, err := paths.ResolveDataDir(dataDirFlag, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	cfg.DataDir = dataDir

	if cfg.SnapshotPath == "" {
		// A snapshot bundled next to the config is picked up
		// automatically when present.
		candidate := filepath.Join(configDir, snapshotFileName)
		if _, err := os.Stat(candidate); err == nil {
			cfg.SnapshotPath = candidate
		}
	}
	return &cfg, nil
}

func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
