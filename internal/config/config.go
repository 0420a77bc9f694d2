package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// DefaultStateKey is the storage key of the persisted state blob.
	DefaultStateKey = "focusflow-state"

	// DefaultDebounce is how long the persistence bridge waits for a burst
	// of changes to settle before writing.
	DefaultDebounce = 200 * time.Millisecond

	// MaxDebounce bounds persist.debounce.
	MaxDebounce = 10 * time.Second
)

var storeNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config holds all configuration for focusflow.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Persist PersistConfig `mapstructure:"persist"`
	Logging LoggingConfig `mapstructure:"logging"`
	API     APIConfig     `mapstructure:"api"`
}

// StorageConfig holds the durable store settings.
type StorageConfig struct {
	DataDir        string `mapstructure:"data_dir"`
	Database       string `mapstructure:"database"`
	Store          string `mapstructure:"store"`
	FallbackDir    string `mapstructure:"fallback_dir"`
	StateKey       string `mapstructure:"state_key"`
	DisablePrimary bool   `mapstructure:"disable_primary"`
}

// DatabasePath is the SQLite file backing the primary store.
func (s StorageConfig) DatabasePath() string {
	return filepath.Join(s.DataDir, s.Database+".sqlite")
}

// PersistConfig holds persistence bridge settings.
type PersistConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
	AuthToken  string `mapstructure:"auth_token"`
}

// String returns a safe representation of APIConfig with the token masked.
func (c APIConfig) String() string {
	return fmt.Sprintf("APIConfig{ListenAddr:%s, AuthToken:%s}", c.ListenAddr, maskToken(c.AuthToken))
}

// maskToken shows first 4 + last 4 chars, replacing the middle with asterisks.
func maskToken(token string) string {
	const visible = 4
	if token == "" {
		return ""
	}
	if len(token) <= visible*2 {
		return "***"
	}
	return token[:visible] + "****" + token[len(token)-visible:]
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("storage.data_dir", filepath.Join(homeDir(), ".focusflow"))
	v.SetDefault("storage.database", "focusflow")
	v.SetDefault("storage.store", "app_data")
	v.SetDefault("storage.fallback_dir", "")
	v.SetDefault("storage.state_key", DefaultStateKey)
	v.SetDefault("storage.disable_primary", false)

	v.SetDefault("persist.debounce", DefaultDebounce)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("api.listen_addr", "127.0.0.1:3000")
	v.SetDefault("api.auth_token", "")

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(homeDir(), ".focusflow"))
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("FOCUSFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("storage.data_dir", "FOCUSFLOW_DATA_DIR")
	_ = v.BindEnv("storage.disable_primary", "FOCUSFLOW_DISABLE_PRIMARY")
	_ = v.BindEnv("logging.level", "FOCUSFLOW_LOG_LEVEL")
	_ = v.BindEnv("api.listen_addr", "FOCUSFLOW_API_LISTEN_ADDR")
	_ = v.BindEnv("api.auth_token", "FOCUSFLOW_API_AUTH_TOKEN")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.resolvePaths(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// resolvePaths expands ~ and derives the fallback directory.
func (c *Config) resolvePaths() error {
	dir, err := homedir.Expand(c.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("expanding storage.data_dir: %w", err)
	}
	c.Storage.DataDir = dir

	if c.Storage.FallbackDir == "" {
		c.Storage.FallbackDir = filepath.Join(dir, "kv")
		return nil
	}
	fb, err := homedir.Expand(c.Storage.FallbackDir)
	if err != nil {
		return fmt.Errorf("expanding storage.fallback_dir: %w", err)
	}
	c.Storage.FallbackDir = fb
	return nil
}

// Validate checks that required configuration fields are set and consistent.
func (c *Config) Validate() error {
	if c.Storage.DataDir == "" {
		return fmt.Errorf("storage.data_dir must not be empty")
	}
	if c.Storage.FallbackDir == "" {
		return fmt.Errorf("storage.fallback_dir must not be empty")
	}
	if c.Storage.Database == "" || strings.ContainsAny(c.Storage.Database, `/\`) {
		return fmt.Errorf("storage.database must be a plain file name, got %q", c.Storage.Database)
	}
	if !storeNamePattern.MatchString(c.Storage.Store) {
		return fmt.Errorf("storage.store must be an identifier, got %q", c.Storage.Store)
	}
	if strings.TrimSpace(c.Storage.StateKey) == "" {
		return fmt.Errorf("storage.state_key must not be empty")
	}
	if c.Persist.Debounce < 0 || c.Persist.Debounce > MaxDebounce {
		return fmt.Errorf("persist.debounce must be between 0 and %s", MaxDebounce)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json")
	}
	if c.API.ListenAddr == "" {
		return fmt.Errorf("api.listen_addr must not be empty")
	}
	return nil
}

func homeDir() string {
	home, err := homedir.Dir()
	if err != nil {
		return "."
	}
	return home
}
