package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	BaseURL            string        `mapstructure:"neutrino_base_url"`
	UserID             string        `mapstructure:"neutrino_user_id" json:"-"`
	APIKey             string        `mapstructure:"neutrino_api_key" json:"-"`
	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`

	JobsFile              string        `mapstructure:"jobs_file"`
	PublishersFile        string        `mapstructure:"publishers_file"`
	LookupIntervalSeconds int64         `mapstructure:"lookup_interval"`
	LookupInterval        time.Duration `mapstructure:"-"`
	RunOnce               bool          `mapstructure:"run_once"`
	MaxConcurrency        int           `mapstructure:"max_concurrency"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "neutrino-monitor")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("neutrino_base_url", "https://neutrinoapi.net")
	v.SetDefault("neutrino_user_id", "")
	v.SetDefault("neutrino_api_key", "")
	v.SetDefault("http_timeout_seconds", 30)
	v.SetDefault("jobs_file", "./configs/jobs.yaml")
	v.SetDefault("publishers_file", "./configs/publishers.yaml")
	v.SetDefault("lookup_interval", 3600) // seconds
	v.SetDefault("run_once", false)
	v.SetDefault("max_concurrency", 4)
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/results.db")
	v.SetDefault("storage_ttl_seconds", int64((7*24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// finalize validates raw values and derives durations.
func (cfg *Config) finalize() error {
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.UserID = strings.TrimSpace(cfg.UserID)
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)

	if cfg.BaseURL == "" {
		return fmt.Errorf("neutrino_base_url is required")
	}
	if cfg.UserID == "" || cfg.APIKey == "" {
		return fmt.Errorf("neutrino_user_id and neutrino_api_key are required")
	}

	if cfg.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid http_timeout_seconds (must be positive seconds)")
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	if cfg.LookupIntervalSeconds <= 0 {
		return fmt.Errorf("invalid lookup_interval (must be positive seconds)")
	}
	cfg.LookupInterval = time.Duration(cfg.LookupIntervalSeconds) * time.Second

	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = 1
	}

	if cfg.StorageTTLSeconds <= 0 {
		return fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if cfg.StorageCleanupSeconds <= 0 {
		return fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.StorageTTL = time.Duration(cfg.StorageTTLSeconds) * time.Second
	cfg.StorageCleanupInterval = time.Duration(cfg.StorageCleanupSeconds) * time.Second

	return nil
}
