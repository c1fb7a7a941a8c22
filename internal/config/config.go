// Package config provides configuration management for the trading journal.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	apperrors "github.com/KirillKCrypto/Trading-Journal-APP/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Journal     JournalConfig `mapstructure:"journal"`
	AI          AIConfig      `mapstructure:"ai"`
	News        NewsConfig    `mapstructure:"news"`
	UI          UIConfig      `mapstructure:"ui"`
	Credentials Credentials   `mapstructure:"-"` // Loaded separately
}

// JournalConfig holds journal storage configuration.
type JournalConfig struct {
	DBPath         string  `mapstructure:"db_path"`
	StartingEquity float64 `mapstructure:"starting_equity"`
}

// AIConfig holds AI analysis engine configuration.
type AIConfig struct {
	Model              string  `mapstructure:"model"`
	BaseURL            string  `mapstructure:"base_url"`
	EmbeddingModel     string  `mapstructure:"embedding_model"`
	EmbeddingDimension int     `mapstructure:"embedding_dimension"`
	MaxTokens          int     `mapstructure:"max_tokens"`
	Temperature        float32 `mapstructure:"temperature"`
	TradeTopK          int     `mapstructure:"trade_top_k"`
	NewsTopK           int     `mapstructure:"news_top_k"`
}

// NewsConfig holds economic-calendar cache configuration.
type NewsConfig struct {
	FeedURL         string        `mapstructure:"feed_url"`
	Country         string        `mapstructure:"country"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	RefreshJitter   time.Duration `mapstructure:"refresh_jitter"`
	StaticMaxAge    time.Duration `mapstructure:"static_max_age"`
	FetchTimeout    time.Duration `mapstructure:"fetch_timeout"`
	CacheDir        string        `mapstructure:"cache_dir"`
}

// UIConfig holds output-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// Credentials holds API credentials.
type Credentials struct {
	OpenRouter OpenRouterCredentials `mapstructure:"openrouter"`
}

// OpenRouterCredentials holds the OpenRouter API credentials.
type OpenRouterCredentials struct {
	APIKey string `mapstructure:"api_key"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/trade-journal"
	}
	return filepath.Join(home, ".config", "trade-journal")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	// Load main config
	if err := loadConfigFile(configDir, cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	// Load credentials
	if err := loadCredentials(configDir, &cfg.Credentials); err != nil {
		return nil, fmt.Errorf("loading credentials.toml: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir string, target *Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, create template and continue with defaults
			if werr := createTemplateConfig(configDir); werr != nil {
				return werr
			}
			return v.Unmarshal(target)
		}
		return err
	}

	return v.Unmarshal(target)
}

func loadCredentials(configDir string, creds *Credentials) error {
	v := viper.New()
	v.SetConfigName("credentials")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return createTemplateCredentials(configDir)
		}
		return err
	}

	return v.Unmarshal(creds)
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("journal.db_path", filepath.Join(configDir, "journal.db"))
	v.SetDefault("journal.starting_equity", 10000.0)

	v.SetDefault("ai.model", "meta-llama/llama-3.3-70b-instruct:free")
	v.SetDefault("ai.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("ai.embedding_model", "all-minilm-l6-v2")
	v.SetDefault("ai.embedding_dimension", 384)
	v.SetDefault("ai.max_tokens", 2000)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.trade_top_k", 5)
	v.SetDefault("ai.news_top_k", 15)

	v.SetDefault("news.feed_url", "https://nfs.faireconomy.media/ff_calendar_thisweek.json")
	v.SetDefault("news.country", "USD")
	v.SetDefault("news.refresh_interval", time.Hour)
	v.SetDefault("news.refresh_jitter", 5*time.Minute)
	v.SetDefault("news.static_max_age", 24*time.Hour)
	v.SetDefault("news.fetch_timeout", 10*time.Second)
	v.SetDefault("news.cache_dir", filepath.Join(configDir, "cache"))

	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "02-Jan-2006")
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		cfg.Credentials.OpenRouter.APIKey = v
	}
	if v := os.Getenv("JOURNAL_DB_PATH"); v != "" {
		cfg.Journal.DBPath = v
	}
	if v := os.Getenv("AI_MODEL"); v != "" {
		cfg.AI.Model = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.AI.EmbeddingDimension <= 0 {
		return fmt.Errorf("%w: embedding_dimension must be positive", apperrors.ErrConfigInvalid)
	}
	if c.AI.MaxTokens <= 0 {
		return fmt.Errorf("%w: max_tokens must be positive", apperrors.ErrConfigInvalid)
	}
	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		return fmt.Errorf("%w: temperature must be between 0 and 2", apperrors.ErrConfigInvalid)
	}
	if c.News.RefreshInterval <= 0 {
		return fmt.Errorf("%w: refresh_interval must be positive", apperrors.ErrConfigInvalid)
	}
	if c.News.RefreshJitter < 0 || c.News.RefreshJitter >= c.News.RefreshInterval {
		return fmt.Errorf("%w: refresh_jitter must be non-negative and smaller than refresh_interval", apperrors.ErrConfigInvalid)
	}
	if c.Journal.StartingEquity <= 0 {
		return fmt.Errorf("%w: starting_equity must be positive", apperrors.ErrConfigInvalid)
	}
	return nil
}

// HasAPIKey reports whether an AI API key is configured.
func (c *Config) HasAPIKey() bool {
	return c.Credentials.OpenRouter.APIKey != ""
}
