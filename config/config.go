// Package config provides configuration for the viral detection engine.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/trendpulse/viral-engine/model"
)

// Config holds the engine configuration, loadable from a YAML file and
// VIRAL_-prefixed environment variables.
type Config struct {
	// YouTube Data API access
	YouTubeAPIKey string `yaml:"youtube_api_key" mapstructure:"youtube_api_key"`
	Region        string `yaml:"region" mapstructure:"region"`                 // search region hint, e.g. "KR"
	Language      string `yaml:"language" mapstructure:"language"`             // relevance language hint, e.g. "ko"

	// HTTP API
	ListenAddr string `yaml:"listen_addr" mapstructure:"listen_addr"`

	// Rising-video detection
	RisingWindow     time.Duration `yaml:"rising_window" mapstructure:"rising_window"`
	RisingMaxResults int64         `yaml:"rising_max_results" mapstructure:"rising_max_results"`
	RisingTTL        time.Duration `yaml:"rising_ttl" mapstructure:"rising_ttl"`

	// Viral-shorts detection
	ShortsWindow     time.Duration `yaml:"shorts_window" mapstructure:"shorts_window"`
	ShortsMaxResults int64         `yaml:"shorts_max_results" mapstructure:"shorts_max_results"`
	ShortsTTL        time.Duration `yaml:"shorts_ttl" mapstructure:"shorts_ttl"`

	// Trending chart
	TrendingTTL time.Duration `yaml:"trending_ttl" mapstructure:"trending_ttl"`

	// Cache maintenance
	JanitorInterval time.Duration `yaml:"janitor_interval" mapstructure:"janitor_interval"`

	// Browse keywords used when a caller supplies none
	DefaultKeywords []string `yaml:"default_keywords" mapstructure:"default_keywords"`

	// Viral tier table, highest tier first
	TierRules []model.TierRule `yaml:"tier_rules" mapstructure:"tier_rules"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Region:           "KR",
		Language:         "ko",
		ListenAddr:       ":8080",
		RisingWindow:     48 * time.Hour,
		RisingMaxResults: 15,
		RisingTTL:        30 * time.Minute,
		ShortsWindow:     15 * 24 * time.Hour,
		ShortsMaxResults: 50,
		ShortsTTL:        30 * time.Minute,
		TrendingTTL:      15 * time.Minute,
		JanitorInterval:  10 * time.Minute,
		DefaultKeywords:  nil, // detector falls back to its built-in list
		TierRules:        model.DefaultTierRules(),
	}
}

// Load reads configuration from the given file (optional) and the
// environment, layered over the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("region", defaults.Region)
	v.SetDefault("language", defaults.Language)
	v.SetDefault("listen_addr", defaults.ListenAddr)
	v.SetDefault("rising_window", defaults.RisingWindow)
	v.SetDefault("rising_max_results", defaults.RisingMaxResults)
	v.SetDefault("rising_ttl", defaults.RisingTTL)
	v.SetDefault("shorts_window", defaults.ShortsWindow)
	v.SetDefault("shorts_max_results", defaults.ShortsMaxResults)
	v.SetDefault("shorts_ttl", defaults.ShortsTTL)
	v.SetDefault("trending_ttl", defaults.TrendingTTL)
	v.SetDefault("janitor_interval", defaults.JanitorInterval)

	v.SetEnvPrefix("VIRAL")
	v.AutomaticEnv()
	// VIRAL_YOUTUBE_API_KEY and friends
	if err := v.BindEnv("youtube_api_key"); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("viral-engine")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/viral-engine")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// No config file is fine; defaults and environment apply.
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if len(cfg.TierRules) == 0 {
		cfg.TierRules = model.DefaultTierRules()
	}

	return cfg, nil
}

// Validate checks the parts of the configuration that cannot default.
func (c *Config) Validate() error {
	if c.YouTubeAPIKey == "" {
		return fmt.Errorf("youtube_api_key is required (set VIRAL_YOUTUBE_API_KEY)")
	}
	for _, rule := range c.TierRules {
		if rule.MaxSubscribers <= 0 || rule.MinViews < 0 || rule.MinRatio < 0 {
			return fmt.Errorf("invalid tier rule %q", rule.Tier)
		}
	}
	return nil
}
