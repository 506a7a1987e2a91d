// Package config loads and validates application configuration.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/riftline/guidecrawl/internal/logger"
)

// Default configuration values.
const (
	DefaultRequestTimeout  = 10 * time.Second
	DefaultMaxAttempts     = 3
	DefaultRetryBackoff    = 1 * time.Second
	DefaultPolitenessDelay = 2 * time.Second
	DefaultMaxCandidates   = 20
	DefaultUserAgent       = "guidecrawl/1.0 (+https://github.com/riftline/guidecrawl)"
	DefaultProfilesDir     = "profiles"
	DefaultRecordIndex     = "content_records"
)

// AppConfig holds application-level settings.
type AppConfig struct {
	// Name is the application name
	Name string
	// Environment is the runtime environment (development, staging, production)
	Environment string
	// Debug enables debug logging
	Debug bool
}

// CrawlerConfig holds settings for the acquisition pipeline.
type CrawlerConfig struct {
	// UserAgent is sent on every outbound request
	UserAgent string
	// RequestTimeout bounds a single fetch attempt
	RequestTimeout time.Duration
	// MaxAttempts is the total number of fetch attempts per URL
	MaxAttempts int
	// RetryBackoff is the base backoff; attempt N waits N*RetryBackoff
	RetryBackoff time.Duration
	// PolitenessDelay is enforced between any two fetches within a run
	PolitenessDelay time.Duration
	// MaxCandidates caps the number of candidates processed per run
	MaxCandidates int
	// ProfilesDir is the directory containing site profile YAML files
	ProfilesDir string
}

// ElasticsearchConfig holds settings for the record store backend.
type ElasticsearchConfig struct {
	// Addresses lists the Elasticsearch node URLs
	Addresses []string
	// Username and Password configure basic authentication
	Username string
	Password string
	// APIKey configures API key authentication and takes precedence
	APIKey string
	// Index is the index holding persisted content records
	Index string
}

// Config is the top-level application configuration.
type Config struct {
	App           AppConfig
	Logger        logger.Config
	Crawler       CrawlerConfig
	Elasticsearch ElasticsearchConfig
}

// Validate checks the configuration for fatal problems.
func (c *Config) Validate() error {
	if c.Crawler.UserAgent == "" {
		return errors.New("crawler user_agent is required")
	}
	if c.Crawler.MaxAttempts < 1 {
		return errors.New("crawler max_attempts must be at least 1")
	}
	if c.Crawler.RequestTimeout <= 0 {
		return errors.New("crawler request_timeout must be positive")
	}
	if c.Crawler.MaxCandidates < 1 {
		return errors.New("crawler max_candidates must be at least 1")
	}
	if c.Crawler.ProfilesDir == "" {
		return errors.New("crawler profiles_dir is required")
	}
	if len(c.Elasticsearch.Addresses) == 0 {
		return errors.New("elasticsearch addresses are required")
	}
	switch c.App.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("invalid environment: %s", c.App.Environment)
	}
	return nil
}

// SetDefaults registers default values on the given viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app", map[string]any{
		"name":        "guidecrawl",
		"environment": "production",
		"debug":       false,
	})

	v.SetDefault("logger", map[string]any{
		"level":       "info",
		"encoding":    "json",
		"development": false,
	})

	v.SetDefault("crawler", map[string]any{
		"user_agent":       DefaultUserAgent,
		"request_timeout":  DefaultRequestTimeout.String(),
		"max_attempts":     DefaultMaxAttempts,
		"retry_backoff":    DefaultRetryBackoff.String(),
		"politeness_delay": DefaultPolitenessDelay.String(),
		"max_candidates":   DefaultMaxCandidates,
		"profiles_dir":     DefaultProfilesDir,
	})

	v.SetDefault("elasticsearch", map[string]any{
		"addresses": []string{"http://127.0.0.1:9200"},
		"index":     DefaultRecordIndex,
	})
}

// Load reads configuration from the given viper instance into a Config.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        v.GetString("app.name"),
			Environment: v.GetString("app.environment"),
			Debug:       v.GetBool("app.debug"),
		},
		Logger: logger.Config{
			Level:       v.GetString("logger.level"),
			Encoding:    v.GetString("logger.encoding"),
			Development: v.GetBool("logger.development"),
		},
		Crawler: CrawlerConfig{
			UserAgent:       v.GetString("crawler.user_agent"),
			RequestTimeout:  v.GetDuration("crawler.request_timeout"),
			MaxAttempts:     v.GetInt("crawler.max_attempts"),
			RetryBackoff:    v.GetDuration("crawler.retry_backoff"),
			PolitenessDelay: v.GetDuration("crawler.politeness_delay"),
			MaxCandidates:   v.GetInt("crawler.max_candidates"),
			ProfilesDir:     v.GetString("crawler.profiles_dir"),
		},
		Elasticsearch: ElasticsearchConfig{
			Addresses: v.GetStringSlice("elasticsearch.addresses"),
			Username:  v.GetString("elasticsearch.username"),
			Password:  v.GetString("elasticsearch.password"),
			APIKey:    v.GetString("elasticsearch.api_key"),
			Index:     v.GetString("elasticsearch.index"),
		},
	}

	if cfg.App.Debug {
		cfg.Logger.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
