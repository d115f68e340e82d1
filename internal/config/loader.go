// Package config provides configuration management for the esports predictor.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "ESPORTS_PREDICTOR"

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME}).
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))

	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing config file is not an error; defaults and environment variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	v := viper.New()

	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "esports-predictor")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("liquipedia.api_url", "https://api.liquipedia.net/api/v3")
	v.SetDefault("liquipedia.wiki", "counterstrike")
	v.SetDefault("liquipedia.timeout_seconds", 30)
	v.SetDefault("liquipedia.max_retries", 3)
	v.SetDefault("liquipedia.rate_limit", 60.0/3600.0)
	v.SetDefault("liquipedia.circuit_breaker_max", 5)
	v.SetDefault("liquipedia.page_limit", 1000)
	v.SetDefault("liquipedia.max_pages", 100)
	v.SetDefault("ingestion.start_date", "2020-01-01")
	v.SetDefault("ingestion.end_date", "2030-01-01")
	v.SetDefault("ingestion.incremental_buffer_days", 30)
	v.SetDefault("features.min_matches", 5)
	v.SetDefault("features.k_factor", 32.0)
	v.SetDefault("features.default_rating", 1500.0)
	v.SetDefault("model_service.url", "http://localhost:8001")
	v.SetDefault("model_service.request_timeout_seconds", 30)
	v.SetDefault("model_service.cache_ttl_seconds", 300)
	v.SetDefault("model_service.cache_max_size", 1000)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("paths.tournaments_csv", "data/processed/tournaments.csv")
	v.SetDefault("paths.matches_csv", "data/processed/matches.csv")
	v.SetDefault("paths.matches_clean_csv", "data/processed/matches_deduplicated.csv")
	v.SetDefault("paths.feature_matrix_csv", "data/processed/feature_matrix.csv")
	v.SetDefault("paths.elo_state", "data/models/elo_ratings.json")
	v.SetDefault("paths.team_stats_state", "data/models/team_stats.json")

	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}
