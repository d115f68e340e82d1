// Package config provides configuration management for the esports predictor.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App          AppConfig          `mapstructure:"app" validate:"required"`
	Liquipedia   LiquipediaConfig   `mapstructure:"liquipedia" validate:"required"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Ingestion    IngestionConfig    `mapstructure:"ingestion" validate:"required"`
	Features     FeaturesConfig     `mapstructure:"features" validate:"required"`
	ModelService ModelServiceConfig `mapstructure:"model_service" validate:"required"`
	Metrics      MetricsConfig      `mapstructure:"metrics" validate:"required"`
	Paths        PathsConfig        `mapstructure:"paths" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// LiquipediaConfig represents Liquipedia API configuration
type LiquipediaConfig struct {
	APIURL            string  `mapstructure:"api_url" validate:"required,url"`
	APIKey            string  `mapstructure:"api_key"`
	Wiki              string  `mapstructure:"wiki" validate:"required"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries        int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit         float64 `mapstructure:"rate_limit" validate:"required,gt=0"` // requests per second
	CircuitBreakerMax int     `mapstructure:"circuit_breaker_max" validate:"required,gt=0"`
	PageLimit         int     `mapstructure:"page_limit" validate:"required,gt=0"`
	MaxPages          int     `mapstructure:"max_pages" validate:"required,gt=0"`
}

// DatabaseConfig represents the optional Postgres match archive
type DatabaseConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port"`
	Name               string `mapstructure:"name"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode"`
	MaxConnections     int    `mapstructure:"max_connections"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections"`
}

// IngestionConfig represents match/tournament ingestion configuration
type IngestionConfig struct {
	StartDate             string `mapstructure:"start_date" validate:"required,datestring"`
	EndDate               string `mapstructure:"end_date" validate:"required,datestring"`
	IncrementalBufferDays int    `mapstructure:"incremental_buffer_days" validate:"required,gt=0"`
	SyncSchedule          string `mapstructure:"sync_schedule"`
}

// FeaturesConfig represents feature engine configuration
type FeaturesConfig struct {
	MinMatches    int     `mapstructure:"min_matches" validate:"required,gte=0"`
	KFactor       float64 `mapstructure:"k_factor" validate:"required,gt=0"`
	DefaultRating float64 `mapstructure:"default_rating" validate:"required,gt=0"`
}

// ModelServiceConfig represents the external model-serving service
type ModelServiceConfig struct {
	URL                   string `mapstructure:"url" validate:"required,url"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
	CacheTTLSeconds       int    `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	CacheMaxSize          int    `mapstructure:"cache_max_size" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// PathsConfig represents dataset and model-state file locations
type PathsConfig struct {
	TournamentsCSV   string `mapstructure:"tournaments_csv" validate:"required"`
	MatchesCSV       string `mapstructure:"matches_csv" validate:"required"`
	MatchesCleanCSV  string `mapstructure:"matches_clean_csv" validate:"required"`
	FeatureMatrixCSV string `mapstructure:"feature_matrix_csv" validate:"required"`
	EloState         string `mapstructure:"elo_state" validate:"required"`
	TeamStatsState   string `mapstructure:"team_stats_state" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
