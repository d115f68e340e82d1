// Package config provides configuration management for the esports predictor.
package config

import (
	"os"
	"testing"
)

const (
	validConfigPath       = "testdata/valid_config.yaml"
	nonexistentConfigPath = "testdata/nonexistent_config.yaml"
	expectedNoErrorMsg    = "expected no error, got %v"
	expectedNonNilConfig  = "expected non-nil config"
)

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg == nil {
		t.Fatal(expectedNonNilConfig)
	}

	if cfg.App.Name != "esports-predictor" {
		t.Errorf("expected app name 'esports-predictor', got '%s'", cfg.App.Name)
	}

	if cfg.App.Environment != "development" {
		t.Errorf("expected environment 'development', got '%s'", cfg.App.Environment)
	}

	if cfg.Liquipedia.Wiki != "counterstrike" {
		t.Errorf("expected wiki 'counterstrike', got '%s'", cfg.Liquipedia.Wiki)
	}

	if cfg.Liquipedia.PageLimit != 1000 {
		t.Errorf("expected page limit 1000, got %d", cfg.Liquipedia.PageLimit)
	}
}

// TestLoadConfigFileNotFound tests handling of missing configuration file
func TestLoadConfigFileNotFound(t *testing.T) {
	if _, err := Load(nonexistentConfigPath); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

// TestLoadExpandsEnvironmentVariables tests ${VAR} expansion in the YAML file
func TestLoadExpandsEnvironmentVariables(t *testing.T) {
	os.Setenv("LIQUIPEDIA_API_KEY", "secret-from-env")
	defer os.Unsetenv("LIQUIPEDIA_API_KEY")

	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.Liquipedia.APIKey != "secret-from-env" {
		t.Errorf("expected API key from environment, got '%s'", cfg.Liquipedia.APIKey)
	}
}

// TestLoadWithDefaults tests defaults when no config file exists
func TestLoadWithDefaults(t *testing.T) {
	cfg, err := LoadWithDefaults(nonexistentConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.Features.MinMatches != 5 {
		t.Errorf("expected default min_matches 5, got %d", cfg.Features.MinMatches)
	}
	if cfg.Features.DefaultRating != 1500.0 {
		t.Errorf("expected default rating 1500.0, got %f", cfg.Features.DefaultRating)
	}
	if cfg.Ingestion.IncrementalBufferDays != 30 {
		t.Errorf("expected default incremental buffer 30, got %d", cfg.Ingestion.IncrementalBufferDays)
	}
}

// TestValidateSuccess tests validation of a complete configuration
func TestValidateSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if err := Validate(cfg); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

// TestValidateRejectsBadEnvironment tests custom environment validation
func TestValidateRejectsBadEnvironment(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	cfg.App.Environment = "invalid"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for invalid environment")
	}
}

// TestValidateRejectsInvertedDateRange tests cross-field date validation
func TestValidateRejectsInvertedDateRange(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	cfg.Ingestion.StartDate = "2025-12-01"
	cfg.Ingestion.EndDate = "2023-10-15"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for inverted date range")
	}
}

// TestValidateDatabaseRequiresCredentials tests archive cross-field checks
func TestValidateDatabaseRequiresCredentials(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	cfg.Database.Enabled = true
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for enabled archive without credentials")
	}
}

// TestGetDatabaseDSN tests DSN formatting
func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "localhost", Port: 5432, Name: "esports", User: "predictor",
		Password: "pw", SSLMode: "disable",
	}}

	dsn := cfg.GetDatabaseDSN()
	expected := "postgres://predictor:pw@localhost:5432/esports?sslmode=disable"
	if dsn != expected {
		t.Errorf("expected DSN %q, got %q", expected, dsn)
	}
}
