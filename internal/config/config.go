package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// Cleaning pipeline paths.
	CSVPath        string
	DBPath         string
	CleanedCSVPath string
	AliasFile      string // optional YAML of extra header aliases

	// Query service.
	HTTPAddr string
	TopK     int

	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	topK, err := parseTopK()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		CSVPath:        envOrDefault("CSV_PATH", "data/ufo_sightings.csv"),
		DBPath:         envOrDefault("DB_PATH", "ufo_sightings.db"),
		CleanedCSVPath: envOrDefault("CLEANED_CSV_PATH", "data/ufo_cleaned.csv"),
		AliasFile:      os.Getenv("ALIAS_FILE"),

		HTTPAddr: envOrDefault("HTTP_ADDR", ":8080"),
		TopK:     topK,

		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	if cfg.CSVPath == "" {
		return nil, errors.New("CSV_PATH is required")
	}
	if cfg.DBPath == "" {
		return nil, errors.New("DB_PATH is required")
	}

	return cfg, nil
}

// LoadAliases reads a YAML file mapping raw header names to canonical field
// names, used to extend the built-in alias table for nonstandard exports.
// An empty path returns an empty map.
func LoadAliases(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alias file: %w", err)
	}

	aliases := make(map[string]string)
	if err := yaml.Unmarshal(data, &aliases); err != nil {
		return nil, fmt.Errorf("parse alias file %s: %w", path, err)
	}
	return aliases, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseShutdownTimeout() (time.Duration, error) {
	s := envOrDefault("SHUTDOWN_TIMEOUT", "10s")
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, errors.New("invalid SHUTDOWN_TIMEOUT")
	}
	return d, nil
}

func parseTopK() (int, error) {
	s := envOrDefault("TOP_K", "10")
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid TOP_K")
	}
	return n, nil
}
