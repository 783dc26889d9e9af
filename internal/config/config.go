// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonathan/ats-scorer/internal/breaker"
	"github.com/jonathan/ats-scorer/internal/db"
	"github.com/jonathan/ats-scorer/internal/embedding"
)

// DefaultPort is the HTTP port used when none is configured.
const DefaultPort = 8080

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, environment
// variables or CLI flags.
type Config struct {
	// Inputs
	Resume string `json:"resume,omitempty"`  // Path to the résumé file
	Job    string `json:"job,omitempty"`     // Path to job description text file
	JobURL string `json:"job_url,omitempty"` // URL to fetch job description from

	// Services
	APIKey         string            `json:"api_key,omitempty"`         // Gemini API key
	EmbeddingModel string            `json:"embedding_model,omitempty"` // Embedding model name
	Models         map[string]string `json:"models,omitempty"`          // Model override per tier (lite, standard, advanced)
	CircuitBreaker *breaker.Config   `json:"circuit_breaker,omitempty"` // Breaker around the generative and embedding services

	// History
	HistoryDriver string `json:"history_driver,omitempty"` // postgres, sqlite or memory
	HistoryPath   string `json:"history_path,omitempty"`   // SQLite file path
	DatabaseURL   string `json:"database_url,omitempty"`   // PostgreSQL connection URL

	// Server
	Port        int      `json:"port,omitempty"`
	CORSOrigins []string `json:"cors_origins,omitempty"` // Allowed origins; empty allows any

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Use headless browser for SPA job pages
	Verbose    bool `json:"verbose,omitempty"`     // Debug logging
	LogJSON    bool `json:"log_json,omitempty"`    // JSON log encoding
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	cb := breaker.DefaultConfig()
	return Config{
		EmbeddingModel: embedding.DefaultModel,
		CircuitBreaker: &cb,
		HistoryPath:    DefaultHistoryPath(),
		Port:           DefaultPort,
	}
}

// DefaultHistoryPath is ~/.ats-scorer/history.db, or a relative path when
// the home directory is unknown.
func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".ats-scorer", "history.db")
	}
	return filepath.Join(home, ".ats-scorer", "history.db")
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	switch c.HistoryDriver {
	case "", db.DriverPostgres, "postgresql", db.DriverSQLite, db.DriverMemory:
	default:
		return fmt.Errorf("config error: unknown 'history_driver' %q", c.HistoryDriver)
	}
	if c.HistoryDriver == db.DriverPostgres && c.DatabaseURL == "" {
		return fmt.Errorf("config error: 'database_url' is required for the postgres history driver")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	for tier := range c.Models {
		switch tier {
		case "lite", "standard", "advanced":
		default:
			return fmt.Errorf("config error: unknown model tier %q", tier)
		}
	}

	if cb := c.CircuitBreaker; cb != nil {
		if cb.FailureThreshold < 0 || cb.FailureThreshold > 1 {
			return fmt.Errorf("config error: 'circuit_breaker.failure_threshold' must be between 0 and 1")
		}
		if cb.Timeout < 0 || cb.Interval < 0 {
			return fmt.Errorf("config error: circuit breaker durations must be non-negative")
		}
	}

	// Validate file paths exist (if specified)
	for name, path := range map[string]string{"resume": c.Resume, "job": c.Job} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", name, path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = defaults.EmbeddingModel
	}
	if result.HistoryDriver == "" {
		result.HistoryDriver = defaults.HistoryDriver
	}
	if result.HistoryPath == "" {
		result.HistoryPath = defaults.HistoryPath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if len(result.CORSOrigins) == 0 {
		result.CORSOrigins = defaults.CORSOrigins
	}
	if result.CircuitBreaker == nil {
		result.CircuitBreaker = defaults.CircuitBreaker
	}

	// Per-tier overrides: explicit values win
	if len(defaults.Models) > 0 {
		models := make(map[string]string, len(defaults.Models)+len(result.Models))
		for tier, model := range defaults.Models {
			models[tier] = model
		}
		for tier, model := range result.Models {
			models[tier] = model
		}
		result.Models = models
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv overrides configuration with environment variables that are set.
func (c *Config) ApplyEnv() error {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	setString("GEMINI_API_KEY", &c.APIKey)
	setString("EMBEDDING_MODEL", &c.EmbeddingModel)
	setString("DATABASE_URL", &c.DatabaseURL)
	setString("HISTORY_DRIVER", &c.HistoryDriver)
	setString("HISTORY_PATH", &c.HistoryPath)

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT: %w", err)
		}
		c.Port = port
	}
	if v := os.Getenv("CIRCUIT_BREAKER_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid CIRCUIT_BREAKER_ENABLED: %w", err)
		}
		cb := breaker.DefaultConfig()
		if c.CircuitBreaker != nil {
			cb = *c.CircuitBreaker
		}
		cb.Enabled = enabled
		c.CircuitBreaker = &cb
	}
	return nil
}

// History returns the history driver and its data source. Without an
// explicit driver, a database URL selects postgres and anything else sqlite.
func (c *Config) History() (driver, dsn string) {
	driver = c.HistoryDriver
	if driver == "" {
		if c.DatabaseURL != "" {
			driver = db.DriverPostgres
		} else {
			driver = db.DriverSQLite
		}
	}
	switch driver {
	case db.DriverPostgres, "postgresql":
		return db.DriverPostgres, c.DatabaseURL
	case db.DriverSQLite:
		path := c.HistoryPath
		if path == "" {
			path = DefaultHistoryPath()
		}
		return driver, path
	default:
		return driver, ""
	}
}

// Breaker returns the breaker settings, falling back to the defaults.
func (c *Config) Breaker() breaker.Config {
	if c.CircuitBreaker == nil {
		return breaker.DefaultConfig()
	}
	return *c.CircuitBreaker
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
