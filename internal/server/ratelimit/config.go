package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the limit for requests matching Path and Method. A Path
// ending in "/" matches every path under it.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // Requests per Window; zero or less means unlimited
	Window time.Duration
	Burst  int // Bucket capacity; zero means Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTimeout     time.Duration // Buckets unused for this long are dropped
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// LoadConfig reads RATE_LIMIT_* environment variables on top of the defaults.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 300),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		IdleTimeout:     getEnvDuration("RATE_LIMIT_IDLE_TIMEOUT", time.Hour),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-endpoint limits. Endpoints that call
// the generative service are the most expensive and the most limited.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/v1/optimize", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/api/v1/analyze", Method: "POST", Limit: 60, Window: time.Hour, Burst: 5},
		{Path: "/api/v1/parse/jd", Method: "POST", Limit: 120, Window: time.Hour, Burst: 10},

		{Path: "/api/v1/parse/resume", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/api/v1/validate/latex", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/api/v1/history/", Method: "DELETE", Limit: 60, Window: time.Minute, Burst: 10},

		// Reads fall back to the default limit; health is unlimited.
		{Path: "/api/v1/health", Method: "GET", Limit: 0},
	}
}

// MatchEndpoint returns the config for path and method, preferring an exact
// path over a prefix. It returns nil when nothing matches.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	for i := range configs {
		if configs[i].Method == method && configs[i].Path == path {
			return &configs[i]
		}
	}
	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}
	return nil
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
