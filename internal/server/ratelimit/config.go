package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the rate limit for one endpoint. Paths ending in "/"
// match by prefix.
type EndpointConfig struct {
	Path   string
	Method string
	// Limit is the number of requests per Window.
	Limit  int
	Window time.Duration
	// Burst is the bucket capacity; 0 defaults to Limit.
	Burst int
}

// LoadConfig reads the rate limiting configuration from environment
// variables, falling back to the built-in defaults.
func LoadConfig() *Config {
	enabled := getEnvBool("RANKER_RATELIMIT_ENABLED", true)
	if !enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         enabled,
		DefaultLimit:    getEnvInt("RANKER_RATELIMIT_DEFAULT_LIMIT", 300),
		DefaultWindow:   getEnvDuration("RANKER_RATELIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RANKER_RATELIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("RANKER_RATELIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RANKER_RATELIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-endpoint limits. Ranking burns
// embedding quota for every résumé in the request, so it sits in a much
// stricter tier than the read endpoints.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/v1/rank", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},

		// Capability probe is cheap but has no reason to be hammered.
		{Path: "/v1/capabilities", Method: "GET", Limit: 300, Window: time.Minute},

		// GET /health is unlimited, special-cased in the matcher.
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
