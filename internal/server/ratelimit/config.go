package ratelimit

import (
	"net/http"
	"time"
)

// GeneratePath is the rate limited copy generation endpoint
const GeneratePath = "/api/generate"

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool
	// DefaultLimit applies to endpoints without their own entry; 0 leaves them unlimited
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	// IdleTTL is how long an unused client bucket is kept
	IdleTTL         time.Duration
	EndpointConfigs []EndpointConfig
}

// NewConfig builds a configuration that limits only the generate endpoint.
func NewConfig(enabled bool, generateLimit int, window time.Duration, burst int) *Config {
	return &Config{
		Enabled:         enabled,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		EndpointConfigs: []EndpointConfig{
			{Path: GeneratePath, Method: http.MethodPost, Limit: generateLimit, Window: window, Burst: burst},
		},
	}
}
