package config

import (
	"fmt"
)

// JWTConfig holds configuration for JWT token generation and validation.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// Enabled reports whether bearer authentication is switched on.
func (a Auth) Enabled() bool {
	return a.JWTSecret != ""
}

// JWTConfig builds the token configuration from the auth settings.
// It fails when authentication is disabled.
func (a Auth) JWTConfig() (*JWTConfig, error) {
	config := &JWTConfig{
		Secret:          a.JWTSecret,
		ExpirationHours: a.JWTExpirationHours,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("auth.jwt_secret cannot be empty")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("auth.jwt_expiration_hours must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
