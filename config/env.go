package config

import (
	"os"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment from CI,
// DISHCOVERY_ENV or ENV, defaulting to development.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}

	env := os.Getenv(envPrefix + "_ENV")
	if env == "" {
		env = os.Getenv("ENV")
	}
	switch Environment(env) {
	case Production, Test, CI:
		return Environment(env)
	default:
		return Development
	}
}

// IsProduction reports whether the config was loaded in production.
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// IsDevelopment reports whether the config was loaded in development.
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}
