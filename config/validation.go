package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	RequiredFields []string
}

var (
	// Environment-specific requirements
	requirements = map[Environment]ConfigRequirements{
		Development: {
			RequiredFields: []string{"gemini.api_key"},
		},
		Test: {
			RequiredFields: []string{},
		},
		CI: {
			RequiredFields: []string{"gemini.api_key", "session.jwt_secret"},
		},
		Production: {
			RequiredFields: []string{
				"gemini.api_key",
				"youtube.api_key",
				"session.jwt_secret",
			},
		},
	}

	storageBackends = map[string]bool{"memory": true, "redis": true, "s3": true, "sql": true}
	databaseDrivers = map[string]bool{"sqlite": true, "postgres": true}
)

func fieldValue(cfg *Config, field string) string {
	switch field {
	case "gemini.api_key":
		return cfg.Gemini.APIKey
	case "youtube.api_key":
		return cfg.YouTube.APIKey
	case "session.jwt_secret":
		return cfg.Session.JWTSecret
	default:
		return ""
	}
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs []string

	for _, field := range requirements[cfg.Environment].RequiredFields {
		if fieldValue(cfg, field) == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"}.Error())
		}
	}

	if !databaseDrivers[cfg.Database.Driver] {
		errs = append(errs, ValidationError{Field: "database.driver", Message: "must be sqlite or postgres"}.Error())
	}

	if !storageBackends[cfg.Storage.Backend] {
		errs = append(errs, ValidationError{Field: "storage.backend", Message: "must be memory, redis, s3 or sql"}.Error())
	}
	if cfg.Storage.Backend == "redis" && !cfg.Redis.Enabled() {
		errs = append(errs, ValidationError{Field: "redis.url", Message: "redis storage needs redis.url or redis.host"}.Error())
	}
	if cfg.Storage.Backend == "s3" && cfg.Storage.S3.Bucket == "" {
		errs = append(errs, ValidationError{Field: "storage.s3.bucket", Message: "s3 storage needs a bucket"}.Error())
	}
	if cfg.Environment == Production && cfg.Storage.Backend == "memory" {
		errs = append(errs, ValidationError{Field: "storage.backend", Message: "memory storage is not allowed in production"}.Error())
	}

	if cfg.RateLimit.Requests <= 0 || cfg.RateLimit.Window <= 0 {
		errs = append(errs, ValidationError{Field: "rate_limit", Message: "requests and window must be positive"}.Error())
	}
	if cfg.RateLimit.AddressRequests <= 0 || cfg.RateLimit.SessionRequests <= 0 {
		errs = append(errs, ValidationError{Field: "rate_limit", Message: "address_requests and session_requests must be positive"}.Error())
	}
	if cfg.Session.TTL <= 0 {
		errs = append(errs, ValidationError{Field: "session.ttl", Message: "must be positive"}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
