package config

import (
	"fmt"
	"strconv"
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

// ValidationErrors collects every problem found in one pass
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks the configuration against the requirements of its
// environment and key store backend
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	fail := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 1 || port > 65535 {
		fail("SERVER_PORT", "must be a port number")
	}
	if cfg.RateLimitPerMinute < 0 {
		fail("RATE_LIMIT_PER_MINUTE", "must not be negative")
	}
	if cfg.SpoonacularTimeout < 0 {
		fail("SPOONACULAR_TIMEOUT", "must not be negative")
	}

	switch cfg.KeyStoreBackend {
	case BackendMemory:
	case BackendSQLite:
		if cfg.SQLitePath == "" {
			fail("SQLITE_PATH", "is required for the sqlite key store")
		}
	case BackendRedis:
		if !cfg.RedisConfigured() {
			fail("REDIS_HOST", "or REDIS_URL is required for the redis key store")
		}
	case BackendPostgres:
		if cfg.DBHost == "" {
			fail("DB_HOST", "is required for the postgres key store")
		}
		if cfg.DBName == "" {
			fail("DB_NAME", "is required for the postgres key store")
		}
		if cfg.DBUser == "" {
			fail("DB_USER", "is required for the postgres key store")
		}
	default:
		fail("KEYSTORE_BACKEND", fmt.Sprintf("unknown backend %q", cfg.KeyStoreBackend))
	}

	if cfg.Environment == Production {
		if cfg.SessionSecret == "" {
			fail("SESSION_SECRET", "is required in production")
		}
		if cfg.KeyStoreBackend == BackendMemory {
			fail("KEYSTORE_BACKEND", "memory loses stored keys on restart and is not allowed in production")
		}
	}

	if cfg.S3Bucket != "" && cfg.AWSRegion == "" {
		fail("AWS_REGION", "is required when S3_BUCKET_NAME is set")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
