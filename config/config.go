package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Key store backends selectable with KEYSTORE_BACKEND
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort      string
	ServerHost      string
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	// Spoonacular
	SpoonacularBaseURL string
	SpoonacularTimeout time.Duration

	// Key store
	KeyStoreBackend     string
	KeyEncryptionSecret string
	SQLitePath          string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Profile cookie signing
	SessionSecret string

	// Export publication, disabled when S3Bucket is empty
	S3Bucket  string
	AWSRegion string

	// Inbound requests per profile and minute, 0 disables limiting
	RateLimitPerMinute int
}

// LoadConfig creates a new Config instance with values from environment
// variables, Docker secrets and defaults, in that order of precedence. A
// .env file in the working directory is loaded first when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := load(GetEnvironment())
	if err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func load(env Environment) (*Config, error) {
	// CI provides everything through the environment
	useSecrets := env != CI
	get := func(envVar, def string) string {
		return lookup(envVar, useSecrets, def)
	}

	cfg := &Config{
		Environment:         env,
		ServerPort:          get("SERVER_PORT", "8080"),
		ServerHost:          get("SERVER_HOST", "0.0.0.0"),
		SpoonacularBaseURL:  get("SPOONACULAR_BASE_URL", ""),
		KeyStoreBackend:     strings.ToLower(get("KEYSTORE_BACKEND", BackendMemory)),
		KeyEncryptionSecret: get("KEY_ENCRYPTION_SECRET", ""),
		SQLitePath:          get("SQLITE_PATH", "recipes.db"),
		DBHost:              get("DB_HOST", "localhost"),
		DBPort:              get("DB_PORT", "5432"),
		DBUser:              get("DB_USER", "postgres"),
		DBPassword:          get("DB_PASSWORD", ""),
		DBName:              get("DB_NAME", "recipes"),
		DBSSLMode:           get("DB_SSL_MODE", "disable"),
		RedisHost:           get("REDIS_HOST", ""),
		RedisPort:           get("REDIS_PORT", "6379"),
		RedisPassword:       get("REDIS_PASSWORD", ""),
		RedisURL:            get("REDIS_URL", ""),
		SessionSecret:       get("SESSION_SECRET", ""),
		S3Bucket:            get("S3_BUCKET_NAME", ""),
		AWSRegion:           get("AWS_REGION", ""),
		CORSOrigins:         splitList(get("CORS_ORIGINS", "http://localhost:8080")),
	}

	var err error
	if cfg.RedisDB, err = parseInt("REDIS_DB", get("REDIS_DB", "0")); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMinute, err = parseInt("RATE_LIMIT_PER_MINUTE", get("RATE_LIMIT_PER_MINUTE", "120")); err != nil {
		return nil, err
	}
	if cfg.SpoonacularTimeout, err = parseDuration("SPOONACULAR_TIMEOUT", get("SPOONACULAR_TIMEOUT", "0s")); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = parseDuration("SHUTDOWN_TIMEOUT", get("SHUTDOWN_TIMEOUT", "10s")); err != nil {
		return nil, err
	}

	if cfg.SessionSecret == "" && env != Production {
		cfg.SessionSecret = randomSecret()
		slog.Warn("SESSION_SECRET not set, profile cookies will not survive a restart", "component", "config")
	}

	return cfg, nil
}

// ServerAddr returns host:port for the HTTP listener
func (c *Config) ServerAddr() string {
	return net.JoinHostPort(c.ServerHost, c.ServerPort)
}

// RedisAddr returns host:port of the Redis server, or "" when not configured
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return net.JoinHostPort(c.RedisHost, c.RedisPort)
}

// RedisConfigured reports whether a Redis server is reachable by address or URL
func (c *Config) RedisConfigured() bool {
	return c.RedisHost != "" || c.RedisURL != ""
}

// PostgresDSN returns the lib/pq connection string
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// ExportsEnabled reports whether exports can be published to S3
func (c *Config) ExportsEnabled() bool {
	return c.S3Bucket != ""
}

// lookup resolves a setting from the environment, then from the Docker
// secret named after the lower-cased variable, then the default
func lookup(envVar string, useSecrets bool, def string) string {
	if value := os.Getenv(envVar); value != "" {
		return value
	}
	if useSecrets {
		if value := readSecret(strings.ToLower(envVar)); value != "" {
			return value
		}
	}
	return def
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func parseInt(name, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return n, nil
}

// parseDuration accepts Go durations ("5s") and bare integers as seconds
func parseDuration(name, value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if n, err := strconv.Atoi(value); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("failed to generate session secret: %v", err))
	}
	return hex.EncodeToString(buf)
}
