package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix        = "DISHCOVERY"
	devJWTSecret     = "dishcovery-dev-secret"
	defaultSecretDir = "/run/secrets"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment     `mapstructure:"-"`
	Server      ServerConfig    `mapstructure:"server"`
	Log         LogConfig       `mapstructure:"log"`
	Database    DatabaseConfig  `mapstructure:"database"`
	Redis       RedisConfig     `mapstructure:"redis"`
	Storage     StorageConfig   `mapstructure:"storage"`
	Gemini      GeminiConfig    `mapstructure:"gemini"`
	YouTube     YouTubeConfig   `mapstructure:"youtube"`
	Session     SessionConfig   `mapstructure:"session"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig contains logger configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig contains database configuration. Driver is "sqlite" or
// "postgres"; Path is only used by sqlite.
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Path            string        `mapstructure:"path"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// PostgresDSN returns a lib/pq connection string.
func (c DatabaseConfig) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// RedisConfig contains Redis configuration. URL takes precedence over Host.
type RedisConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Enabled reports whether a Redis server is configured.
func (c RedisConfig) Enabled() bool {
	return c.URL != "" || c.Host != ""
}

// StorageConfig selects the slot store backend: memory, redis, s3 or sql.
type StorageConfig struct {
	Backend string   `mapstructure:"backend"`
	S3      S3Config `mapstructure:"s3"`
}

// S3Config holds S3 bucket and client settings. Endpoint is set for
// S3-compatible servers such as MinIO.
type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Prefix          string `mapstructure:"prefix"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

// GeminiConfig configures the generative-text client.
type GeminiConfig struct {
	APIKey           string        `mapstructure:"api_key"`
	BaseURL          string        `mapstructure:"base_url"`
	Model            string        `mapstructure:"model"`
	Timeout          time.Duration `mapstructure:"timeout"`
	StructuredOutput bool          `mapstructure:"structured_output"`
	CacheTTL         time.Duration `mapstructure:"cache_ttl"`
}

// YouTubeConfig configures the video search client.
type YouTubeConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SessionConfig configures anonymous client sessions.
type SessionConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig limits generation requests per client and per remote
// address, and session creation per remote address. All limits share one
// window.
type RateLimitConfig struct {
	Requests        int           `mapstructure:"requests"`
	AddressRequests int           `mapstructure:"address_requests"`
	SessionRequests int           `mapstructure:"session_requests"`
	Window          time.Duration `mapstructure:"window"`
}

// LoadConfig reads configuration from defaults, an optional config.yaml,
// a .env file outside production, DISHCOVERY_* environment variables and
// Docker secrets, in increasing order of precedence for secrets.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	if env != Production {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if path := os.Getenv(envPrefix + "_CONFIG"); path != "" {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Environment = env

	applySecrets(cfg)

	if cfg.Session.JWTSecret == "" && env != Production {
		cfg.Session.JWTSecret = devJWTSecret
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "dishcovery.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "dishcovery")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 25)
	v.SetDefault("database.conn_max_lifetime", "5m")

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.backend", "memory")
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.prefix", "slots")
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.access_key_id", "")
	v.SetDefault("storage.s3.secret_access_key", "")

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.timeout", "60s")
	v.SetDefault("gemini.structured_output", false)
	v.SetDefault("gemini.cache_ttl", "0s")

	v.SetDefault("youtube.api_key", "")
	v.SetDefault("youtube.base_url", "https://www.googleapis.com/youtube/v3")
	v.SetDefault("youtube.timeout", "10s")

	v.SetDefault("session.jwt_secret", "")
	v.SetDefault("session.ttl", "720h")

	v.SetDefault("rate_limit.requests", 10)
	v.SetDefault("rate_limit.address_requests", 30)
	v.SetDefault("rate_limit.session_requests", 20)
	v.SetDefault("rate_limit.window", "1m")
}

// applySecrets fills empty sensitive values from Docker secrets.
func applySecrets(cfg *Config) {
	secrets := []struct {
		name   string
		target *string
	}{
		{"gemini_api_key", &cfg.Gemini.APIKey},
		{"youtube_api_key", &cfg.YouTube.APIKey},
		{"jwt_secret", &cfg.Session.JWTSecret},
		{"db_password", &cfg.Database.Password},
		{"redis_password", &cfg.Redis.Password},
		{"s3_secret_access_key", &cfg.Storage.S3.SecretAccessKey},
	}
	for _, s := range secrets {
		if *s.target == "" {
			*s.target = readSecret(s.name)
		}
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = defaultSecretDir
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
