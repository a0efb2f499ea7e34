package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string

	// MediaBaseURL prefixes relative image paths. When empty, image URLs are
	// built from the incoming request host and MediaPath.
	MediaBaseURL string
	MediaPath    string

	CORSAllowedOrigins []string

	DB      DatabaseConfig
	Redis   RedisConfig
	Catalog CatalogConfig
	S3      S3Config
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the lib/pq connection URL for the configuration.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		url.QueryEscape(c.User), url.QueryEscape(c.Password), c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// RedisConfig contains Redis connection parameters. An empty Host disables
// the catalog cache.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled reports whether a Redis host is configured.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

// CatalogConfig tunes catalog listing and caching.
type CatalogConfig struct {
	PageSize    int
	MaxPageSize int
	CacheTTL    time.Duration
}

// S3Config contains AWS S3 configuration for product images. An empty
// Bucket disables uploads.
type S3Config struct {
	Region    string
	Bucket    string
	PublicURL string
}

// Enabled reports whether a bucket is configured.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	cfg, err := LoadTooling()
	if err != nil {
		return nil, err
	}

	// Validate JWT_SECRET
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for authentication")
	}

	return cfg, nil
}

// LoadTooling is Load without the API-only requirements. Maintenance
// commands never verify tokens.
func LoadTooling() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.MediaBaseURL = strings.TrimSuffix(getEnv("MEDIA_BASE_URL", ""), "/")
	cfg.MediaPath = getEnv("MEDIA_PATH", "/media/")
	cfg.CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"))

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", ""),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Catalog
	cfg.Catalog = CatalogConfig{
		PageSize:    getEnvInt("PAGE_SIZE", 20),
		MaxPageSize: getEnvInt("MAX_PAGE_SIZE", 100),
	}
	var err error
	if cfg.Catalog.CacheTTL, err = parseDurationEnv("CATALOG_CACHE_TTL", "5m"); err != nil {
		return nil, fmt.Errorf("invalid CATALOG_CACHE_TTL: %w", err)
	}
	if cfg.Catalog.PageSize <= 0 || cfg.Catalog.MaxPageSize < cfg.Catalog.PageSize {
		return nil, errors.New("invalid pagination: PAGE_SIZE must be > 0 and <= MAX_PAGE_SIZE")
	}

	// S3 (product images)
	cfg.S3 = S3Config{
		Region:    getEnv("S3_REGION", "eu-central-1"),
		Bucket:    getEnv("S3_BUCKET", ""),
		PublicURL: strings.TrimSuffix(getEnv("S3_PUBLIC_URL", ""), "/"),
	}

	// Basic validation for DB parameters.
	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
