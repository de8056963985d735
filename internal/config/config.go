package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Identity provider (Keycloak-compatible OpenID Connect realm)
	IdentityURL          string
	IdentityRealm        string
	IdentityClientID     string
	IdentityClientSecret string
	IdentityPublicKey    string // PEM encoded realm RSA key, used to verify RS256 bearer tokens
	IdentityJWTSecret    string // HS256 fallback for environments without an RSA realm key
	IdentityTimeout      time.Duration

	// Storage (S3-compatible: MinIO, AWS S3, Cloudflare R2, etc.)
	S3Region             string
	S3Bucket             string
	S3AccessKey          string
	S3SecretKey          string
	S3Endpoint           string        // Optional: for S3-compatible services
	S3PresignUploadTTL   time.Duration // Lifetime of upload (PUT) URLs
	S3PresignDownloadTTL time.Duration // Lifetime of read (GET) URLs

	// Storage webhook shared secret, sent by the notifier as "Authorization: Bearer <token>"
	StorageWebhookToken string

	// Observability (optional)
	SentryDSN      string
	MetricsEnabled bool
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "dealmarket-bff"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		Port:    envString("PORT", "8080"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/bff.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Identity provider
		IdentityURL:          envRequired("IDP_URL"),
		IdentityRealm:        envString("IDP_REALM", "dealmarket"),
		IdentityClientID:     envRequired("IDP_CLIENT_ID"),
		IdentityClientSecret: envRequired("IDP_CLIENT_SECRET"),
		IdentityPublicKey:    envString("IDP_PUBLIC_KEY", ""),
		IdentityJWTSecret:    envString("IDP_JWT_SECRET", ""),
		IdentityTimeout:      envDuration("IDP_TIMEOUT", 10*time.Second),

		// Storage
		S3Region:             envRequired("S3_REGION"),
		S3Bucket:             envRequired("S3_BUCKET"),
		S3AccessKey:          envRequired("S3_ACCESS_KEY"),
		S3SecretKey:          envRequired("S3_SECRET_KEY"),
		S3Endpoint:           envString("S3_ENDPOINT", ""),
		S3PresignUploadTTL:   envDuration("S3_PRESIGN_UPLOAD_TTL", 15*time.Minute),
		S3PresignDownloadTTL: envDuration("S3_PRESIGN_DOWNLOAD_TTL", 1*time.Hour),

		StorageWebhookToken: envString("STORAGE_WEBHOOK_TOKEN", ""),

		// Observability
		SentryDSN:      envString("SENTRY_DSN", ""),
		MetricsEnabled: envBool("METRICS_ENABLED", true),
	}

	if cfg.IdentityPublicKey == "" && cfg.IdentityJWTSecret == "" {
		slog.Error("config requires IDP_PUBLIC_KEY or IDP_JWT_SECRET to verify bearer tokens")
		os.Exit(1)
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures the public-facing surfaces are locked down for production deployments.
func validateProduction(cfg *Config) {
	if cfg.StorageWebhookToken == "" {
		slog.Error("production deployment requires STORAGE_WEBHOOK_TOKEN",
			"hint", "set APP_ENV=development to accept unauthenticated storage notifications locally")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy of the config with only public/safe fields.
// All secrets and credentials are excluded.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:       c.AppName,
		AppEnv:        c.AppEnv,
		Port:          c.Port,
		DBDriver:      c.DBDriver,
		IdentityURL:   c.IdentityURL,
		IdentityRealm: c.IdentityRealm,
		S3Region:      c.S3Region,
		S3Bucket:      c.S3Bucket,
		S3Endpoint:    c.S3Endpoint,
	}
}
