package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// minJWTSecretLength はHS256の鍵として受け付ける最小バイト数。
const minJWTSecretLength = 32

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	DatabaseURL string

	// OAuth
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// Session
	SessionMaxAge          int
	SessionCleanupInterval time.Duration

	// Bearer
	JWTSecret string // 空の場合Bearerトークン認証は無効

	// Rate Limit（1分あたりのリクエスト数）
	RateLimitGeneral int
	RateLimitWrite   int

	// Observability
	SentryDSN         string
	LogLevel          string
	WorkerMetricsPort string

	// Server
	AppEnv     string
	ServerPort string
	BaseURL    string

	// Cookie
	CookieSecure bool
	CookieDomain string

	// CORS
	CORSAllowedOrigin string
}

// IsProduction は本番環境として起動しているかを返す。
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// BearerEnabled はBearerトークン認証が有効かを返す。
func (c *Config) BearerEnabled() bool {
	return c.JWTSecret != ""
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string
	required := func(key string) string {
		v := os.Getenv(key)
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg.DatabaseURL = required("DATABASE_URL")
	cfg.GoogleClientID = required("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = required("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = required("GOOGLE_REDIRECT_URL")
	cfg.BaseURL = required("BASE_URL")

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.SessionMaxAge = getEnvInt("SESSION_MAX_AGE", 86400)
	cfg.SessionCleanupInterval = getEnvDuration("SESSION_CLEANUP_INTERVAL", time.Hour)
	cfg.JWTSecret = os.Getenv("AUTH_JWT_SECRET")
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitWrite = getEnvInt("RATE_LIMIT_WRITE", 30)
	cfg.SentryDSN = os.Getenv("SENTRY_DSN")
	cfg.LogLevel = getEnvString("LOG_LEVEL", "info")
	cfg.WorkerMetricsPort = getEnvString("WORKER_METRICS_PORT", "9090")
	cfg.AppEnv = getEnvString("APP_ENV", "development")
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.CookieSecure = strings.HasPrefix(cfg.BaseURL, "https://")
	cfg.CookieDomain = getEnvString("COOKIE_DOMAIN", "")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret != "" && len(c.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("AUTH_JWT_SECRET must be at least %d bytes", minJWTSecretLength)
	}
	if c.SessionMaxAge <= 0 {
		return fmt.Errorf("SESSION_MAX_AGE must be positive: %d", c.SessionMaxAge)
	}
	if c.RateLimitGeneral <= 0 || c.RateLimitWrite <= 0 {
		return fmt.Errorf("rate limits must be positive: general=%d write=%d", c.RateLimitGeneral, c.RateLimitWrite)
	}
	if c.SessionCleanupInterval <= 0 {
		return fmt.Errorf("SESSION_CLEANUP_INTERVAL must be positive: %v", c.SessionCleanupInterval)
	}
	return nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
