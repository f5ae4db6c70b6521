package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const devCookieSecret = "dev-only-cookie-secret-change-me"

type Web struct {
	Addr          string
	APIBaseURL    string
	APITimeout    time.Duration
	CookieSecret  []byte
	CookieSecure  bool
	RedisAddr     string
	SubmissionTTL time.Duration
}

type API struct {
	Addr        string
	CORSOrigins []string
}

type Database struct {
	Driver string // mysql | sqlite
	DSN    string
}

type Storage struct {
	Driver         string // local | s3
	LocalDir       string
	LocalURLPrefix string
	S3Region       string
	S3Bucket       string
	S3Prefix       string
	S3PublicBase   string
}

type Config struct {
	Web             Web
	API             API
	Database        Database
	Storage         Storage
	LogLevel        slog.Level
	ShutdownTimeout time.Duration
}

// FromEnv reads the process environment. Call godotenv.Load first if a .env
// file should be honoured. Invalid values fall back to defaults.
func FromEnv() Config {
	return Config{
		Web: Web{
			Addr:          getEnv("WEB_ADDR", ":3000"),
			APIBaseURL:    strings.TrimRight(getEnv("API_BASE_URL", "http://127.0.0.1:8000"), "/"),
			APITimeout:    getEnvDuration("API_TIMEOUT", 10*time.Second),
			CookieSecret:  []byte(getEnv("COOKIE_SECRET", devCookieSecret)),
			CookieSecure:  getEnvBool("COOKIE_SECURE", false),
			RedisAddr:     getEnv("REDIS_ADDR", ""),
			SubmissionTTL: getEnvDuration("SUBMISSION_TTL", 10*time.Minute),
		},
		API: API{
			Addr:        getEnv("API_ADDR", ":8000"),
			CORSOrigins: getEnvList("CORS_ORIGINS", []string{"http://localhost:3000", "http://127.0.0.1:3000"}),
		},
		Database: Database{
			Driver: strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			DSN:    getEnv("DB_DSN", "./ecommerce.db"),
		},
		Storage: Storage{
			Driver:         strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
			LocalDir:       getEnv("LOCAL_UPLOAD_DIR", "./storage/uploads"),
			LocalURLPrefix: getEnv("LOCAL_UPLOAD_URL_PREFIX", "/uploads"),
			S3Region:       getEnv("S3_REGION", ""),
			S3Bucket:       getEnv("S3_BUCKET", ""),
			S3Prefix:       getEnv("S3_PREFIX", "uploads"),
			S3PublicBase:   getEnv("S3_PUBLIC_BASE_URL", ""),
		},
		LogLevel:        getEnvLevel("LOG_LEVEL", slog.LevelInfo),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// UsesDevSecret reports whether the cookie secret was left at its default.
func (c Config) UsesDevSecret() bool {
	return string(c.Web.CookieSecret) == devCookieSecret
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		slog.Warn("invalid duration in env, using default", "key", key, "value", v, "default", def)
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		slog.Warn("invalid bool in env, using default", "key", key, "value", v, "default", def)
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func getEnvLevel(key string, def slog.Level) slog.Level {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(v)); err != nil {
		slog.Warn("invalid log level in env, using default", "key", key, "value", v)
		return def
	}
	return l
}
