package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	// Server
	HTTPAddr  string
	Env       string
	ClientURL string

	// Stores
	MongoURI  string
	MongoDB   string
	RedisAddr string
	RedisPass string

	// Sessions
	SessionSecret string
	SessionTTL    time.Duration

	// Google OAuth
	Google GoogleConfig

	// Media
	Media MediaConfig

	// Rate limiting
	RateLimitMax    int
	RateLimitWindow time.Duration
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type MediaConfig struct {
	// Driver selects the blob backend: "s3" or "filesystem".
	Driver        string
	MaxFileSize   int64
	S3Endpoint    string
	S3Region      string
	S3Bucket      string
	S3AccessKey   string
	S3SecretKey   string
	PublicBaseURL string
	LocalDir      string
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr:  getEnv("HTTP_ADDR", ":5000"),
		Env:       getEnv("APP_ENV", "development"),
		ClientURL: getEnv("CLIENT_URL", "http://localhost:3000"),

		MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnv("MONGO_DB", "media-upload-app"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass: getEnv("REDIS_PASS", ""),

		SessionSecret: getEnv("SESSION_SECRET", "dev-session-secret"),
		SessionTTL:    24 * time.Hour,

		Google: GoogleConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:5000/api/auth/google/callback"),
		},

		Media: MediaConfig{
			Driver:        getEnv("MEDIA_STORAGE_DRIVER", "filesystem"),
			MaxFileSize:   10 << 20, // 10 MiB
			S3Endpoint:    getEnv("S3_ENDPOINT", ""),
			S3Region:      getEnv("S3_REGION", ""),
			S3Bucket:      getEnv("S3_BUCKET", ""),
			S3AccessKey:   getEnv("S3_ACCESS_KEY", ""),
			S3SecretKey:   getEnv("S3_SECRET_KEY", ""),
			PublicBaseURL: getEnv("MEDIA_PUBLIC_BASE_URL", "http://localhost:5000/media/"),
			LocalDir:      getEnv("MEDIA_DIR", "./uploads"),
		},

		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow: time.Duration(getEnvInt("RATE_LIMIT_WINDOW_MINUTES", 15)) * time.Minute,
	}
}

// IsProduction reports whether the service runs with production hardening
// (secure cookies, no stack traces in responses).
func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
