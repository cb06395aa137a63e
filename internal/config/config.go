package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const defaultJWTSecret = "change-me-jwt-secret"

type Config struct {
	AppEnv      string        `envconfig:"APP_ENV" default:"dev"`
	HTTPAddr    string        `envconfig:"HTTP_ADDR" default:":8080"`
	DatabaseURL string        `envconfig:"DATABASE_URL" default:"fitzone.db"`
	JWTSecret   string        `envconfig:"JWT_SECRET" default:"change-me-jwt-secret"`
	JWTTTL      time.Duration `envconfig:"JWT_TTL" default:"24h"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`
	// Proxies whose X-Forwarded-For is believed. Empty: the peer address is the client.
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	RedisURL     string        `envconfig:"REDIS_URL"`
	CacheTTL     time.Duration `envconfig:"CACHE_TTL" default:"5m"`
	AMQPURL      string        `envconfig:"AMQP_URL"`
	AMQPExchange string        `envconfig:"AMQP_EXCHANGE" default:"fitzone.events"`
	// in-process cache bound, used without REDIS_URL
	CacheMaxEntries int `envconfig:"CACHE_MAX_ENTRIES" default:"10000"`

	RazorpayKeyID         string `envconfig:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret     string `envconfig:"RAZORPAY_KEY_SECRET"`
	RazorpayWebhookSecret string `envconfig:"RAZORPAY_WEBHOOK_SECRET"`

	GeminiAPIKey  string        `envconfig:"GEMINI_API_KEY"`
	GeminiModel   string        `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`
	GeminiBaseURL string        `envconfig:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta"`
	AIChatTimeout time.Duration `envconfig:"AI_CHAT_TIMEOUT" default:"15s"`

	CloudinaryCloudName string `envconfig:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `envconfig:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `envconfig:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `envconfig:"CLOUDINARY_FOLDER" default:"fitzone"`
	UploadsDir          string `envconfig:"UPLOADS_DIR" default:"./uploads"`
	UploadsURLBase      string `envconfig:"UPLOADS_URL_BASE" default:"/static/uploads"`

	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"2"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"10"`

	RecurringHorizonDays int           `envconfig:"RECURRING_HORIZON_DAYS" default:"14"`
	RecurringCron        string        `envconfig:"RECURRING_CRON" default:"@every 1h"`
	StaleOrderCron       string        `envconfig:"STALE_ORDER_CRON" default:"@every 30m"`
	StaleOrderTTL        time.Duration `envconfig:"STALE_ORDER_TTL" default:"48h"`

	NotificationRetention   time.Duration `envconfig:"NOTIFICATION_RETENTION" default:"720h"`
	NotificationCleanupCron string        `envconfig:"NOTIFICATION_CLEANUP_CRON" default:"@daily"`
}

// Load reads an optional .env file and decodes the environment into Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) PaymentsEnabled() bool {
	return c.RazorpayKeyID != "" && c.RazorpayKeySecret != ""
}

func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func (c *Config) IsProdLike() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be > 0")
	}
	if cfg.CacheMaxEntries <= 0 {
		return fmt.Errorf("CACHE_MAX_ENTRIES must be > 0")
	}
	if cfg.StaleOrderTTL <= 0 {
		return fmt.Errorf("STALE_ORDER_TTL must be > 0")
	}
	if cfg.NotificationRetention <= 0 {
		return fmt.Errorf("NOTIFICATION_RETENTION must be > 0")
	}
	if cfg.RecurringHorizonDays <= 0 || cfg.RecurringHorizonDays > 90 {
		return fmt.Errorf("RECURRING_HORIZON_DAYS must be between 1 and 90")
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be > 0")
	}
	format := strings.ToLower(cfg.LogFormat)
	if format != "text" && format != "json" {
		return fmt.Errorf("LOG_FORMAT must be one of: text, json")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.RazorpayKeyID != "" && cfg.RazorpayWebhookSecret == "" {
			return fmt.Errorf("in prod/release RAZORPAY_WEBHOOK_SECRET must be set when payments are enabled")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}
