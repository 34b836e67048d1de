package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/hackforge/hackathon-service/internal/domain"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Storage      StorageConfig
	Notification NotificationConfig
	RateLimit    RateLimitConfig
	Tracing      TracingConfig
	Hacker       HackerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	BodyLimitBytes        int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32

	// ApplicationName is reported to Postgres as application_name.
	ApplicationName string
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level       string
	Service     string
	Development bool
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
	PasswordMinLength     int
}

// StorageConfig selects and configures the resume artifact store.
type StorageConfig struct {
	Driver    string
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// NotificationConfig configures status-change email delivery.
type NotificationConfig struct {
	Driver        string
	EmailFrom     string
	AWSRegion     string
	TemplatesFile string
}

// RateLimitConfig bounds abusive callers on expensive routes.
type RateLimitConfig struct {
	ResumeUploadLimit int
	LoginLimit        int
	WindowSeconds     int
}

// TracingConfig toggles span export.
type TracingConfig struct {
	Enabled bool
}

// HackerConfig holds the deployment's review workflow.
type HackerConfig struct {
	Statuses []domain.HackerStatus
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "hackathon-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			BodyLimitBytes:        getEnvAsInt("HTTP_BODY_LIMIT_BYTES", 8*1024*1024),
		},
		Postgres: PostgresConfig{
			DSN:             os.Getenv("POSTGRES_DSN"),
			MaxConns:        maxConns,
			MinConns:        minConns,
			RunMigrations:   runMigrations,
			MigrationsDir:   getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec:  connMaxIdle,
			ConnMaxLifeSec:  connMaxLife,
			ApplicationName: getEnv("APP_NAME", "hackathon-service"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Service:     getEnv("APP_NAME", "hackathon-service"),
			Development: getEnv("APP_ENV", "development") == "development",
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
			PasswordMinLength:     getEnvAsInt("AUTH_PASSWORD_MIN_LENGTH", 8),
		},
		Storage: StorageConfig{
			Driver:    getEnv("STORAGE_DRIVER", "s3"),
			Bucket:    getEnv("STORAGE_BUCKET", "hackathon-resumes"),
			Region:    getEnv("STORAGE_REGION", "us-east-1"),
			Endpoint:  os.Getenv("STORAGE_ENDPOINT"),
			AccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
			SecretKey: os.Getenv("STORAGE_SECRET_KEY"),
		},
		Notification: NotificationConfig{
			Driver:        getEnv("NOTIFY_DRIVER", "ses"),
			EmailFrom:     getEnv("NO_REPLY_EMAIL", "noreply@example.com"),
			AWSRegion:     getEnv("NOTIFY_AWS_REGION", "us-east-1"),
			TemplatesFile: getEnv("NOTIFY_TEMPLATES_FILE", "config/status_templates.yaml"),
		},
		RateLimit: RateLimitConfig{
			ResumeUploadLimit: getEnvAsInt("RATE_LIMIT_RESUME_UPLOADS", 10),
			LoginLimit:        getEnvAsInt("RATE_LIMIT_LOGINS", 20),
			WindowSeconds:     getEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		},
		Tracing: TracingConfig{
			Enabled: getEnvAsBool("TRACING_ENABLED", false),
		},
		Hacker: HackerConfig{
			Statuses: parseStatuses(os.Getenv("HACKER_STATUSES")),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Window returns the rate limit window duration.
func (r RateLimitConfig) Window() time.Duration {
	if r.WindowSeconds <= 0 {
		return 0
	}
	return time.Duration(r.WindowSeconds) * time.Second
}

// IsValidStatus reports whether status belongs to the configured workflow.
func (h HackerConfig) IsValidStatus(status domain.HackerStatus) bool {
	for _, s := range h.Statuses {
		if s == status {
			return true
		}
	}
	return false
}

func parseStatuses(raw string) []domain.HackerStatus {
	if strings.TrimSpace(raw) == "" {
		return append([]domain.HackerStatus(nil), domain.DefaultHackerStatuses...)
	}
	var statuses []domain.HackerStatus
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			statuses = append(statuses, domain.HackerStatus(part))
		}
	}
	return statuses
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
