package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction bool
	ProdOrigins  []string
	HTTPAddr     string
	LogLevel     slog.Level

	DBDSN            string
	DBConnectTimeout time.Duration
	DBIdleTimeout    time.Duration
	DBMaxConns       int
	AutoMigrate      bool

	JWTSecret            string
	JWTAccessTokenTTL    time.Duration
	BcryptCost           int
	TrustIdentityHeaders bool
	AuthRatePerMinute    int

	UploadDir      string
	UploadMaxBytes int64

	KafkaBrokers          []string
	KafkaReservationTopic string
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", slog.Any("error", err))
	}

	cfg := &Config{}
	var err error

	cfg.ProdOrigins = splitList(getEnv("PROD_ORIGINS", ""))
	cfg.IsProduction = getEnv("APP_ENV", "dev") == PROD_STRING
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":5000")

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	// Database DSN is required
	cfg.DBDSN = getEnv("DB_DSN", os.Getenv("DATABASE_URL"))
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}
	if cfg.DBConnectTimeout, err = getEnvAsDuration("DB_CONNECT_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.DBIdleTimeout, err = getEnvAsDuration("DB_IDLE_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.DBMaxConns, err = getEnvAsInt("DB_MAX_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.AutoMigrate, err = getEnvAsBool("AUTO_MIGRATE", true); err != nil {
		return nil, err
	}

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.JWTAccessTokenTTL, err = getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12); err != nil {
		return nil, err
	}
	if cfg.TrustIdentityHeaders, err = getEnvAsBool("TRUST_IDENTITY_HEADERS", true); err != nil {
		return nil, err
	}
	if cfg.AuthRatePerMinute, err = getEnvAsInt("AUTH_RATE_PER_MINUTE", 30); err != nil {
		return nil, err
	}

	cfg.UploadDir = getEnv("UPLOAD_DIR", "uploads")
	maxBytes, err := getEnvAsInt("UPLOAD_MAX_BYTES", 5*1024*1024)
	if err != nil {
		return nil, err
	}
	cfg.UploadMaxBytes = int64(maxBytes)

	cfg.KafkaBrokers = splitList(getEnv("KAFKA_BROKERS", ""))
	cfg.KafkaReservationTopic = getEnv("KAFKA_RESERVATION_TOPIC", "reservations")

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return false, fmt.Errorf("env %s value %q is not a valid boolean: %w", key, valStr, err)
	}
	return val, nil
}

// getEnvAsDuration parses values such as "5s" or "15m".
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}
	return val, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
