package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Notifiers.
const (
	NotifierSMTP = "smtp"
	NotifierLog  = "log"
)

type Config struct {
	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)

	Port                int           // HTTP server port (default: 5000)
	APIBasePath         string        // Prefix for account routes (default: /api)
	CORSAllowedOrigins  []string      // Comma separated browser origins (default: any)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	OTPRetention         time.Duration // How long expired codes are kept (default: 24h)
	OTPTTL               time.Duration // Code lifetime (default: 5m)
	OTPDigits            int           // Code length, 6 or 8 (default: 6)
	NotifyTimeout        time.Duration // Bound on each delivery (default: 10s)

	StoreDriver   string // sqlite, postgres or mongo (default: sqlite)
	DatabaseFile  string // SQLite database file (default: ./identity.db)
	DatabaseURL   string // Postgres connection string
	MongoURI      string // Mongo connection string (default: mongodb://localhost:27017)
	MongoDatabase string // Mongo database (default: local_service_platform)
	PepperFile    string // File holding the password pepper (default: ./pepper)

	Notifier     string // smtp or log (default: smtp in prod, log otherwise)
	SMTPHost     string // (default: smtp.gmail.com)
	SMTPPort     int    // (default: 587)
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string // (default: SMTPUsername)
}

// LoadConfig reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment variables
// win over it.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", slog.Any("error", err))
	}

	env := getEnvOrDefault("ENV", "dev")
	defaultNotifier := NotifierLog
	if env == "prod" {
		defaultNotifier = NotifierSMTP
	}

	cfg := Config{
		Env:       env,
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),

		Port:                getEnvIntOrDefault("PORT", 5000),
		APIBasePath:         getEnvOrDefault("API_BASE_PATH", "/api"),
		CORSAllowedOrigins:  getEnvListOrDefault("CORS_ALLOWED_ORIGINS", nil),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		OTPRetention:         getEnvDurationOrDefault("OTP_RETENTION", 24*time.Hour),
		OTPTTL:               getEnvDurationOrDefault("OTP_TTL", 5*time.Minute),
		OTPDigits:            getEnvIntOrDefault("OTP_DIGITS", 6),
		NotifyTimeout:        getEnvDurationOrDefault("NOTIFY_TIMEOUT", 10*time.Second),

		StoreDriver:   strings.ToLower(getEnvOrDefault("STORE_DRIVER", DriverSQLite)),
		DatabaseFile:  getEnvOrDefault("DATABASE_FILE", "identity.db"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		MongoURI:      getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGO_DATABASE", "local_service_platform"),
		PepperFile:    getEnvOrDefault("PEPPER_FILE", "pepper"),

		Notifier:     strings.ToLower(getEnvOrDefault("NOTIFIER", defaultNotifier)),
		SMTPHost:     getEnvOrDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),
	}

	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = cfg.SMTPUsername
	}

	return cfg
}

// Validate reports settings that would make the service start in a broken state.
func (c Config) Validate() error {
	var errs []error

	switch c.StoreDriver {
	case DriverSQLite:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	case DriverMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGO_URI is required for the mongo driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}

	switch c.Notifier {
	case NotifierLog:
		if c.Env == "prod" {
			errs = append(errs, errors.New("the log notifier prints codes and cannot be used in prod"))
		}
	case NotifierSMTP:
		if c.SMTPFrom == "" {
			errs = append(errs, errors.New("SMTP_FROM or SMTP_USERNAME is required for the smtp notifier"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown NOTIFIER %q", c.Notifier))
	}

	if c.OTPDigits != 6 && c.OTPDigits != 8 {
		errs = append(errs, fmt.Errorf("OTP_DIGITS must be 6 or 8, got %d", c.OTPDigits))
	}
	if c.OTPTTL <= 0 {
		errs = append(errs, errors.New("OTP_TTL must be positive"))
	}

	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
