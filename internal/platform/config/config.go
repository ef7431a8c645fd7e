package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/g2ix/basic-registration/internal/utils/optime"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported store drivers.
const (
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	StoreDriver   string
	DatabaseURL   string
	SQLitePath    string
	EnableDBCheck bool

	OperatingTimezone string
	OperatingLocation *time.Location

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	CORSAllowedOrigins  []string
	PublicRateLimit     string
	StatsStreamInterval time.Duration

	OTLPEndpoint    string
	ServiceName     string
	PosthogAPIKey   string
	PosthogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORE_DRIVER", StoreDriverSQLite)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("SQLITE_PATH", "registration.db")
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("OPERATING_TIMEZONE", "Asia/Manila")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "basic-registration")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("PUBLIC_RATE_LIMIT", "120-M")
	viper.SetDefault("STATS_STREAM_INTERVAL", "5s")
	viper.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	viper.SetDefault("OTEL_SERVICE_NAME", "registration-backend")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "")

	// Actual environment variables override .env values and defaults.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(viper.GetString("STORE_DRIVER")))
	switch cfg.StoreDriver {
	case StoreDriverSQLite, StoreDriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q, expected %s or %s", cfg.StoreDriver, StoreDriverSQLite, StoreDriverPostgres)
	}
	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.StoreDriver == StoreDriverPostgres && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("PGSQL_URL is required when STORE_DRIVER is %s", StoreDriverPostgres)
	}
	cfg.SQLitePath = viper.GetString("SQLITE_PATH")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.OperatingTimezone = viper.GetString("OPERATING_TIMEZONE")
	loc, err := optime.LoadLocation(cfg.OperatingTimezone)
	if err != nil {
		log.Printf("Warning: %v. Using %s.\n", err, loc)
	}
	cfg.OperatingLocation = loc

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	// Load JWT Expiry Duration (e.g., "60m", "12h")
	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	cfg.JWTExpiryDuration, err = time.ParseDuration(jwtExpiryStr)
	if err != nil || cfg.JWTExpiryDuration <= 0 {
		cfg.JWTExpiryDuration = 12 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, cfg.JWTExpiryDuration)
	}

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "basic-registration"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.PublicRateLimit = viper.GetString("PUBLIC_RATE_LIMIT")

	intervalStr := viper.GetString("STATS_STREAM_INTERVAL")
	cfg.StatsStreamInterval, err = time.ParseDuration(intervalStr)
	if err != nil || cfg.StatsStreamInterval <= 0 {
		cfg.StatsStreamInterval = 5 * time.Second
		log.Printf("Warning: Invalid value for STATS_STREAM_INTERVAL ('%s'). Defaulting to %s.\n", intervalStr, cfg.StatsStreamInterval)
	}

	cfg.OTLPEndpoint = viper.GetString("OTEL_EXPORTER_OTLP_ENDPOINT")
	cfg.ServiceName = viper.GetString("OTEL_SERVICE_NAME")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
