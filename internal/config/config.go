package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port                 string   `mapstructure:"PORT"`
	Env                  string   `mapstructure:"ENV"`
	DatabaseURL          string   `mapstructure:"DATABASE_URL"`
	DBMaxConns           int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns           int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins          []string `mapstructure:"CORS_ORIGINS"`
	JWTSecret            string   `mapstructure:"JWT_SECRET"`
	ClassifierURL        string   `mapstructure:"CLASSIFIER_URL"`
	ClassifierTimeoutMS  int      `mapstructure:"CLASSIFIER_TIMEOUT_MS"`
	BookingInitialStatus string   `mapstructure:"BOOKING_INITIAL_STATUS"`
	RateLimitRPS         float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst       int      `mapstructure:"RATE_LIMIT_BURST"`
	RequestTimeoutSec    int      `mapstructure:"REQUEST_TIMEOUT_SEC"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "5000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("CLASSIFIER_TIMEOUT_MS", 3000)
	v.SetDefault("BOOKING_INITIAL_STATUS", "BOOKED")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)
	v.SetDefault("REQUEST_TIMEOUT_SEC", 30)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("CLASSIFIER_URL")
	v.BindEnv("CLASSIFIER_TIMEOUT_MS")
	v.BindEnv("BOOKING_INITIAL_STATUS")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")
	v.BindEnv("REQUEST_TIMEOUT_SEC")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		log.Println("WARNING: DATABASE_URL is not set; starting without a database.")
		log.Println("WARNING: All store-backed endpoints will answer 503 until one is configured.")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// ClassifierTimeout returns the remote classifier call deadline.
func (c *Config) ClassifierTimeout() time.Duration {
	return time.Duration(c.ClassifierTimeoutMS) * time.Millisecond
}

// RequestTimeout returns the per-request handler deadline.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// Validate checks that the configuration is safe to run. Outside development
// a JWT secret must be configured so login tokens are not signed with an
// empty key, and the booking initial status must be one of the two statuses
// a freshly created appointment may carry.
func (c *Config) Validate() error {
	if !c.IsDev() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when ENV=%q", c.Env)
	}
	switch c.BookingInitialStatus {
	case "BOOKED", "CONFIRMED":
	default:
		return fmt.Errorf("BOOKING_INITIAL_STATUS must be \"BOOKED\" or \"CONFIRMED\", got %q", c.BookingInitialStatus)
	}
	if c.ClassifierTimeoutMS <= 0 {
		return fmt.Errorf("CLASSIFIER_TIMEOUT_MS must be positive, got %d", c.ClassifierTimeoutMS)
	}
	return nil
}
