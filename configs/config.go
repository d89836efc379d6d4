package configs

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	LogLevel  string
	JWTSecret string
	JWTTTL    time.Duration

	CORSOrigins []string

	DB     DBConfig
	Stripe StripeConfig
	Seed   SeedConfig
}

type DBConfig struct {
	Driver string // sqlite | postgres
	Source string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type StripeConfig struct {
	SecretKey      string
	PublishableKey string
	Currency       string
	ProductName    string
	SuccessURL     string
	CancelURL      string
}

// Enabled reports whether card checkout can be offered.
func (s StripeConfig) Enabled() bool {
	return s.SecretKey != "" && s.PublishableKey != ""
}

type SeedConfig struct {
	AdminUsername string
	AdminPassword string
	File          string
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	} else if err != nil {
		log.Println("no .env file, using process environment")
	}
	return FromEnv()
}

// FromEnv builds the config from environment variables only.
func FromEnv() (*Config, error) {
	var errs []error

	jwtTTL, err := durationEnv("JWT_TTL", 24*time.Hour)
	errs = append(errs, err)
	maxOpen, err := intEnv("DB_MAX_OPEN_CONNS", 25)
	errs = append(errs, err)
	maxIdle, err := intEnv("DB_MAX_IDLE_CONNS", 5)
	errs = append(errs, err)
	lifetime, err := durationEnv("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	errs = append(errs, err)
	idleTime, err := durationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Second)
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8000"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		JWTSecret:   getEnv("JWT_SECRET", "changeme"),
		JWTTTL:      jwtTTL,
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		DB: DBConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			Source:          getEnv("DB_SOURCE", "healthybites.db"),
			MaxOpenConns:    maxOpen,
			MaxIdleConns:    maxIdle,
			ConnMaxLifetime: lifetime,
			ConnMaxIdleTime: idleTime,
		},
		Stripe: StripeConfig{
			SecretKey:      os.Getenv("STRIPE_SECRET_KEY"),
			PublishableKey: os.Getenv("STRIPE_PUBLISHABLE_KEY"),
			Currency:       strings.ToLower(getEnv("STRIPE_CURRENCY", "usd")),
			ProductName:    getEnv("STRIPE_PRODUCT_NAME", "Healthy Bites Order"),
			SuccessURL:     getEnv("STRIPE_SUCCESS_URL", "http://localhost:3001/cart.html?paid=true&session_id={CHECKOUT_SESSION_ID}"),
			CancelURL:      getEnv("STRIPE_CANCEL_URL", "http://localhost:3001/cart.html?paid=false"),
		},
		Seed: SeedConfig{
			AdminUsername: os.Getenv("ADMIN_USERNAME"),
			AdminPassword: os.Getenv("ADMIN_PASSWORD"),
			File:          os.Getenv("SEED_FILE"),
		},
	}

	switch cfg.DB.Driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("DB_DRIVER: unsupported driver %q", cfg.DB.Driver)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
