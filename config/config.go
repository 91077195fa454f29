package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string   `envconfig:"PORT" default:"3000"`
	Env         string   `envconfig:"APP_ENV" default:"development"`
	LogLevel    string   `envconfig:"LOG_LEVEL" default:"info"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`

	Database Database `ignored:"true"`
	Auth     Auth     `ignored:"true"`
	Payment  Payment  `ignored:"true"`

	// StrictPricing makes order intake recompute subtotal and total from the
	// submitted line items and reject submissions that disagree.
	StrictPricing bool `envconfig:"STRICT_PRICING" default:"false"`
}

type Database struct {
	Dialect         string        `envconfig:"DB_DIALECT" default:"sqlite"`
	URI             string        `envconfig:"DATABASE_URI" default:"coffeeapp.db"`
	Host            string        `envconfig:"DB_HOST" default:"127.0.0.1"`
	Port            int           `envconfig:"DB_PORT" default:"0"`
	User            string        `envconfig:"DB_USER" default:"root"`
	Password        string        `envconfig:"DB_PASSWORD"`
	Name            string        `envconfig:"DB_NAME" default:"coffeeapp_development"`
	SSLMode         string        `envconfig:"DB_SSL_MODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
}

type Auth struct {
	JWTSecret     string        `envconfig:"JWT_SECRET"`
	TokenTTL      time.Duration `envconfig:"JWT_TTL" default:"1h"`
	AdminUsername string        `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminPassword string        `envconfig:"ADMIN_PASSWORD" default:"password"`
}

type Payment struct {
	StripeSecretKey string `envconfig:"STRIPE_SECRET_KEY"`
	Currency        string `envconfig:"PAYMENT_CURRENCY" default:"usd"`
}

// Load reads an optional .env file and then the process environment.
// A missing .env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var cfg Config
	for _, target := range []interface{}{&cfg, &cfg.Database, &cfg.Auth, &cfg.Payment} {
		if err := envconfig.Process("", target); err != nil {
			return nil, fmt.Errorf("failed to process env: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Dialect {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DIALECT %q", c.Database.Dialect)
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("JWT_SECRET environment variable not set")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.Auth.AdminUsername == "" || c.Auth.AdminPassword == "" {
		return errors.New("admin credentials must not be empty")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "debug"
}
