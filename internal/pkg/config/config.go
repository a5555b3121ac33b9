package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, upstream credentials)
// - default: Values common across all environments (timeouts, staleness windows, standard settings)
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	Commerce  CommerceConfig
	RateLimit RateLimitConfig
	Checkout  CheckoutConfig
	LinkToken LinkTokenConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Tokyo"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Retry-After"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

// CommerceConfig configures the upstream storefront cart API and its circuit breaker.
type CommerceConfig struct {
	BaseURL         string        `envconfig:"COMMERCE_BASE_URL" required:"true"`
	AccessToken     string        `envconfig:"COMMERCE_ACCESS_TOKEN" required:"true"`
	RequestTimeout  time.Duration `envconfig:"COMMERCE_REQUEST_TIMEOUT" default:"10s"`
	BreakerCooldown time.Duration `envconfig:"COMMERCE_BREAKER_COOLDOWN" default:"30s"`
	BreakerFailures uint32        `envconfig:"COMMERCE_BREAKER_FAILURES" default:"5"`
}

type RateLimitConfig struct {
	RequestsPerMinute float64       `envconfig:"RATE_LIMIT_PER_MINUTE" default:"30"`
	Burst             int           `envconfig:"RATE_LIMIT_BURST" default:"10"`
	IdleEviction      time.Duration `envconfig:"RATE_LIMIT_IDLE_EVICTION" default:"10m"`
}

type CheckoutConfig struct {
	// A reservation stuck in creating longer than this is presumed abandoned.
	StaleLockWindow time.Duration `envconfig:"CHECKOUT_STALE_LOCK_WINDOW" default:"2m"`
}

type LinkTokenConfig struct {
	Secret   string        `envconfig:"LINK_TOKEN_SECRET" required:"true"`
	Duration time.Duration `envconfig:"LINK_TOKEN_DURATION" default:"720h"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "test",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
			TimeZone: "Asia/Tokyo",
		},
		Log: LogConfig{
			Level:          "debug",
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		Commerce: CommerceConfig{
			BaseURL:         "http://localhost:9890",
			AccessToken:     "test-storefront-token",
			RequestTimeout:  2 * time.Second,
			BreakerCooldown: 5 * time.Second,
			BreakerFailures: 3,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 600,
			Burst:             100,
			IdleEviction:      time.Minute,
		},
		Checkout: CheckoutConfig{
			StaleLockWindow: 2 * time.Minute,
		},
		LinkToken: LinkTokenConfig{
			Secret:   "test-link-token-secret",
			Duration: time.Hour,
		},
	}
}
