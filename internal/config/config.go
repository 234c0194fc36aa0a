package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the API.
type Config struct {
	Env      string `env:"ENV" envDefault:"development"`
	Port     string `env:"PORT" envDefault:"3000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	External ExternalConfig

	CORSOrigins    string        `env:"CORS_ORIGINS" envDefault:"*"`
	CacheTTL       time.Duration `env:"CACHE_TTL" envDefault:"10m"`
	LoginRateLimit int           `env:"LOGIN_RATE_LIMIT" envDefault:"5"`
}

// DBConfig holds database connection and pool configuration.
type DBConfig struct {
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            int           `env:"DB_PORT" envDefault:"5432"`
	User            string        `env:"DB_USER" envDefault:"postgres"`
	Password        string        `env:"DB_PASSWORD" envDefault:"postgres"`
	Name            string        `env:"DB_NAME" envDefault:"simplepay"`
	SSLMode         string        `env:"DB_SSLMODE" envDefault:"disable"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"100"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"1h"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"30m"`
}

// DSN builds the postgres connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     string `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	Enabled  bool   `env:"REDIS_ENABLED" envDefault:"true"`
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET" envDefault:"simplepay"`
	TTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`
	Issuer string        `env:"JWT_ISSUER" envDefault:"simplepay-api"`
}

// ExternalConfig points at the authorizer and notifier services. By default
// both resolve to the mock endpoints served by this API.
type ExternalConfig struct {
	AuthorizerURL      string        `env:"AUTHORIZER_URL" envDefault:"http://localhost:3000/api/mock/authorize"`
	AuthorizerTimeout  time.Duration `env:"AUTHORIZER_TIMEOUT" envDefault:"5s"`
	NotifierURL        string        `env:"NOTIFIER_URL" envDefault:"http://localhost:3000/api/mock/notify"`
	NotifierTimeout    time.Duration `env:"NOTIFIER_TIMEOUT" envDefault:"5s"`
	MockAuthorizerMode string        `env:"MOCK_AUTHORIZER_MODE" envDefault:"approve"`
	AMQPURL            string        `env:"AMQP_URL"`
	AMQPExchange       string        `env:"AMQP_EXCHANGE" envDefault:"simplepay.transfers"`
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load reads the .env file (if any) and parses the environment into a Config.
func Load() (*Config, error) {
	LoadEnv()
	return Parse()
}

// Parse builds a Config from the current process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// IsProduction checks if the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
