package config

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store drivers selectable with STORE_DRIVER
const (
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
	StoreDriverMemory   = "memory"
)

// Config holds the application configuration
type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
	LogDir      string `env:"LOG_DIR" envDefault:"logs"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	Version     string `env:"VERSION" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"guildpoints"`
	APIKey      string `env:"API_KEY"` // API key for authentication

	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`

	// Database
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBName     string `env:"DB_NAME" envDefault:"guildpoints"`
	DBMaxConns int32  `env:"DB_MAX_CONNS" envDefault:"20"`

	// Redis
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Economy
	EconomyConfigPath string        `env:"ECONOMY_CONFIG" envDefault:"configs/economy.yaml"`
	EconomySchemaPath string        `env:"ECONOMY_SCHEMA" envDefault:"configs/schemas/economy.schema.json"`
	CacheSize         int           `env:"ACCOUNT_CACHE_SIZE" envDefault:"1024"`
	CacheTTL          time.Duration `env:"ACCOUNT_CACHE_TTL" envDefault:"5m"`
	SingleReplica     bool          `env:"SINGLE_REPLICA" envDefault:"false"`
	DailyResetEnabled bool          `env:"DAILY_RESET_ENABLED" envDefault:"true"`
	ResetWorkers      int           `env:"RESET_WORKERS" envDefault:"4"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values env tags cannot express
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY environment variable must be set for security")
	}

	switch c.StoreDriver {
	case StoreDriverPostgres, StoreDriverRedis, StoreDriverMemory:
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q: expected one of %s, %s, %s",
			c.StoreDriver, StoreDriverPostgres, StoreDriverRedis, StoreDriverMemory)
	}

	if c.CacheSize < 0 {
		return fmt.Errorf("ACCOUNT_CACHE_SIZE must not be negative")
	}
	if c.ResetWorkers < 1 {
		return fmt.Errorf("RESET_WORKERS must be at least 1")
	}

	return nil
}

// AccountCacheSize returns the account read cache size to use. Other replicas'
// writes never reach this process's cache, so postgres and redis run uncached
// unless SINGLE_REPLICA promises there are none.
func (c *Config) AccountCacheSize() int {
	switch c.StoreDriver {
	case StoreDriverPostgres, StoreDriverRedis:
		if !c.SingleReplica {
			return 0
		}
	}
	return c.CacheSize
}

// GetDBConnString returns the PostgreSQL connection URL with credentials escaped
func (c *Config) GetDBConnString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
