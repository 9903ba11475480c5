package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Session SessionConfig
	HTTP    HTTPConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Storage StorageConfig
	Admin   AdminConfig

	ImageCleanupWorkers int `env:"IMAGE_CLEANUP_WORKERS, default=4"`
}

type SessionConfig struct {
	Secret       string        `env:"SESSION_SECRET, required"`
	TTL          time.Duration `env:"SESSION_TTL,    default=12h"`
	CookieSecure bool          `env:"COOKIE_SECURE,  default=false"`
	BcryptCost   int           `env:"BCRYPT_COST,    default=10"`
}

type HTTPConfig struct {
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=storefront"`
}

// RedisConfig selects the revocation store. An empty Addr keeps revocations
// in process memory, pruned on PruneSchedule.
type RedisConfig struct {
	Addr          string `env:"REDIS_ADDR"`
	Password      string `env:"REDIS_PASSWORD"`
	DB            int    `env:"REDIS_DB,                  default=0"`
	PruneSchedule string `env:"REVOCATION_PRUNE_SCHEDULE, default=@every 10m"`
}

type StorageConfig struct {
	URL        string        `env:"STORAGE_URL"`
	ServiceKey string        `env:"STORAGE_SERVICE_KEY"`
	Bucket     string        `env:"STORAGE_BUCKET, default=product-images"`
	Timeout    time.Duration `env:"STORAGE_TIMEOUT, default=30s"`
}

// AdminConfig bootstraps an admin account at startup when both are set.
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME"`
	Password string `env:"ADMIN_PASSWORD"`
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Session.TTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.ImageCleanupWorkers <= 0 {
		return errors.New("IMAGE_CLEANUP_WORKERS must be positive")
	}
	return nil
}
