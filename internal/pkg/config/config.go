package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverFile  = "file"
	DriverMongo = "mongo"
)

// Session backends accepted in LUMA_SESSION_BACKEND.
const (
	SessionFile  = "file"
	SessionRedis = "redis"
)

// Config is the gateway server configuration.
type Config struct {
	Port      string `env:"PORT,         default=5000"`
	Env       string `env:"ENV,          default=development"`
	LogLevel  string `env:"LOG_LEVEL,    default=info"`
	DataDir   string `env:"DATA_DIR,     default=data"`
	Driver    string `env:"STORE_DRIVER, default=file"`
	BodyLimit string `env:"BODY_LIMIT,   default=50M"`

	Mongo MongoConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=luma"`
}

// ClientConfig configures the terminal client.
type ClientConfig struct {
	APIBase        string        `env:"LUMA_API_BASE,        default=http://localhost:5000/api"`
	RequestTimeout time.Duration `env:"LUMA_REQUEST_TIMEOUT, default=10s"`
	SessionBackend string        `env:"LUMA_SESSION_BACKEND, default=file"`
	SessionFile    string        `env:"LUMA_SESSION_FILE,    default=.luma_session.json"`
	LogLevel       string        `env:"LOG_LEVEL,            default=warn"`

	Redis RedisConfig
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads the server configuration from l and validates the driver.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	switch cfg.Driver {
	case DriverFile, DriverMongo:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Driver)
	}
	return &cfg, nil
}

// LoadClient reads the client configuration from environment variables.
func LoadClient() *ClientConfig {
	cfg, err := LoadClientWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load client configuration: %v", err))
	}
	return cfg
}

func LoadClientWith(ctx context.Context, l envconfig.Lookuper) (*ClientConfig, error) {
	var cfg ClientConfig
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	switch cfg.SessionBackend {
	case SessionFile, SessionRedis:
	default:
		return nil, fmt.Errorf("unknown LUMA_SESSION_BACKEND %q", cfg.SessionBackend)
	}
	return &cfg, nil
}
