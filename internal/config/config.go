package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/davicafu/sharedkernel/shared/presentation"
)

// Almacenes de partners soportados.
const (
	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"
	DBDriverMongo    = "mongo"
)

// Buses de eventos soportados.
const (
	EventBusMemory = "memory"
	EventBusKafka  = "kafka"
	EventBusRedis  = "redis"
)

type Config struct {
	HTTPPort     string        `env:"HTTP_PORT" envDefault:"8080"`
	DBDriver     string        `env:"DB_DRIVER" envDefault:"sqlite"`
	SQLitePath   string        `env:"SQLITE_PATH" envDefault:"./sharedkernel_partners.db"`
	PostgresDSN  string        `env:"DATABASE_URL"`
	MongoURI     string        `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB      string        `env:"MONGO_DB" envDefault:"sharedkernel"`
	RedisAddr    string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisStream  string        `env:"REDIS_STREAM" envDefault:"partner-events"`
	KafkaBrokers []string      `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	KafkaTopic   string        `env:"KAFKA_TOPIC" envDefault:"partner-events"`
	EventBus     string        `env:"EVENT_BUS" envDefault:"memory"`
	LogMode      string        `env:"LOG_MODE" envDefault:"prod"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	Presentation presentation.Config
}

// LoadConfig lee la configuración del entorno y valida los valores enumerados.
func LoadConfig() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	switch cfg.DBDriver {
	case DBDriverSQLite, DBDriverMongo:
	case DBDriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("config: DB_DRIVER=postgres requires DATABASE_URL")
		}
	default:
		return nil, fmt.Errorf("config: unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	switch cfg.EventBus {
	case EventBusMemory, EventBusKafka, EventBusRedis:
	default:
		return nil, fmt.Errorf("config: unsupported EVENT_BUS %q", cfg.EventBus)
	}
	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("config: CACHE_TTL must be positive, got %s", cfg.CacheTTL)
	}
	return &cfg, nil
}
