package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/ordergen/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/ordergen/internal/service/ordergen"
)

// EnvPrefix: префикс переменных окружения генератора.
const EnvPrefix = "ORDERGEN"

const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// Config описывает настройки запуска генератора.
type Config struct {
	StorageDriver       string `envconfig:"STORAGE_DRIVER" default:"memory"`
	PostgresDSN         string `envconfig:"POSTGRES_DSN"`
	PostgresAutoMigrate bool   `envconfig:"POSTGRES_AUTO_MIGRATE" default:"true"`
	// PostgresConnectAttempts: число попыток подключения с экспоненциальной задержкой.
	PostgresConnectAttempts int `envconfig:"POSTGRES_CONNECT_ATTEMPTS" default:"3"`
	// PostgresSeed загружает фикстуру (или демо-каталог) в базу перед запуском.
	PostgresSeed bool `envconfig:"POSTGRES_SEED" default:"false"`

	// FixturePath: JSON-каталог; пусто означает встроенный демо-каталог.
	FixturePath string `envconfig:"FIXTURE_PATH"`

	KafkaBrokers string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string `envconfig:"KAFKA_TOPIC" default:"ordergen.order.events"`

	// MetricsAddr: адрес /metrics и /healthz; пусто отключает HTTP.
	MetricsAddr string `envconfig:"METRICS_ADDR"`
	// MetricsLinger: сколько держать HTTP-листенер после партии, чтобы Prometheus успел собрать метрики.
	MetricsLinger time.Duration `envconfig:"METRICS_LINGER" default:"0s"`

	LogLevel   string          `envconfig:"LOG_LEVEL" default:"info"`
	MaxDaysAgo int             `envconfig:"MAX_DAYS_AGO" default:"730"`
	TaxRate    decimal.Decimal `envconfig:"TAX_RATE" default:"0"`
	// Seed фиксирует генератор случайных чисел; 0: недетерминированный выбор.
	Seed uint64 `envconfig:"SEED" default:"0"`
}

// DefaultConfig возвращает настройки для in-memory запуска на демо-каталоге.
func DefaultConfig() Config {
	return Config{
		StorageDriver:           StorageDriverMemory,
		PostgresAutoMigrate:     true,
		PostgresConnectAttempts: 3,
		KafkaTopic:              kafka.TopicOrderEvents,
		LogLevel:                "info",
		MaxDaysAgo:              ordergen.DefaultMaxDaysAgo,
		TaxRate:                 decimal.Zero,
	}
}

// LoadConfig читает ORDERGEN_* переменные окружения и проверяет их.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек.
func (c Config) Validate() error {
	var errs []error
	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if c.PostgresDSN == "" {
			errs = append(errs, errors.New("ORDERGEN_POSTGRES_DSN is required for the postgres storage driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported storage driver %q", c.StorageDriver))
	}
	if c.PostgresConnectAttempts < 1 {
		errs = append(errs, fmt.Errorf("postgres connect attempts must be at least 1, got %d", c.PostgresConnectAttempts))
	}
	if c.MaxDaysAgo < 1 {
		errs = append(errs, fmt.Errorf("max days ago must be at least 1, got %d", c.MaxDaysAgo))
	}
	if c.TaxRate.IsNegative() {
		errs = append(errs, fmt.Errorf("tax rate must not be negative, got %s", c.TaxRate))
	}
	if c.MetricsLinger < 0 {
		errs = append(errs, errors.New("metrics linger must not be negative"))
	}
	return errors.Join(errs...)
}
