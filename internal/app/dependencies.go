package app

import (
	"context"
	"fmt"
	"math/rand/v2"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
	"github.com/vladislavdragonenkov/ordergen/internal/fixture"
	"github.com/vladislavdragonenkov/ordergen/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/ordergen/internal/storage/memory"
	"github.com/vladislavdragonenkov/ordergen/internal/storage/postgres"
)

// Dependencies содержит хранилища и внешние клиенты генератора.
type Dependencies struct {
	Customers     domain.CustomerRepository
	Products      domain.ProductRepository
	Configurables domain.ConfigurableRepository
	Stores        domain.StoreRepository
	Carts         domain.CartRepository
	Orders        domain.OrderRepository

	// Store != nil только для postgres.
	Store *postgres.Store
	// Producer != nil только если настроена Kafka.
	Producer *kafka.Producer

	Logger *log.Entry
}

// NewDependencies создаёт in-memory зависимости поверх фикстуры.
func NewDependencies(f fixture.Fixture, rnd *rand.Rand, logger *log.Entry) *Dependencies {
	if logger == nil {
		logger = log.WithField("component", "app")
	}
	catalog := memory.NewCatalog(f, rnd)
	return &Dependencies{
		Customers:     catalog.Customers,
		Products:      catalog.Products,
		Configurables: catalog.Configurables,
		Stores:        catalog.Stores,
		Carts:         catalog.Carts,
		Orders:        catalog.Orders,
		Logger:        logger,
	}
}

// initRuntimeDependencies выбирает хранилище по cfg.StorageDriver и подключает Kafka.
func initRuntimeDependencies(ctx context.Context, cfg Config, rnd *rand.Rand, logger *log.Entry) (*Dependencies, error) {
	var deps *Dependencies

	switch cfg.StorageDriver {
	case "", StorageDriverMemory:
		f, err := loadFixture(cfg.FixturePath)
		if err != nil {
			return nil, err
		}
		deps = NewDependencies(f, rnd, logger)
		logger.WithFields(log.Fields{
			"customers": len(f.Customers),
			"products":  len(f.Products),
		}).Info("memory catalog loaded")

	case StorageDriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres storage driver requires ORDERGEN_POSTGRES_DSN")
		}
		store, err := postgres.OpenWithRetry(ctx, cfg.PostgresDSN, postgres.RetryConfig{MaxAttempts: cfg.PostgresConnectAttempts}, logger)
		if err != nil {
			return nil, err
		}
		if err := preparePostgres(ctx, store, cfg, logger); err != nil {
			return nil, multierr.Append(err, store.Close())
		}
		deps = &Dependencies{
			Customers:     postgres.NewCustomerRepository(store),
			Products:      postgres.NewProductRepository(store),
			Configurables: postgres.NewConfigurableRepository(store),
			Stores:        postgres.NewStoreRepository(store),
			Carts:         postgres.NewCartRepository(store),
			Orders:        postgres.NewOrderRepository(store),
			Store:         store,
			Logger:        logger,
		}

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	// Kafka необязательна: ошибка подключения только логируется.
	producer, err := initKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	if err == nil {
		deps.Producer = producer
	}
	return deps, nil
}

func preparePostgres(ctx context.Context, store *postgres.Store, cfg Config, logger *log.Entry) error {
	if cfg.PostgresAutoMigrate {
		if err := store.MigrateUp(ctx, 0); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("postgres migrations applied")
	}
	if cfg.PostgresSeed {
		f, err := loadFixture(cfg.FixturePath)
		if err != nil {
			return err
		}
		if err := store.Seed(ctx, f); err != nil {
			return err
		}
		logger.WithField("products", len(f.Products)).Info("postgres catalog seeded")
	}
	return nil
}

func loadFixture(path string) (fixture.Fixture, error) {
	if path == "" {
		return fixture.Demo(), nil
	}
	f, err := fixture.Load(path)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("load fixture %s: %w", path, err)
	}
	return f, nil
}

// Publisher возвращает издателя событий или nil, если Kafka не настроена.
func (d *Dependencies) Publisher() domain.OrderEventPublisher {
	if d.Producer == nil {
		return nil
	}
	return d.Producer
}

// Close освобождает соединения; ошибки объединяются.
func (d *Dependencies) Close() error {
	if d == nil {
		return nil
	}
	var err error
	if d.Producer != nil {
		err = multierr.Append(err, d.Producer.Close())
	}
	if d.Store != nil {
		err = multierr.Append(err, d.Store.Close())
	}
	return err
}
