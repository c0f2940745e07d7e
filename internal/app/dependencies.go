package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/messaging"
	"github.com/vladislavdragonenkov/shop/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/shop/internal/messaging/rabbitmq"
	"github.com/vladislavdragonenkov/shop/internal/metrics"
	"github.com/vladislavdragonenkov/shop/internal/storage/memory"
	"github.com/vladislavdragonenkov/shop/internal/storage/mysql"
	"github.com/vladislavdragonenkov/shop/internal/storage/postgres"
)

// runtimeDependencies — ресурсы, которые открываются при старте и закрываются при выходе.
type runtimeDependencies struct {
	store     domain.Store
	publisher domain.EventPublisher
	metrics   *metrics.ShopMetrics
	closers   []io.Closer
}

func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	store, err := initStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	deps := &runtimeDependencies{
		store:     store,
		publisher: domain.NopPublisher{},
		metrics:   metrics.NewShopMetrics(),
	}

	publisher, closer, err := initEventPublisher(cfg, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	if publisher != nil {
		deps.publisher = publisher
		deps.closers = append(deps.closers, closer)
	}

	return deps, nil
}

func initStore(ctx context.Context, cfg Config, logger *log.Entry) (domain.Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	if driver == "" {
		driver = StorageDriverMemory
	}

	switch driver {
	case StorageDriverMemory:
		logger.Warn("using in-memory storage: orders and totals are lost on exit, set SHOP_STORAGE_DRIVER=postgres or mysql to keep them")
		return memory.NewStore(), nil

	case StorageDriverPostgres:
		dsn := strings.TrimSpace(cfg.PostgresDSN)
		if dsn == "" {
			return nil, errors.New("postgres storage selected but SHOP_POSTGRES_DSN is empty")
		}
		store, err := postgres.Open(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("apply postgres migrations: %w", err)
			}
		}
		logger.Info("using postgres storage")
		return store, nil

	case StorageDriverMySQL:
		dsn := strings.TrimSpace(cfg.MySQLDSN)
		if dsn == "" {
			return nil, errors.New("mysql storage selected but SHOP_MYSQL_DSN is empty")
		}
		store, err := mysql.Open(ctx, dsn, logger.WithField("layer", "gorm"))
		if err != nil {
			return nil, fmt.Errorf("open mysql store: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("apply mysql schema: %w", err)
		}
		logger.Info("using mysql storage")
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// eventPublisher — publisher, владеющий подключением к брокеру.
type eventPublisher interface {
	domain.EventPublisher
	io.Closer
}

// initEventPublisher возвращает nil, nil, если публикация событий выключена.
func initEventPublisher(cfg Config, logger *log.Entry) (domain.EventPublisher, io.Closer, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.EventsDriver))

	var (
		publisher eventPublisher
		err       error
	)
	switch driver {
	case "", EventsDriverNone:
		return nil, nil, nil
	case EventsDriverKafka:
		var producer *kafka.Producer
		producer, err = kafka.NewProducer(cfg.KafkaBrokers, logger.WithField("layer", "kafka"))
		if err == nil {
			publisher = kafka.NewOrderEventPublisher(producer, cfg.KafkaTopic)
			logger.WithField("brokers", cfg.KafkaBrokers).Info("kafka producer initialized")
		}
	case EventsDriverRabbitMQ:
		if strings.TrimSpace(cfg.RabbitMQURL) == "" {
			return nil, nil, errors.New("rabbitmq events selected but SHOP_RABBITMQ_URL is empty")
		}
		var p *rabbitmq.Publisher
		p, err = rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange, logger.WithField("layer", "rabbitmq"))
		if err == nil {
			publisher = p
			logger.WithField("exchange", cfg.RabbitMQExchange).Info("rabbitmq publisher initialized")
		}
	default:
		return nil, nil, fmt.Errorf("unsupported events driver %q", cfg.EventsDriver)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("init %s publisher: %w", driver, err)
	}
	retrying := messaging.NewRetryingPublisher(publisher, messaging.DefaultRetryConfig(), logger.WithField("layer", "retry"))
	return retrying, retrying, nil
}

// close записывает метрики и освобождает ресурсы в обратном порядке открытия.
func (d *runtimeDependencies) close(cfg Config, logger *log.Entry) error {
	var errs []error

	if cfg.MetricsFile != "" {
		if err := d.metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.WithError(err).Warn("failed to write metrics file")
			errs = append(errs, err)
		}
	}
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i].Close(); err != nil {
			logger.WithError(err).Warn("failed to close event publisher")
			errs = append(errs, err)
		}
	}
	if err := d.store.Close(); err != nil {
		logger.WithError(err).Warn("failed to close store")
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
