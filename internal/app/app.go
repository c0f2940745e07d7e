package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/health"
	"github.com/vladislavdragonenkov/shop/internal/service/shop"
	"github.com/vladislavdragonenkov/shop/internal/shell"
	"github.com/vladislavdragonenkov/shop/internal/version"
)

// Драйверы хранилища.
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
	StorageDriverMySQL    = "mysql"
)

// Драйверы публикации событий заказов.
const (
	EventsDriverNone     = "none"
	EventsDriverKafka    = "kafka"
	EventsDriverRabbitMQ = "rabbitmq"
)

// Config описывает настройки запуска CLI.
type Config struct {
	StorageDriver       string
	PostgresDSN         string
	PostgresAutoMigrate bool
	MySQLDSN            string

	EventsDriver     string
	KafkaBrokers     []string
	KafkaTopic       string
	RabbitMQURL      string
	RabbitMQExchange string

	// MetricsFile — путь textfile для метрик; пустой путь отключает запись.
	MetricsFile string
	Seed        bool
}

// DefaultConfig возвращает конфигурацию локального запуска: память, без брокеров, с начальными данными.
func DefaultConfig() Config {
	return Config{
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
		EventsDriver:        EventsDriverNone,
		KafkaTopic:          "shop.order.events",
		RabbitMQExchange:    "shop.events",
		Seed:                true,
	}
}

// Run открывает хранилище, при необходимости заполняет его и запускает
// интерактивную оболочку на in/out. Отмена ctx завершает сессию без ошибки.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) (err error) {
	logger := log.WithField("component", "app")
	logger.WithField("version", version.String()).Info("starting shop")

	deps, err := initRuntimeDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := deps.close(cfg, logger); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	probe := health.NewProbe(version.String())
	probe.RegisterChecker("storage", health.NewSimpleChecker("storage", deps.store.Ping))
	report, err := probe.Ready(ctx)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil
		}
		return err
	}
	logger.WithField("status", report.Status).Debug("startup checks passed")

	svc := shop.NewService(deps.store, logger.WithField("layer", "service"),
		shop.WithEventPublisher(deps.publisher),
		shop.WithMetrics(deps.metrics),
	)

	if cfg.Seed {
		if _, err := svc.Seed(ctx); err != nil {
			return fmt.Errorf("seed store: %w", err)
		}
	}

	err = shell.New(svc, in, out, logger.WithField("layer", "shell")).Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("session canceled")
		return nil
	}
	return err
}
