package main

import (
	"fmt"
	"strings"

	"github.com/vladislavdragonenkov/shop/internal/app"
)

const (
	envStorageDriver       = "SHOP_STORAGE_DRIVER"
	envPostgresDSN         = "SHOP_POSTGRES_DSN"
	envPostgresAutoMigrate = "SHOP_POSTGRES_AUTO_MIGRATE"
	envMySQLDSN            = "SHOP_MYSQL_DSN"
	envEventsDriver        = "SHOP_EVENTS_DRIVER"
	envKafkaBrokers        = "SHOP_KAFKA_BROKERS"
	envKafkaTopic          = "SHOP_KAFKA_TOPIC"
	envRabbitMQURL         = "SHOP_RABBITMQ_URL"
	envRabbitMQExchange    = "SHOP_RABBITMQ_EXCHANGE"
	envMetricsFile         = "SHOP_METRICS_FILE"
	envSeed                = "SHOP_SEED"
	envLogLevel            = "SHOP_LOG_LEVEL"
)

type envLookup func(key string) (string, bool)

// readConfigFromEnv собирает app.Config из окружения.
// Некорректные значения не прерывают запуск: остаётся значение по умолчанию, а в warnings добавляется причина.
func readConfigFromEnv(lookup envLookup) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string

	str := func(key string, dst *string, lower bool) {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		v = strings.TrimSpace(v)
		if lower {
			v = strings.ToLower(v)
		}
		*dst = v
	}
	boolean := func(key string, dst *bool) {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		parsed, err := parseBool(v)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v, using default %t", key, err, *dst))
			return
		}
		*dst = parsed
	}

	str(envStorageDriver, &cfg.StorageDriver, true)
	str(envPostgresDSN, &cfg.PostgresDSN, false)
	boolean(envPostgresAutoMigrate, &cfg.PostgresAutoMigrate)
	str(envMySQLDSN, &cfg.MySQLDSN, false)
	str(envEventsDriver, &cfg.EventsDriver, true)
	str(envKafkaTopic, &cfg.KafkaTopic, false)
	str(envRabbitMQURL, &cfg.RabbitMQURL, false)
	str(envRabbitMQExchange, &cfg.RabbitMQExchange, false)
	str(envMetricsFile, &cfg.MetricsFile, false)
	boolean(envSeed, &cfg.Seed)

	if v, ok := lookup(envKafkaBrokers); ok {
		cfg.KafkaBrokers = parseList(v)
	}

	return cfg, warnings
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "y", "on":
		return true, nil
	case "0", "false", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool value %q", raw)
	}
}

// parseList разбирает список через запятую, пропуская пустые элементы.
func parseList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
