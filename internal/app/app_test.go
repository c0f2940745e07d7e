package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, EventsDriverNone, cfg.EventsDriver)
	assert.True(t, cfg.PostgresAutoMigrate)
	assert.True(t, cfg.Seed)
	assert.Equal(t, "shop.order.events", cfg.KafkaTopic)
	assert.Equal(t, "shop.events", cfg.RabbitMQExchange)
	assert.Empty(t, cfg.MetricsFile)
}

func TestRun_ScriptedSessionWritesMetrics(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MetricsFile = filepath.Join(t.TempDir(), "shop.prom")

	script := strings.Join([]string{"1", "2", "1", "3", "5", "1", "1", "6"}, "\n") + "\n"
	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), cfg, strings.NewReader(script), &out))

	assert.Contains(t, out.String(), "Order placed successfully. Total: R$ 10500.00")
	assert.Contains(t, out.String(), "Order adjusted. New quantity: 2")
	assert.Contains(t, out.String(), "Total value of customer 1 orders: R$ 7000.00")

	data, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "shop_orders_placed_total 1")
	assert.Contains(t, string(data), `shop_order_adjustments_total{kind="reduced"} 1`)
}

func TestRun_WithoutSeedHasNoCustomers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = false

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), cfg, strings.NewReader("1\n"), &out))
	assert.Contains(t, out.String(), "Customer not found.")
}

func TestRun_CanceledContextIsCleanExit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := DefaultConfig()
	cfg.Seed = false

	var out bytes.Buffer
	assert.NoError(t, Run(ctx, cfg, strings.NewReader("1\n"), &out))
}

func TestRun_InvalidStorageDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = "sqlite"

	err := Run(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported storage driver")
}
