package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()

	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("write counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestNewShopMetrics(t *testing.T) {
	m := NewShopMetrics()
	if m == nil {
		t.Fatal("NewShopMetrics should not return nil")
	}
	if m.Registry() == nil {
		t.Fatal("registry should not be nil")
	}

	// Отдельные экземпляры не конфликтуют: у каждого свой реестр.
	if other := NewShopMetrics(); other.Registry() == m.Registry() {
		t.Fatal("expected independent registries")
	}
}

func TestShopMetrics_Counters(t *testing.T) {
	m := NewShopMetrics()

	m.RecordOrderPlaced()
	m.RecordOrderPlaced()
	m.RecordOrderRejected(RejectInsufficientStock)
	m.RecordAdjustment(AdjustmentReduced)
	m.RecordAdjustment(AdjustmentRemoved)
	m.RecordAdjustment(AdjustmentRemoved)
	m.RecordRecalculation(1, 7000)

	if got := counterValue(t, m.ordersPlaced); got != 2 {
		t.Fatalf("expected 2 placed orders, got %v", got)
	}
	if got := counterValue(t, m.ordersRejected.WithLabelValues(RejectInsufficientStock)); got != 1 {
		t.Fatalf("expected 1 rejection, got %v", got)
	}
	if got := counterValue(t, m.adjustments.WithLabelValues(AdjustmentRemoved)); got != 2 {
		t.Fatalf("expected 2 removals, got %v", got)
	}
	if got := counterValue(t, m.recalculations); got != 1 {
		t.Fatalf("expected 1 recalculation, got %v", got)
	}

	var gauge dto.Metric
	if err := m.customerTotal.WithLabelValues("1").Write(&gauge); err != nil {
		t.Fatalf("write gauge: %v", err)
	}
	if gauge.GetGauge().GetValue() != 7000 {
		t.Fatalf("expected customer total 7000, got %v", gauge.GetGauge().GetValue())
	}
}

func TestShopMetrics_ObserveOperation(t *testing.T) {
	m := NewShopMetrics()
	m.ObserveOperation("place_order", 3*time.Millisecond)

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, family := range families {
		if family.GetName() != "shop_operation_duration_seconds" {
			continue
		}
		if got := family.GetMetric()[0].GetHistogram().GetSampleCount(); got != 1 {
			t.Fatalf("expected 1 sample, got %d", got)
		}
		return
	}
	t.Fatal("histogram family not found")
}

func TestShopMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *ShopMetrics

	m.RecordOrderPlaced()
	m.RecordOrderRejected(RejectNotFound)
	m.RecordAdjustment(AdjustmentReduced)
	m.RecordRecalculation(1, 1)
	m.ObserveOperation("noop", time.Millisecond)
	if m.Registry() != nil {
		t.Fatal("nil metrics must not expose a registry")
	}
	if err := m.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")); err != nil {
		t.Fatalf("nil metrics write should be noop: %v", err)
	}
}

func TestShopMetrics_WriteTextfile(t *testing.T) {
	m := NewShopMetrics()
	m.RecordOrderPlaced()

	path := filepath.Join(t.TempDir(), "shop.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("write textfile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), "shop_orders_placed_total 1") {
		t.Fatalf("unexpected textfile contents:\n%s", data)
	}
}

func TestRegister_ReturnsExistingCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	opts := prometheus.CounterOpts{Name: "test_dup_total", Help: "dup"}

	first := register(reg, prometheus.NewCounter(opts))
	second := register(reg, prometheus.NewCounter(opts))
	first.Inc()

	if got := counterValue(t, second); got != 1 {
		t.Fatalf("expected shared collector, got %v", got)
	}
}
