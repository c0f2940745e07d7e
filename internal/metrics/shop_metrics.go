package metrics

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Причины отказа в заказе (label reason).
const (
	RejectInsufficientStock = "insufficient_stock"
	RejectNotFound          = "not_found"
	RejectInvalidQuantity   = "invalid_quantity"
)

// Виды корректировки заказа (label kind).
const (
	AdjustmentReduced = "reduced"
	AdjustmentRemoved = "removed"
)

// ShopMetrics — метрики операций магазина.
// Все методы безопасны для nil-получателя: метрики можно не подключать.
type ShopMetrics struct {
	registry *prometheus.Registry

	ordersPlaced   prometheus.Counter
	ordersRejected *prometheus.CounterVec
	adjustments    *prometheus.CounterVec
	recalculations prometheus.Counter
	customerTotal  *prometheus.GaugeVec
	opDuration     *prometheus.HistogramVec
}

// NewShopMetrics регистрирует коллекторы в собственном реестре.
// CLI не держит HTTP-эндпоинт, поэтому глобальный реестр не используется.
func NewShopMetrics() *ShopMetrics {
	return newShopMetricsWithRegistry(prometheus.NewRegistry())
}

func newShopMetricsWithRegistry(registry *prometheus.Registry) *ShopMetrics {
	return &ShopMetrics{
		registry: registry,
		ordersPlaced: register(registry, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shop_orders_placed_total",
			Help: "Total number of orders placed",
		})),
		ordersRejected: register(registry, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shop_orders_rejected_total",
			Help: "Total number of rejected order operations by reason",
		}, []string{"reason"})),
		adjustments: register(registry, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shop_order_adjustments_total",
			Help: "Total number of order adjustments by kind",
		}, []string{"kind"})),
		recalculations: register(registry, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shop_total_recalculations_total",
			Help: "Total number of customer total recalculations",
		})),
		customerTotal: register(registry, prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "shop_customer_total_value",
			Help: "Last recalculated order total per customer",
		}, []string{"customer_id"})),
		opDuration: register(registry, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shop_operation_duration_seconds",
			Help:    "Duration of shop operations in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"operation"})),
	}
}

// register регистрирует коллектор; при повторной регистрации возвращает уже существующий.
func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) C {
	err := registerer.Register(collector)
	if err == nil {
		return collector
	}

	var alreadyRegistered prometheus.AlreadyRegisteredError
	if errors.As(err, &alreadyRegistered) {
		existing, ok := alreadyRegistered.ExistingCollector.(C)
		if !ok {
			panic(fmt.Sprintf("collector already registered with unexpected type %T", alreadyRegistered.ExistingCollector))
		}
		return existing
	}
	panic(fmt.Sprintf("register collector: %v", err))
}

// Registry возвращает реестр с метриками магазина.
func (m *ShopMetrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *ShopMetrics) RecordOrderPlaced() {
	if m == nil {
		return
	}
	m.ordersPlaced.Inc()
}

// RecordOrderRejected учитывает отказ с указанной причиной.
func (m *ShopMetrics) RecordOrderRejected(reason string) {
	if m == nil {
		return
	}
	m.ordersRejected.WithLabelValues(reason).Inc()
}

func (m *ShopMetrics) RecordAdjustment(kind string) {
	if m == nil {
		return
	}
	m.adjustments.WithLabelValues(kind).Inc()
}

// RecordRecalculation учитывает пересчёт итога и сохраняет последнее значение.
func (m *ShopMetrics) RecordRecalculation(customerID int64, total float64) {
	if m == nil {
		return
	}
	m.recalculations.Inc()
	m.customerTotal.WithLabelValues(strconv.FormatInt(customerID, 10)).Set(total)
}

// ObserveOperation записывает длительность операции.
func (m *ShopMetrics) ObserveOperation(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.opDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// WriteTextfile сохраняет метрики в формате Prometheus textfile (для node_exporter).
func (m *ShopMetrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
