// Package shop реализует операции магазина: каталог, склад и заказы,
// пересчёт итогов клиента и запросы для оболочки.
package shop

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/metrics"
)

// Service объединяет операции магазина поверх domain.Store.
// Каждая изменяющая операция выполняется в одной транзакции; итог клиента
// пересчитывается отдельной транзакцией после фиксации изменения.
type Service struct {
	store   domain.Store
	events  domain.EventPublisher
	metrics *metrics.ShopMetrics
	logger  *log.Entry
}

// Option настраивает Service.
type Option func(*Service)

// WithEventPublisher подключает публикацию событий заказов.
func WithEventPublisher(publisher domain.EventPublisher) Option {
	return func(s *Service) {
		if publisher != nil {
			s.events = publisher
		}
	}
}

// WithMetrics подключает prometheus-метрики.
func WithMetrics(m *metrics.ShopMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService создаёт сервис. События по умолчанию отбрасываются, метрики отключены.
func NewService(store domain.Store, logger *log.Entry, opts ...Option) *Service {
	if logger == nil {
		logger = log.WithField("component", "shop-service")
	}
	s := &Service{
		store:  store,
		events: domain.NopPublisher{},
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) observe(operation string, started time.Time) {
	s.metrics.ObserveOperation(operation, time.Since(started))
}

// publish отправляет событие уже зафиксированного изменения.
// Ошибка только логируется: откатывать закоммиченные данные нельзя.
func (s *Service) publish(ctx context.Context, event domain.OrderEvent) {
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"event_id":   event.ID,
			"event_type": event.Type,
			"order_id":   event.OrderID,
		}).Warn("failed to publish order event")
	}
}

func (s *Service) reject(err error) {
	if reason := rejectReason(err); reason != "" {
		s.metrics.RecordOrderRejected(reason)
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return metrics.RejectInsufficientStock
	case errors.Is(err, domain.ErrQuantityInvalid):
		return metrics.RejectInvalidQuantity
	case domain.IsNotFound(err):
		return metrics.RejectNotFound
	default:
		return ""
	}
}
