package kafka

import (
	"context"
	"errors"
	"strconv"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// TopicOrderEvents — topic по умолчанию для событий заказов.
const TopicOrderEvents = "shop.order.events"

// Заголовки сообщения.
const (
	HeaderEventID   = "x-event-id"
	HeaderEventType = "x-event-type"
)

// OrderEventPublisher публикует domain.OrderEvent в Kafka.
// Ключ сообщения — ID клиента: события одного клиента попадают в одну партицию.
type OrderEventPublisher struct {
	producer *Producer
	topic    string
}

// NewOrderEventPublisher создаёт publisher; пустой topic заменяется TopicOrderEvents.
func NewOrderEventPublisher(producer *Producer, topic string) *OrderEventPublisher {
	if topic == "" {
		topic = TopicOrderEvents
	}
	return &OrderEventPublisher{producer: producer, topic: topic}
}

func (p *OrderEventPublisher) Publish(ctx context.Context, event domain.OrderEvent) error {
	if p == nil || p.producer == nil {
		return errors.New("kafka order event publisher is not initialized")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return p.producer.Send(p.topic, messageKey(event), event, map[string]string{
		HeaderEventID:   event.ID,
		HeaderEventType: string(event.Type),
	})
}

// Close закрывает producer.
func (p *OrderEventPublisher) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}

func messageKey(event domain.OrderEvent) string {
	return strconv.FormatInt(event.CustomerID, 10)
}

var _ domain.EventPublisher = (*OrderEventPublisher)(nil)
