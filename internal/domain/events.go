package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OrderEventType определяет тип события заказа.
type OrderEventType string

const (
	// OrderEventPlaced — заказ создан, остаток уменьшен.
	OrderEventPlaced OrderEventType = "order.placed"
	// OrderEventAdjusted — количество в заказе уменьшено, часть остатка возвращена.
	OrderEventAdjusted OrderEventType = "order.adjusted"
	// OrderEventRemoved — заказ удалён, весь объём возвращён на склад.
	OrderEventRemoved OrderEventType = "order.removed"
)

// OrderEvent описывает зафиксированное изменение заказа.
type OrderEvent struct {
	ID         string         `json:"id"`
	Type       OrderEventType `json:"type"`
	OrderID    int64          `json:"order_id"`
	CustomerID int64          `json:"customer_id"`
	ProductID  int64          `json:"product_id"`
	Quantity   int            `json:"quantity"`
	Restocked  int            `json:"restocked,omitempty"`
	StockAfter int            `json:"stock_after"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// NewOrderEvent создаёт событие с новым идентификатором и текущим временем (UTC).
func NewOrderEvent(eventType OrderEventType, order Order, restocked, stockAfter int) OrderEvent {
	return OrderEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		ProductID:  order.ProductID,
		Quantity:   order.Quantity,
		Restocked:  restocked,
		StockAfter: stockAfter,
		OccurredAt: time.Now().UTC(),
	}
}

// NopPublisher отбрасывает события; используется, когда брокер не настроен.
type NopPublisher struct{}

// Publish ничего не делает.
func (NopPublisher) Publish(context.Context, OrderEvent) error { return nil }

var _ EventPublisher = NopPublisher{}
