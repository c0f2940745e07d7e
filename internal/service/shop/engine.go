package shop

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/metrics"
)

// PlacedOrder — результат размещения заказа.
type PlacedOrder struct {
	Order      domain.Order
	Product    domain.Product // состояние товара после списания
	Total      decimal.Decimal
	Summary    domain.CustomerTotalSummary
	Recomputed bool // false, если заказ сохранён, но пересчёт итога не удался
}

// Adjustment — результат корректировки или удаления заказа.
type Adjustment struct {
	Order      domain.Order // при Removed содержит заказ до удаления
	Product    domain.Product
	Removed    bool
	Restocked  int
	Summary    domain.CustomerTotalSummary
	Recomputed bool
}

// CheckStock сообщает, есть ли товар и хватает ли его остатка на qty.
// Отсутствующий товар даёт false без ошибки.
func (s *Service) CheckStock(ctx context.Context, productID int64, qty int) (bool, error) {
	var ok bool
	err := s.store.InTx(ctx, func(repos domain.Repositories) error {
		product, err := repos.Products.Get(ctx, productID)
		if err != nil {
			if domain.IsNotFound(err) {
				return nil
			}
			return err
		}
		ok = product.HasStock(qty)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("check stock: %w", err)
	}
	return ok, nil
}

// PlaceOrder создаёт заказ и списывает остаток в одной транзакции,
// затем пересчитывает итог клиента.
func (s *Service) PlaceOrder(ctx context.Context, customerID, productID int64, qty int) (PlacedOrder, error) {
	defer s.observe("place_order", time.Now())

	logger := s.logger.WithFields(log.Fields{
		"customer_id": customerID,
		"product_id":  productID,
		"qty":         qty,
	})

	if qty <= 0 {
		s.reject(domain.ErrQuantityInvalid)
		return PlacedOrder{}, domain.ErrQuantityInvalid
	}

	var placed PlacedOrder
	err := s.store.InTx(ctx, func(repos domain.Repositories) error {
		if _, err := repos.Customers.Get(ctx, customerID); err != nil {
			return err
		}
		product, err := repos.Products.Get(ctx, productID)
		if err != nil {
			return err
		}
		if !product.HasStock(qty) {
			return domain.ErrInsufficientStock
		}

		order, err := repos.Orders.Create(ctx, domain.Order{
			CustomerID: customerID,
			ProductID:  productID,
			Quantity:   qty,
		})
		if err != nil {
			return err
		}

		product.Stock -= qty
		if err := repos.Products.UpdateStock(ctx, product.ID, product.Stock); err != nil {
			return err
		}

		placed = PlacedOrder{
			Order:   order,
			Product: product,
			Total:   product.LineTotal(qty),
		}
		return nil
	})
	if err != nil {
		s.reject(err)
		logger.WithError(err).Info("order rejected")
		return PlacedOrder{}, fmt.Errorf("place order: %w", err)
	}

	s.metrics.RecordOrderPlaced()
	logger.WithFields(log.Fields{
		"order_id": placed.Order.ID,
		"total":    placed.Total.StringFixed(2),
		"stock":    placed.Product.Stock,
	}).Info("order placed")
	s.publish(ctx, domain.NewOrderEvent(domain.OrderEventPlaced, placed.Order, 0, placed.Product.Stock))

	summary, err := s.RecalculateTotal(ctx, customerID)
	if err != nil {
		return placed, err
	}
	placed.Summary, placed.Recomputed = summary, true
	return placed, nil
}

// AdjustOrder снимает removeQty единиц с заказа клиента.
// Если removeQty не меньше количества в заказе, заказ удаляется и на склад
// возвращается всё его количество; иначе возвращается только removeQty.
func (s *Service) AdjustOrder(ctx context.Context, customerID, orderID int64, removeQty int) (Adjustment, error) {
	defer s.observe("adjust_order", time.Now())

	logger := s.logger.WithFields(log.Fields{
		"customer_id": customerID,
		"order_id":    orderID,
		"qty":         removeQty,
	})

	if removeQty <= 0 {
		s.reject(domain.ErrQuantityInvalid)
		return Adjustment{}, domain.ErrQuantityInvalid
	}

	var adj Adjustment
	err := s.store.InTx(ctx, func(repos domain.Repositories) error {
		order, err := repos.Orders.GetForCustomer(ctx, orderID, customerID)
		if err != nil {
			return err
		}
		product, err := repos.Products.Get(ctx, order.ProductID)
		if err != nil {
			return err
		}

		restock := removeQty
		if removeQty >= order.Quantity {
			restock = order.Quantity
			if err := repos.Orders.Delete(ctx, order.ID); err != nil {
				return err
			}
			adj.Removed = true
		} else {
			order.Quantity -= removeQty
			if err := repos.Orders.UpdateQuantity(ctx, order.ID, order.Quantity); err != nil {
				return err
			}
		}

		product.Stock += restock
		if err := repos.Products.UpdateStock(ctx, product.ID, product.Stock); err != nil {
			return err
		}

		adj.Order, adj.Product, adj.Restocked = order, product, restock
		return nil
	})
	if err != nil {
		s.reject(err)
		logger.WithError(err).Info("order adjustment rejected")
		return Adjustment{}, fmt.Errorf("adjust order: %w", err)
	}

	eventType, kind := domain.OrderEventAdjusted, metrics.AdjustmentReduced
	if adj.Removed {
		eventType, kind = domain.OrderEventRemoved, metrics.AdjustmentRemoved
	}
	s.metrics.RecordAdjustment(kind)
	logger.WithFields(log.Fields{
		"removed":   adj.Removed,
		"restocked": adj.Restocked,
		"stock":     adj.Product.Stock,
	}).Info("order adjusted")
	s.publish(ctx, domain.NewOrderEvent(eventType, adj.Order, adj.Restocked, adj.Product.Stock))

	summary, err := s.RecalculateTotal(ctx, customerID)
	if err != nil {
		return adj, err
	}
	adj.Summary, adj.Recomputed = summary, true
	return adj, nil
}
