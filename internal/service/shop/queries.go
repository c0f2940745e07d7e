package shop

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// PurchaseSummary — строки заказов клиента с подытогами и общей суммой.
type PurchaseSummary struct {
	CustomerID int64
	Lines      []domain.OrderLine
	Total      decimal.Decimal
}

// ListProducts возвращает все товары в порядке ID.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := s.store.InTx(ctx, func(repos domain.Repositories) error {
		var err error
		products, err = repos.Products.List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// ListCustomerOrders возвращает заказы клиента. Пустой срез — отдельное
// состояние «заказов нет», а не ошибка.
func (s *Service) ListCustomerOrders(ctx context.Context, customerID int64) ([]domain.OrderLine, error) {
	var lines []domain.OrderLine
	err := s.store.InTx(ctx, func(repos domain.Repositories) error {
		var err error
		lines, err = repos.Orders.ListLinesByCustomer(ctx, customerID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list customer orders: %w", err)
	}
	return lines, nil
}

// GetCustomerOrder возвращает заказ клиента вместе с товаром.
func (s *Service) GetCustomerOrder(ctx context.Context, customerID, orderID int64) (domain.OrderLine, error) {
	var line domain.OrderLine
	err := s.store.InTx(ctx, func(repos domain.Repositories) error {
		order, err := repos.Orders.GetForCustomer(ctx, orderID, customerID)
		if err != nil {
			return err
		}
		product, err := repos.Products.Get(ctx, order.ProductID)
		if err != nil {
			return err
		}
		line = domain.OrderLine{Order: order, ProductName: product.Name, UnitPrice: product.Price}
		return nil
	})
	return line, err
}

// SummarizePurchase пересчитывает сумму по живым данным и ничего не изменяет;
// сохранённый CustomerTotalSummary не читается.
func (s *Service) SummarizePurchase(ctx context.Context, customerID int64) (PurchaseSummary, error) {
	lines, err := s.ListCustomerOrders(ctx, customerID)
	if err != nil {
		return PurchaseSummary{}, fmt.Errorf("summarize purchase: %w", err)
	}
	return PurchaseSummary{
		CustomerID: customerID,
		Lines:      lines,
		Total:      domain.SumLines(lines),
	}, nil
}
