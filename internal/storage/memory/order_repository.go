package memory

import (
	"context"
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type orderRepository struct {
	st *state
}

// Create проверяет ссылки на клиента и товар так же, как внешние ключи в SQL.
func (r *orderRepository) Create(_ context.Context, order domain.Order) (domain.Order, error) {
	if errs := order.Validate(); len(errs) > 0 {
		return domain.Order{}, errors.Join(errs...)
	}
	if _, ok := r.st.customers[order.CustomerID]; !ok {
		return domain.Order{}, domain.ErrCustomerNotFound
	}
	if _, ok := r.st.products[order.ProductID]; !ok {
		return domain.Order{}, domain.ErrProductNotFound
	}

	r.st.orderSeq++
	order.ID = r.st.orderSeq
	r.st.orders[order.ID] = order
	return order, nil
}

func (r *orderRepository) GetForCustomer(_ context.Context, orderID, customerID int64) (domain.Order, error) {
	order, ok := r.st.orders[orderID]
	if !ok || order.CustomerID != customerID {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

func (r *orderRepository) ListLinesByCustomer(_ context.Context, customerID int64) ([]domain.OrderLine, error) {
	lines := make([]domain.OrderLine, 0)
	for _, order := range r.st.orders {
		if order.CustomerID != customerID {
			continue
		}
		product, ok := r.st.products[order.ProductID]
		if !ok {
			return nil, domain.ErrProductNotFound
		}
		lines = append(lines, domain.OrderLine{
			Order:       order,
			ProductName: product.Name,
			UnitPrice:   product.Price,
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
	return lines, nil
}

func (r *orderRepository) UpdateQuantity(_ context.Context, id int64, qty int) error {
	order, ok := r.st.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if qty <= 0 {
		return domain.ErrQuantityInvalid
	}
	order.Quantity = qty
	r.st.orders[id] = order
	return nil
}

func (r *orderRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.st.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.st.orders, id)
	return nil
}

func (r *orderRepository) TotalByCustomer(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	lines, err := r.ListLinesByCustomer(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.SumLines(lines), nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
