package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type orderRepository struct {
	q queryer
}

func (r *orderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	if errs := order.Validate(); len(errs) > 0 {
		return domain.Order{}, errors.Join(errs...)
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	err := r.q.QueryRowContext(ctx, `
		INSERT INTO orders (customer_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id
	`, order.CustomerID, order.ProductID, order.Quantity).Scan(&order.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", mapConstraintError(err))
	}
	return order, nil
}

func (r *orderRepository) GetForCustomer(ctx context.Context, orderID, customerID int64) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var order domain.Order
	err := r.q.QueryRowContext(ctx, `
		SELECT id, customer_id, product_id, quantity
		FROM orders
		WHERE id = $1
		  AND customer_id = $2
	`, orderID, customerID).Scan(&order.ID, &order.CustomerID, &order.ProductID, &order.Quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}
	return order, nil
}

func (r *orderRepository) ListLinesByCustomer(ctx context.Context, customerID int64) ([]domain.OrderLine, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.q.QueryContext(ctx, `
		SELECT o.id, o.customer_id, o.product_id, o.quantity, p.name, p.price
		FROM orders o
		JOIN products p ON p.id = o.product_id
		WHERE o.customer_id = $1
		ORDER BY o.id ASC
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	lines := make([]domain.OrderLine, 0)
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(
			&line.ID, &line.CustomerID, &line.ProductID, &line.Quantity,
			&line.ProductName, &line.UnitPrice,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return lines, nil
}

func (r *orderRepository) UpdateQuantity(ctx context.Context, id int64, qty int) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.q.ExecContext(ctx, `UPDATE orders SET quantity = $1 WHERE id = $2`, qty, id)
	if err != nil {
		return fmt.Errorf("update order quantity: %w", mapConstraintError(err))
	}
	return requireAffected(res, domain.ErrOrderNotFound)
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.q.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return requireAffected(res, domain.ErrOrderNotFound)
}

// TotalByCustomer агрегирует сумму в базе; COALESCE даёт 0 для клиента без заказов.
func (r *orderRepository) TotalByCustomer(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var total decimal.Decimal
	err := r.q.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(o.quantity * p.price), 0)
		FROM orders o
		JOIN products p ON p.id = o.product_id
		WHERE o.customer_id = $1
	`, customerID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum customer orders: %w", err)
	}
	return total, nil
}

func requireAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
