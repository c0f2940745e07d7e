package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

const (
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// constraintErrors сопоставляет имена ограничений схемы с доменными ошибками.
var constraintErrors = map[string]error{
	"orders_customer_id_fkey":                   domain.ErrCustomerNotFound,
	"orders_product_id_fkey":                    domain.ErrProductNotFound,
	"customer_total_summaries_customer_id_fkey": domain.ErrCustomerNotFound,
	"orders_quantity_check":                     domain.ErrQuantityInvalid,
	"products_stock_check":                      domain.ErrProductStockNegative,
	"products_price_check":                      domain.ErrProductPriceNegative,
}

// mapConstraintError переводит нарушение FK/CHECK в доменную ошибку.
// Прочие ошибки возвращаются как есть.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	if pgErr.Code != pgForeignKeyViolation && pgErr.Code != pgCheckViolation {
		return err
	}
	if mapped, ok := constraintErrors[pgErr.ConstraintName]; ok {
		return mapped
	}
	return err
}
