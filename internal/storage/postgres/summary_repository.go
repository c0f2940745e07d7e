package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type summaryRepository struct {
	q queryer
}

// Upsert опирается на UNIQUE (customer_id): строка на клиента создаётся один раз.
func (r *summaryRepository) Upsert(ctx context.Context, customerID int64, total decimal.Decimal) (domain.CustomerTotalSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var summary domain.CustomerTotalSummary
	err := r.q.QueryRowContext(ctx, `
		INSERT INTO customer_total_summaries (customer_id, total_value)
		VALUES ($1, $2)
		ON CONFLICT (customer_id) DO UPDATE
		SET total_value = EXCLUDED.total_value
		RETURNING id, customer_id, total_value
	`, customerID, total).Scan(&summary.ID, &summary.CustomerID, &summary.TotalValue)
	if err != nil {
		return domain.CustomerTotalSummary{}, fmt.Errorf("upsert customer total: %w", mapConstraintError(err))
	}
	return summary, nil
}

func (r *summaryRepository) Get(ctx context.Context, customerID int64) (domain.CustomerTotalSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var summary domain.CustomerTotalSummary
	err := r.q.QueryRowContext(ctx, `
		SELECT id, customer_id, total_value
		FROM customer_total_summaries
		WHERE customer_id = $1
	`, customerID).Scan(&summary.ID, &summary.CustomerID, &summary.TotalValue)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CustomerTotalSummary{}, domain.ErrSummaryNotFound
		}
		return domain.CustomerTotalSummary{}, fmt.Errorf("select customer total: %w", err)
	}
	return summary, nil
}

var _ domain.SummaryRepository = (*summaryRepository)(nil)
