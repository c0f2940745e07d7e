package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type summaryRepository struct {
	st *state
}

// Upsert перезаписывает итог клиента, сохраняя ID уже существующей записи.
func (r *summaryRepository) Upsert(_ context.Context, customerID int64, total decimal.Decimal) (domain.CustomerTotalSummary, error) {
	if _, ok := r.st.customers[customerID]; !ok {
		return domain.CustomerTotalSummary{}, domain.ErrCustomerNotFound
	}

	summary, ok := r.st.summaries[customerID]
	if !ok {
		r.st.summarySeq++
		summary = domain.CustomerTotalSummary{ID: r.st.summarySeq, CustomerID: customerID}
	}
	summary.TotalValue = total
	r.st.summaries[customerID] = summary
	return summary, nil
}

func (r *summaryRepository) Get(_ context.Context, customerID int64) (domain.CustomerTotalSummary, error) {
	summary, ok := r.st.summaries[customerID]
	if !ok {
		return domain.CustomerTotalSummary{}, domain.ErrSummaryNotFound
	}
	return summary, nil
}

var _ domain.SummaryRepository = (*summaryRepository)(nil)
