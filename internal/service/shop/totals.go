package shop

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// RecalculateTotal пересчитывает сумму заказов клиента по текущим ценам и
// сохраняет её в единственную запись CustomerTotalSummary.
// Без заказов итог равен нулю. Повторный вызов без изменений даёт тот же результат.
func (s *Service) RecalculateTotal(ctx context.Context, customerID int64) (domain.CustomerTotalSummary, error) {
	defer s.observe("recalculate_total", time.Now())

	var summary domain.CustomerTotalSummary
	err := s.store.InTx(ctx, func(repos domain.Repositories) error {
		total, err := repos.Orders.TotalByCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		summary, err = repos.Summaries.Upsert(ctx, customerID, total)
		return err
	})
	if err != nil {
		s.logger.WithError(err).WithField("customer_id", customerID).Error("failed to recalculate customer total")
		return domain.CustomerTotalSummary{}, fmt.Errorf("recalculate total: %w", err)
	}

	s.metrics.RecordRecalculation(customerID, summary.TotalValue.InexactFloat64())
	s.logger.WithFields(log.Fields{
		"customer_id": customerID,
		"total":       summary.TotalValue.StringFixed(2),
	}).Info("customer total recalculated")
	return summary, nil
}

// CustomerTotal возвращает сохранённый итог или domain.ErrSummaryNotFound.
func (s *Service) CustomerTotal(ctx context.Context, customerID int64) (domain.CustomerTotalSummary, error) {
	var summary domain.CustomerTotalSummary
	err := s.store.InTx(ctx, func(repos domain.Repositories) error {
		var err error
		summary, err = repos.Summaries.Get(ctx, customerID)
		return err
	})
	return summary, err
}
