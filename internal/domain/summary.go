package domain

import "github.com/shopspring/decimal"

// CustomerTotalSummary — производный кэш суммы всех заказов клиента.
// Одна запись на клиента; перезаписывается после каждого изменения заказов.
type CustomerTotalSummary struct {
	ID         int64
	CustomerID int64
	TotalValue decimal.Decimal
}
