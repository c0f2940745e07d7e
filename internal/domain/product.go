package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product — товар каталога с ценой за единицу и текущим остатком.
type Product struct {
	ID    int64
	Name  string
	Price decimal.Decimal
	Stock int
}

// Validate проверяет поля товара: название, неотрицательные цену и остаток.
func (p *Product) Validate() []error {
	var errs []error

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if p.Price.IsNegative() {
		errs = append(errs, ErrProductPriceNegative)
	}
	if p.Stock < 0 {
		errs = append(errs, ErrProductStockNegative)
	}

	return errs
}

// HasStock сообщает, хватает ли остатка на qty единиц.
func (p *Product) HasStock(qty int) bool {
	return p.Stock >= qty
}

// LineTotal возвращает стоимость qty единиц товара.
func (p *Product) LineTotal(qty int) decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(qty)))
}
