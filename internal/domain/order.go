package domain

import "github.com/shopspring/decimal"

// Order — заказ клиента на некоторое количество одного товара.
// Размещение заказа уменьшает остаток товара на Quantity.
type Order struct {
	ID         int64
	CustomerID int64
	ProductID  int64
	Quantity   int
}

// Validate проверяет ссылки на клиента и товар и положительность количества.
func (o *Order) Validate() []error {
	var errs []error

	if o.CustomerID <= 0 {
		errs = append(errs, ErrCustomerNotFound)
	}
	if o.ProductID <= 0 {
		errs = append(errs, ErrProductNotFound)
	}
	if o.Quantity <= 0 {
		errs = append(errs, ErrQuantityInvalid)
	}

	return errs
}

// OrderLine — заказ вместе с названием и текущей ценой товара.
type OrderLine struct {
	Order
	ProductName string
	UnitPrice   decimal.Decimal
}

// Subtotal считает стоимость строки по текущей цене товара.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// SumLines возвращает сумму Subtotal по всем строкам (0 для пустого списка).
func SumLines(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}
