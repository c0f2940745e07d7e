package domain

import "errors"

var (
	// ErrCustomerNotFound возвращается, если клиента с таким ID нет в хранилище.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrProductNotFound возвращается, если товара с таким ID нет в хранилище.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound возвращается, если заказ не найден (или принадлежит другому клиенту).
	ErrOrderNotFound = errors.New("order not found")
	// ErrSummaryNotFound возвращается, если итог клиента ещё ни разу не рассчитывался.
	ErrSummaryNotFound = errors.New("customer total summary not found")
	// ErrInsufficientStock — на складе меньше единиц, чем запрошено.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrQuantityInvalid — количество в заказе или при списании должно быть > 0.
	ErrQuantityInvalid = errors.New("quantity must be greater than zero")
	// Ошибка отсутствующего имени клиента.
	ErrCustomerNameRequired = errors.New("customer name is required")
	// Ошибка отсутствующего email клиента.
	ErrCustomerEmailRequired = errors.New("customer email is required")
	// Ошибка отсутствующего названия товара.
	ErrProductNameRequired = errors.New("product name is required")
	// Ошибка отрицательной цены товара.
	ErrProductPriceNegative = errors.New("product price must be non-negative")
	// Ошибка отрицательного остатка на складе.
	ErrProductStockNegative = errors.New("product stock must be non-negative")
	// ErrInputFormat — пользователь ввёл не число там, где ожидается число.
	ErrInputFormat = errors.New("input is not a valid number")
)

// IsNotFound проверяет, относится ли ошибка к отсутствующей сущности.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrSummaryNotFound)
}

// IsInsufficientStock проверяет, является ли ошибка нехваткой остатка.
func IsInsufficientStock(err error) bool {
	return errors.Is(err, ErrInsufficientStock)
}
