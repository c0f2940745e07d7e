package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// CustomerRepository описывает хранилище клиентов.
type CustomerRepository interface {
	// Create сохраняет клиента и возвращает его с назначенным ID.
	Create(ctx context.Context, customer Customer) (Customer, error)
	// Get возвращает клиента или ErrCustomerNotFound.
	Get(ctx context.Context, id int64) (Customer, error)
	// Count возвращает количество клиентов (используется при начальном заполнении).
	Count(ctx context.Context) (int, error)
}

// ProductRepository описывает хранилище товаров и их остатков.
type ProductRepository interface {
	Create(ctx context.Context, product Product) (Product, error)
	// Get возвращает товар или ErrProductNotFound.
	Get(ctx context.Context, id int64) (Product, error)
	// List возвращает все товары в порядке первичного ключа.
	List(ctx context.Context) ([]Product, error)
	Count(ctx context.Context) (int, error)
	// UpdateStock перезаписывает остаток товара.
	UpdateStock(ctx context.Context, id int64, stock int) error
}

// OrderRepository описывает хранилище заказов.
type OrderRepository interface {
	Create(ctx context.Context, order Order) (Order, error)
	// GetForCustomer ищет заказ по паре (orderID, customerID); чужой заказ — ErrOrderNotFound.
	GetForCustomer(ctx context.Context, orderID, customerID int64) (Order, error)
	// ListLinesByCustomer возвращает заказы клиента вместе с данными товара, по возрастанию ID.
	ListLinesByCustomer(ctx context.Context, customerID int64) ([]OrderLine, error)
	UpdateQuantity(ctx context.Context, id int64, qty int) error
	Delete(ctx context.Context, id int64) error
	// TotalByCustomer считает SUM(quantity * price) по заказам клиента; 0, если заказов нет.
	TotalByCustomer(ctx context.Context, customerID int64) (decimal.Decimal, error)
}

// SummaryRepository хранит CustomerTotalSummary.
type SummaryRepository interface {
	// Upsert создаёт или перезаписывает единственную запись итога клиента.
	Upsert(ctx context.Context, customerID int64, total decimal.Decimal) (CustomerTotalSummary, error)
	// Get возвращает итог клиента или ErrSummaryNotFound.
	Get(ctx context.Context, customerID int64) (CustomerTotalSummary, error)
}

// Repositories — набор репозиториев, привязанных к одной транзакции.
type Repositories struct {
	Customers CustomerRepository
	Products  ProductRepository
	Orders    OrderRepository
	Summaries SummaryRepository
}

// Store — дескриптор хранилища, который явно передаётся во все операции.
type Store interface {
	// InTx выполняет fn в одной транзакции: commit, если fn вернула nil, иначе rollback.
	InTx(ctx context.Context, fn func(repos Repositories) error) error
	// Ping проверяет доступность хранилища.
	Ping(ctx context.Context) error
	// Close освобождает подключение.
	Close() error
}

// EventPublisher публикует события заказов наружу после фиксации транзакции.
type EventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}
