package shop

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// SeedResult сообщает, сколько записей добавило начальное заполнение.
type SeedResult struct {
	CustomersAdded int
	ProductsAdded  int
}

var (
	seedCustomers = []domain.Customer{
		{Name: "João Silva", Email: "joao.silva@example.com"},
		{Name: "Maria Oliveira", Email: "maria.oliveira@example.com"},
	}
	seedProducts = []domain.Product{
		{Name: "Laptop", Price: decimal.RequireFromString("3500.00"), Stock: 10},
		{Name: "Smartphone", Price: decimal.RequireFromString("1500.00"), Stock: 20},
		{Name: "Teclado", Price: decimal.RequireFromString("150.00"), Stock: 50},
	}
)

// AddCustomer добавляет клиента.
func (s *Service) AddCustomer(ctx context.Context, name, email string) (domain.Customer, error) {
	customer := domain.Customer{Name: name, Email: email}
	if errs := customer.Validate(); len(errs) > 0 {
		return domain.Customer{}, errors.Join(errs...)
	}

	err := s.store.InTx(ctx, func(repos domain.Repositories) error {
		var err error
		customer, err = repos.Customers.Create(ctx, customer)
		return err
	})
	if err != nil {
		return domain.Customer{}, fmt.Errorf("add customer: %w", err)
	}

	s.logger.WithFields(log.Fields{"customer_id": customer.ID, "name": customer.Name}).Info("customer added")
	return customer, nil
}

// AddProduct добавляет товар с ценой и начальным остатком.
func (s *Service) AddProduct(ctx context.Context, name string, price decimal.Decimal, stock int) (domain.Product, error) {
	product := domain.Product{Name: name, Price: price, Stock: stock}
	if errs := product.Validate(); len(errs) > 0 {
		return domain.Product{}, errors.Join(errs...)
	}

	err := s.store.InTx(ctx, func(repos domain.Repositories) error {
		var err error
		product, err = repos.Products.Create(ctx, product)
		return err
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("add product: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"product_id": product.ID,
		"name":       product.Name,
		"stock":      product.Stock,
	}).Info("product added")
	return product, nil
}

// Seed заполняет пустые таблицы клиентов и товаров демонстрационными данными.
// Каждая таблица проверяется отдельно; повторный вызов ничего не меняет.
func (s *Service) Seed(ctx context.Context) (SeedResult, error) {
	var result SeedResult

	err := s.store.InTx(ctx, func(repos domain.Repositories) error {
		count, err := repos.Customers.Count(ctx)
		if err != nil || count > 0 {
			return err
		}
		for _, c := range seedCustomers {
			if _, err := repos.Customers.Create(ctx, c); err != nil {
				return err
			}
			result.CustomersAdded++
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, fmt.Errorf("seed customers: %w", err)
	}

	err = s.store.InTx(ctx, func(repos domain.Repositories) error {
		count, err := repos.Products.Count(ctx)
		if err != nil || count > 0 {
			return err
		}
		for _, p := range seedProducts {
			if _, err := repos.Products.Create(ctx, p); err != nil {
				return err
			}
			result.ProductsAdded++
		}
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("seed products: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"customers_added": result.CustomersAdded,
		"products_added":  result.ProductsAdded,
	}).Info("seed completed")
	return result, nil
}

// GetCustomer возвращает клиента или domain.ErrCustomerNotFound.
func (s *Service) GetCustomer(ctx context.Context, id int64) (domain.Customer, error) {
	var customer domain.Customer
	err := s.store.InTx(ctx, func(repos domain.Repositories) error {
		var err error
		customer, err = repos.Customers.Get(ctx, id)
		return err
	})
	return customer, err
}
