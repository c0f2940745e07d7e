package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type customerRepository struct {
	db *gorm.DB
}

func (r *customerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	if errs := customer.Validate(); len(errs) > 0 {
		return domain.Customer{}, errors.Join(errs...)
	}
	m := customerModel{Name: customer.Name, Email: customer.Email}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Customer{}, fmt.Errorf("insert customer: %w", err)
	}
	return m.toDomain(), nil
}

func (r *customerRepository) Get(ctx context.Context, id int64) (domain.Customer, error) {
	var m customerModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return domain.Customer{}, notFound(err, domain.ErrCustomerNotFound, "select customer")
	}
	return m.toDomain(), nil
}

func (r *customerRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, &customerModel{}, "count customers")
}

type productRepository struct {
	db *gorm.DB
}

func (r *productRepository) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	if errs := product.Validate(); len(errs) > 0 {
		return domain.Product{}, errors.Join(errs...)
	}
	m := productModel{Name: product.Name, Price: product.Price, Stock: product.Stock}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return m.toDomain(), nil
}

func (r *productRepository) Get(ctx context.Context, id int64) (domain.Product, error) {
	var m productModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return domain.Product{}, notFound(err, domain.ErrProductNotFound, "select product")
	}
	return m.toDomain(), nil
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	var rows []productModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	products := make([]domain.Product, 0, len(rows))
	for _, m := range rows {
		products = append(products, m.toDomain())
	}
	return products, nil
}

func (r *productRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, &productModel{}, "count products")
}

func (r *productRepository) UpdateStock(ctx context.Context, id int64, stock int) error {
	if stock < 0 {
		return domain.ErrProductStockNegative
	}
	res := r.db.WithContext(ctx).Model(&productModel{}).Where("id = ?", id).Update("stock", stock)
	if res.Error != nil {
		return fmt.Errorf("update product stock: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// MySQL не считает строку затронутой, если значение не изменилось.
		return r.ensureExists(ctx, id)
	}
	return nil
}

func (r *productRepository) ensureExists(ctx context.Context, id int64) error {
	_, err := r.Get(ctx, id)
	return err
}

type orderRepository struct {
	db *gorm.DB
}

// Create проверяет клиента и товар до вставки, чтобы вернуть точную доменную ошибку.
func (r *orderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	if errs := order.Validate(); len(errs) > 0 {
		return domain.Order{}, errors.Join(errs...)
	}
	if err := exists(ctx, r.db, &customerModel{}, order.CustomerID, domain.ErrCustomerNotFound); err != nil {
		return domain.Order{}, err
	}
	if err := exists(ctx, r.db, &productModel{}, order.ProductID, domain.ErrProductNotFound); err != nil {
		return domain.Order{}, err
	}

	m := orderModel{CustomerID: order.CustomerID, ProductID: order.ProductID, Quantity: order.Quantity}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}
	return m.toDomain(), nil
}

func (r *orderRepository) GetForCustomer(ctx context.Context, orderID, customerID int64) (domain.Order, error) {
	var m orderModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", orderID, customerID).
		First(&m).Error
	if err != nil {
		return domain.Order{}, notFound(err, domain.ErrOrderNotFound, "select order")
	}
	return m.toDomain(), nil
}

func (r *orderRepository) ListLinesByCustomer(ctx context.Context, customerID int64) ([]domain.OrderLine, error) {
	var rows []orderLineRow
	err := r.db.WithContext(ctx).
		Table("orders AS o").
		Select("o.id, o.customer_id, o.product_id, o.quantity, p.name AS product_name, p.price AS unit_price").
		Joins("JOIN products AS p ON p.id = o.product_id").
		Where("o.customer_id = ?", customerID).
		Order("o.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	lines := make([]domain.OrderLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, row.toDomain())
	}
	return lines, nil
}

func (r *orderRepository) UpdateQuantity(ctx context.Context, id int64, qty int) error {
	if qty <= 0 {
		return domain.ErrQuantityInvalid
	}
	res := r.db.WithContext(ctx).Model(&orderModel{}).Where("id = ?", id).Update("quantity", qty)
	if res.Error != nil {
		return fmt.Errorf("update order quantity: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return exists(ctx, r.db, &orderModel{}, id, domain.ErrOrderNotFound)
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&orderModel{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) TotalByCustomer(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Table("orders AS o").
		Select("COALESCE(SUM(o.quantity * p.price), 0)").
		Joins("JOIN products AS p ON p.id = o.product_id").
		Where("o.customer_id = ?", customerID).
		Row().Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum customer orders: %w", err)
	}
	return total, nil
}

type summaryRepository struct {
	db *gorm.DB
}

// Upsert опирается на уникальный индекс customer_id (ON DUPLICATE KEY UPDATE).
func (r *summaryRepository) Upsert(ctx context.Context, customerID int64, total decimal.Decimal) (domain.CustomerTotalSummary, error) {
	if err := exists(ctx, r.db, &customerModel{}, customerID, domain.ErrCustomerNotFound); err != nil {
		return domain.CustomerTotalSummary{}, err
	}

	m := summaryModel{CustomerID: customerID, TotalValue: total}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"total_value"}),
	}).Omit(clause.Associations).Create(&m).Error
	if err != nil {
		return domain.CustomerTotalSummary{}, fmt.Errorf("upsert customer total: %w", err)
	}

	// При обновлении MySQL не возвращает ID существующей строки: перечитываем.
	return r.Get(ctx, customerID)
}

func (r *summaryRepository) Get(ctx context.Context, customerID int64) (domain.CustomerTotalSummary, error) {
	var m summaryModel
	if err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).First(&m).Error; err != nil {
		return domain.CustomerTotalSummary{}, notFound(err, domain.ErrSummaryNotFound, "select customer total")
	}
	return m.toDomain(), nil
}

func notFound(err, sentinel error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return fmt.Errorf("%s: %w", op, err)
}

func count(ctx context.Context, db *gorm.DB, model any, op string) (int, error) {
	var n int64
	if err := db.WithContext(ctx).Model(model).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(n), nil
}

func exists(ctx context.Context, db *gorm.DB, model any, id int64, sentinel error) error {
	var n int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("check reference: %w", err)
	}
	if n == 0 {
		return sentinel
	}
	return nil
}

var (
	_ domain.CustomerRepository = (*customerRepository)(nil)
	_ domain.ProductRepository  = (*productRepository)(nil)
	_ domain.OrderRepository    = (*orderRepository)(nil)
	_ domain.SummaryRepository  = (*summaryRepository)(nil)
)
