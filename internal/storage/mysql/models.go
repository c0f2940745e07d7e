package mysql

import (
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// Модели повторяют схему PostgreSQL-миграций; AutoMigrate создаёт таблицы,
// внешние ключи и CHECK-ограничения с теми же именами.

type customerModel struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"type:varchar(255);not null"`
	Email string `gorm:"type:varchar(255);not null"`
}

func (customerModel) TableName() string { return "customers" }

func (m customerModel) toDomain() domain.Customer {
	return domain.Customer{ID: m.ID, Name: m.Name, Email: m.Email}
}

type productModel struct {
	ID    int64           `gorm:"primaryKey;autoIncrement"`
	Name  string          `gorm:"type:varchar(255);not null"`
	Price decimal.Decimal `gorm:"type:decimal(12,2);not null;check:products_price_check,price >= 0"`
	Stock int             `gorm:"not null;check:products_stock_check,stock >= 0"`
}

func (productModel) TableName() string { return "products" }

func (m productModel) toDomain() domain.Product {
	return domain.Product{ID: m.ID, Name: m.Name, Price: m.Price, Stock: m.Stock}
}

// orderModel ссылается на клиента и товар; удаление связанной строки запрещено, пока есть заказы.
type orderModel struct {
	ID         int64         `gorm:"primaryKey;autoIncrement"`
	CustomerID int64         `gorm:"not null;index:idx_orders_customer_id"`
	ProductID  int64         `gorm:"not null;index:idx_orders_product_id"`
	Quantity   int           `gorm:"not null;check:orders_quantity_check,quantity > 0"`
	Customer   customerModel `gorm:"foreignKey:CustomerID;constraint:orders_customer_id_fkey,OnDelete:RESTRICT"`
	Product    productModel  `gorm:"foreignKey:ProductID;constraint:orders_product_id_fkey,OnDelete:RESTRICT"`
}

func (orderModel) TableName() string { return "orders" }

func (m orderModel) toDomain() domain.Order {
	return domain.Order{ID: m.ID, CustomerID: m.CustomerID, ProductID: m.ProductID, Quantity: m.Quantity}
}

// orderLineRow — результат JOIN заказов с товарами.
type orderLineRow struct {
	ID          int64
	CustomerID  int64
	ProductID   int64
	Quantity    int
	ProductName string
	UnitPrice   decimal.Decimal
}

func (r orderLineRow) toDomain() domain.OrderLine {
	return domain.OrderLine{
		Order: domain.Order{
			ID:         r.ID,
			CustomerID: r.CustomerID,
			ProductID:  r.ProductID,
			Quantity:   r.Quantity,
		},
		ProductName: r.ProductName,
		UnitPrice:   r.UnitPrice,
	}
}

type summaryModel struct {
	ID         int64           `gorm:"primaryKey;autoIncrement"`
	CustomerID int64           `gorm:"not null;uniqueIndex:customer_total_summaries_customer_id_key"`
	TotalValue decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Customer   customerModel   `gorm:"foreignKey:CustomerID;constraint:customer_total_summaries_customer_id_fkey,OnDelete:RESTRICT"`
}

func (summaryModel) TableName() string { return "customer_total_summaries" }

func (m summaryModel) toDomain() domain.CustomerTotalSummary {
	return domain.CustomerTotalSummary{ID: m.ID, CustomerID: m.CustomerID, TotalValue: m.TotalValue}
}

func allModels() []any {
	return []any{&customerModel{}, &productModel{}, &orderModel{}, &summaryModel{}}
}
