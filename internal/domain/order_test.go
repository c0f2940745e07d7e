package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

func TestOrderValidate(t *testing.T) {
	cases := []struct {
		name    string
		order   domain.Order
		wantErr int
	}{
		{name: "valid", order: domain.Order{CustomerID: 1, ProductID: 1, Quantity: 3}},
		{name: "zero qty", order: domain.Order{CustomerID: 1, ProductID: 1, Quantity: 0}, wantErr: 1},
		{name: "negative qty", order: domain.Order{CustomerID: 1, ProductID: 1, Quantity: -2}, wantErr: 1},
		{name: "no references", order: domain.Order{Quantity: 1}, wantErr: 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if errs := tc.order.Validate(); len(errs) != tc.wantErr {
				t.Fatalf("expected %d errors, got %v", tc.wantErr, errs)
			}
		})
	}
}

func TestSumLines(t *testing.T) {
	lines := []domain.OrderLine{
		{Order: domain.Order{ID: 1, Quantity: 2}, ProductName: "Laptop", UnitPrice: decimal.RequireFromString("3500")},
		{Order: domain.Order{ID: 2, Quantity: 3}, ProductName: "Teclado", UnitPrice: decimal.RequireFromString("150.50")},
	}

	if got := lines[1].Subtotal(); !got.Equal(decimal.RequireFromString("451.50")) {
		t.Fatalf("unexpected subtotal: %s", got)
	}

	got := domain.SumLines(lines)
	if !got.Equal(decimal.RequireFromString("7451.50")) {
		t.Fatalf("unexpected total: %s", got)
	}

	if !domain.SumLines(nil).IsZero() {
		t.Fatal("empty list must sum to zero")
	}
}

func TestCustomerValidate(t *testing.T) {
	valid := domain.Customer{Name: "Maria Oliveira", Email: "maria.oliveira@example.com"}
	if errs := valid.Validate(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}

	empty := domain.Customer{}
	if errs := empty.Validate(); len(errs) != 2 {
		t.Fatalf("expected 2 errors for empty customer, got %v", errs)
	}
}

func TestNewOrderEvent(t *testing.T) {
	order := domain.Order{ID: 7, CustomerID: 1, ProductID: 2, Quantity: 4}

	event := domain.NewOrderEvent(domain.OrderEventAdjusted, order, 1, 16)

	if event.ID == "" {
		t.Fatal("event id must be generated")
	}
	if event.Type != domain.OrderEventAdjusted {
		t.Fatalf("unexpected type: %s", event.Type)
	}
	if event.OrderID != 7 || event.CustomerID != 1 || event.ProductID != 2 {
		t.Fatalf("unexpected references: %+v", event)
	}
	if event.Quantity != 4 || event.Restocked != 1 || event.StockAfter != 16 {
		t.Fatalf("unexpected quantities: %+v", event)
	}
	if event.OccurredAt.IsZero() {
		t.Fatal("occurred_at must be set")
	}

	other := domain.NewOrderEvent(domain.OrderEventAdjusted, order, 1, 16)
	if other.ID == event.ID {
		t.Fatal("event ids must be unique")
	}
}
