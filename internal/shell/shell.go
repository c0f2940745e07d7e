// Package shell — интерактивное меню магазина поверх shop.Service.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/service/shop"
)

// Service — операции магазина, которые вызывает меню.
type Service interface {
	GetCustomer(ctx context.Context, id int64) (domain.Customer, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	PlaceOrder(ctx context.Context, customerID, productID int64, qty int) (shop.PlacedOrder, error)
	ListCustomerOrders(ctx context.Context, customerID int64) ([]domain.OrderLine, error)
	SummarizePurchase(ctx context.Context, customerID int64) (shop.PurchaseSummary, error)
	GetCustomerOrder(ctx context.Context, customerID, orderID int64) (domain.OrderLine, error)
	AdjustOrder(ctx context.Context, customerID, orderID int64, removeQty int) (shop.Adjustment, error)
}

const menu = `
1. List products
2. Place order
3. View orders
4. Purchase summary
5. Adjust or remove order
6. Exit`

// Shell читает команды из in и пишет ответы в out.
type Shell struct {
	svc    Service
	in     *prompter
	out    io.Writer
	logger *log.Entry
}

func New(svc Service, in io.Reader, out io.Writer, logger *log.Entry) *Shell {
	if logger == nil {
		logger = log.WithField("component", "shell")
	}
	return &Shell{
		svc:    svc,
		in:     newPrompter(in, out),
		out:    out,
		logger: logger,
	}
}

// Run запрашивает ID клиента и обслуживает меню до выбора 6 или конца ввода.
// Доменные ошибки показываются пользователю; ошибка возвращается только
// при сбое хранилища, чтения ввода или отмене ctx.
func (s *Shell) Run(ctx context.Context) error {
	err := s.run(ctx)
	if errors.Is(err, errEndOfInput) {
		return nil
	}
	return err
}

func (s *Shell) run(ctx context.Context) error {
	s.println("Welcome to the store ordering system!")

	customerID, err := s.askCustomer(ctx)
	if err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.println(menu)
		choice, err := s.in.line(ctx, "Choose an option: ")
		if err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = s.listProducts(ctx)
		case "2":
			err = s.placeOrder(ctx, customerID)
		case "3":
			err = s.listOrders(ctx, customerID)
		case "4":
			err = s.summarize(ctx, customerID)
		case "5":
			err = s.adjustOrder(ctx, customerID)
		case "6":
			s.println("Goodbye!")
			return nil
		default:
			s.println("Invalid option, choose a number from 1 to 6.")
		}
		if err != nil {
			return err
		}
	}
}

func (s *Shell) askCustomer(ctx context.Context) (int64, error) {
	for {
		id, err := s.in.number(ctx, "Enter customer ID: ")
		if err != nil {
			return 0, err
		}
		customer, err := s.svc.GetCustomer(ctx, id)
		if err == nil {
			s.printf("Hello, %s!\n", customer.Name)
			return customer.ID, nil
		}
		if err := s.report(err); err != nil {
			return 0, err
		}
	}
}

func (s *Shell) listProducts(ctx context.Context) error {
	products, err := s.svc.ListProducts(ctx)
	if err != nil {
		return s.report(err)
	}
	if len(products) == 0 {
		s.println("No products available.")
	}
	for _, p := range products {
		s.printf("%d: %s - %s - Stock: %d\n", p.ID, p.Name, money(p.Price), p.Stock)
	}
	return nil
}

func (s *Shell) placeOrder(ctx context.Context, customerID int64) error {
	productID, err := s.in.number(ctx, "Enter product ID: ")
	if err != nil {
		return err
	}
	qty, err := s.in.quantity(ctx, "Enter quantity: ")
	if err != nil {
		return err
	}

	placed, err := s.svc.PlaceOrder(ctx, customerID, productID, qty)
	if placed.Order.ID != 0 {
		s.printf("Order placed successfully. Total: %s\n", money(placed.Total))
	}
	if err != nil {
		return s.report(err)
	}
	s.printTotal(customerID, placed.Summary)
	return nil
}

func (s *Shell) listOrders(ctx context.Context, customerID int64) error {
	lines, err := s.svc.ListCustomerOrders(ctx, customerID)
	if err != nil {
		return s.report(err)
	}
	if len(lines) == 0 {
		s.println("You have no orders.")
		return nil
	}
	for _, line := range lines {
		s.printf("Order ID: %d - Product: %s - Quantity: %d\n", line.ID, line.ProductName, line.Quantity)
	}
	return nil
}

func (s *Shell) summarize(ctx context.Context, customerID int64) error {
	summary, err := s.svc.SummarizePurchase(ctx, customerID)
	if err != nil {
		return s.report(err)
	}
	s.println("Order summary:")
	for _, line := range summary.Lines {
		s.printf("%s - Quantity: %d - Subtotal: %s\n", line.ProductName, line.Quantity, money(line.Subtotal()))
	}
	s.printf("\nPurchase total: %s\n", money(summary.Total))
	return nil
}

func (s *Shell) adjustOrder(ctx context.Context, customerID int64) error {
	s.println("Customer orders:")
	if err := s.listOrders(ctx, customerID); err != nil {
		return err
	}

	orderID, err := s.in.number(ctx, "Enter the ID of the order to adjust or remove: ")
	if err != nil {
		return err
	}
	line, err := s.svc.GetCustomerOrder(ctx, customerID, orderID)
	if err != nil {
		return s.report(err)
	}
	s.printf("Selected order: %s - Quantity: %d\n", line.ProductName, line.Quantity)

	removeQty, err := s.in.quantity(ctx, "Enter the quantity to remove: ")
	if err != nil {
		return err
	}

	adj, err := s.svc.AdjustOrder(ctx, customerID, orderID, removeQty)
	if adj.Order.ID != 0 {
		if adj.Removed {
			s.println("Order removed successfully.")
		} else {
			s.printf("Order adjusted. New quantity: %d\n", adj.Order.Quantity)
		}
	}
	if err != nil {
		return s.report(err)
	}
	s.printTotal(customerID, adj.Summary)
	return nil
}

func (s *Shell) printTotal(customerID int64, summary domain.CustomerTotalSummary) {
	s.printf("Total value of customer %d orders: %s\n", customerID, money(summary.TotalValue))
}

// report печатает сообщение для ожидаемой доменной ошибки и возвращает nil;
// остальные ошибки возвращаются вызывающему.
func (s *Shell) report(err error) error {
	msg, ok := userMessage(err)
	if !ok {
		s.logger.WithError(err).Error("operation failed")
		return err
	}
	s.println(msg)
	return nil
}

func userMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "Insufficient stock to place the order.", true
	case errors.Is(err, domain.ErrQuantityInvalid):
		return "Quantity must be greater than zero.", true
	case errors.Is(err, domain.ErrCustomerNotFound):
		return "Customer not found.", true
	case errors.Is(err, domain.ErrProductNotFound):
		return "Product not found.", true
	case errors.Is(err, domain.ErrOrderNotFound):
		return "Order not found.", true
	default:
		return "", false
	}
}

func money(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}

func (s *Shell) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Shell) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}
