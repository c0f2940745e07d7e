package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

var errStoreClosed = errors.New("memory store is closed")

// state — полный снимок данных магазина.
type state struct {
	customers map[int64]domain.Customer
	products  map[int64]domain.Product
	orders    map[int64]domain.Order
	// summaries индексируются по customer_id: не более одной записи на клиента.
	summaries map[int64]domain.CustomerTotalSummary

	customerSeq int64
	productSeq  int64
	orderSeq    int64
	summarySeq  int64
}

func newState() *state {
	return &state{
		customers: make(map[int64]domain.Customer),
		products:  make(map[int64]domain.Product),
		orders:    make(map[int64]domain.Order),
		summaries: make(map[int64]domain.CustomerTotalSummary),
	}
}

func (s *state) clone() *state {
	c := &state{
		customers:   make(map[int64]domain.Customer, len(s.customers)),
		products:    make(map[int64]domain.Product, len(s.products)),
		orders:      make(map[int64]domain.Order, len(s.orders)),
		summaries:   make(map[int64]domain.CustomerTotalSummary, len(s.summaries)),
		customerSeq: s.customerSeq,
		productSeq:  s.productSeq,
		orderSeq:    s.orderSeq,
		summarySeq:  s.summarySeq,
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.summaries {
		c.summaries[k] = v
	}
	return c
}

// Store — in-memory реализация domain.Store для локального запуска и тестов.
// Транзакция работает с копией состояния и подменяет его только при успехе.
type Store struct {
	mu     sync.Mutex
	state  *state
	closed bool
}

// NewStore возвращает пустое in-memory хранилище.
func NewStore() *Store {
	return &Store{state: newState()}
}

// InTx выполняет fn над копией состояния; при ошибке изменения отбрасываются.
func (s *Store) InTx(ctx context.Context, fn func(repos domain.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errStoreClosed
	}

	work := s.state.clone()
	if err := fn(repositoriesFor(work)); err != nil {
		return err
	}
	s.state = work
	return nil
}

// Ping проверяет, что хранилище не закрыто.
func (s *Store) Ping(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errStoreClosed
	}
	return nil
}

// Close помечает хранилище закрытым; повторный вызов безопасен.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

func repositoriesFor(st *state) domain.Repositories {
	return domain.Repositories{
		Customers: &customerRepository{st: st},
		Products:  &productRepository{st: st},
		Orders:    &orderRepository{st: st},
		Summaries: &summaryRepository{st: st},
	}
}

var _ domain.Store = (*Store)(nil)
