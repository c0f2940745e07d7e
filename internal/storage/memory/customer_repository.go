package memory

import (
	"context"
	"errors"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type customerRepository struct {
	st *state
}

// Create назначает клиенту следующий ID и сохраняет его.
func (r *customerRepository) Create(_ context.Context, customer domain.Customer) (domain.Customer, error) {
	if errs := customer.Validate(); len(errs) > 0 {
		return domain.Customer{}, errors.Join(errs...)
	}

	r.st.customerSeq++
	customer.ID = r.st.customerSeq
	r.st.customers[customer.ID] = customer
	return customer, nil
}

func (r *customerRepository) Get(_ context.Context, id int64) (domain.Customer, error) {
	customer, ok := r.st.customers[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return customer, nil
}

func (r *customerRepository) Count(_ context.Context) (int, error) {
	return len(r.st.customers), nil
}

var _ domain.CustomerRepository = (*customerRepository)(nil)
