package memory

import (
	"context"
	"errors"
	"sort"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type productRepository struct {
	st *state
}

func (r *productRepository) Create(_ context.Context, product domain.Product) (domain.Product, error) {
	if errs := product.Validate(); len(errs) > 0 {
		return domain.Product{}, errors.Join(errs...)
	}

	r.st.productSeq++
	product.ID = r.st.productSeq
	r.st.products[product.ID] = product
	return product, nil
}

func (r *productRepository) Get(_ context.Context, id int64) (domain.Product, error) {
	product, ok := r.st.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// List возвращает товары по возрастанию ID, как ORDER BY id в SQL-реализациях.
func (r *productRepository) List(_ context.Context) ([]domain.Product, error) {
	result := make([]domain.Product, 0, len(r.st.products))
	for _, product := range r.st.products {
		result = append(result, product)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *productRepository) Count(_ context.Context) (int, error) {
	return len(r.st.products), nil
}

// UpdateStock повторяет CHECK (stock >= 0) из SQL-схемы.
func (r *productRepository) UpdateStock(_ context.Context, id int64, stock int) error {
	product, ok := r.st.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	if stock < 0 {
		return domain.ErrProductStockNegative
	}
	product.Stock = stock
	r.st.products[id] = product
	return nil
}

var _ domain.ProductRepository = (*productRepository)(nil)
