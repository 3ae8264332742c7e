package memory

import (
	"context"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

type productRepositoryInMemory struct {
	db *Database
}

// NewProductRepository возвращает in-memory каталог товаров.
func NewProductRepository(db *Database) domain.ProductRepository {
	return &productRepositoryInMemory{db: db}
}

func (r *productRepositoryInMemory) Create(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	var created domain.Product
	err := r.db.write(ctx, func() error {
		r.db.productSeq++
		created = in.Apply(domain.Product{ID: r.db.productSeq})
		r.db.products = append(r.db.products, created)
		return nil
	})
	if err != nil {
		return domain.Product{}, err
	}
	return created, nil
}

func (r *productRepositoryInMemory) List(ctx context.Context, page domain.Page) ([]domain.Product, error) {
	if err := domain.Validate(page.Validate()); err != nil {
		return nil, err
	}

	var result []domain.Product
	err := r.db.read(ctx, func() error {
		result = pageOf(r.db.products, page)
		return nil
	})
	return result, err
}

func (r *productRepositoryInMemory) Get(ctx context.Context, id int64) (domain.Product, bool, error) {
	var (
		found domain.Product
		ok    bool
	)
	err := r.db.read(ctx, func() error {
		if idx := r.db.productIndex(id); idx >= 0 {
			found, ok = r.db.products[idx], true
		}
		return nil
	})
	if err != nil {
		return domain.Product{}, false, err
	}
	return found, ok, nil
}

// Update перезаписывает изменяемые поля; id не меняется.
func (r *productRepositoryInMemory) Update(ctx context.Context, id int64, in domain.ProductInput) (domain.Product, bool, error) {
	var (
		updated domain.Product
		ok      bool
	)
	err := r.db.write(ctx, func() error {
		idx := r.db.productIndex(id)
		if idx < 0 {
			return nil
		}
		updated, ok = in.Apply(r.db.products[idx]), true
		r.db.products[idx] = updated
		return nil
	})
	if err != nil {
		return domain.Product{}, false, err
	}
	return updated, ok, nil
}

func (r *productRepositoryInMemory) Delete(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.db.write(ctx, func() error {
		idx := r.db.productIndex(id)
		if idx < 0 {
			return nil
		}
		r.db.products = append(r.db.products[:idx], r.db.products[idx+1:]...)
		ok = true
		return nil
	})
	return ok, err
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
