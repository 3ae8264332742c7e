package memory

import (
	"context"
	"fmt"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

type orderRepositoryInMemory struct {
	db *Database
}

// NewOrderRepository возвращает in-memory репозиторий заказов.
func NewOrderRepository(db *Database) domain.OrderRepository {
	return &orderRepositoryInMemory{db: db}
}

// Create сохраняет заказ, если клиент существует.
func (r *orderRepositoryInMemory) Create(ctx context.Context, in domain.OrderCreate) (domain.Order, error) {
	var created domain.Order
	err := r.db.write(ctx, func() error {
		if r.db.customerIndex(in.CustomerID) < 0 {
			return fmt.Errorf("order customer %d: %w", in.CustomerID, domain.ErrForeignKeyViolation)
		}
		r.db.orderSeq++
		created = domain.Order{ID: r.db.orderSeq, Description: in.Description, CustomerID: in.CustomerID}
		r.db.orders = append(r.db.orders, created)
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return created, nil
}

func (r *orderRepositoryInMemory) List(ctx context.Context, page domain.Page) ([]domain.Order, error) {
	if err := domain.Validate(page.Validate()); err != nil {
		return nil, err
	}

	var result []domain.Order
	err := r.db.read(ctx, func() error {
		result = pageOf(r.db.orders, page)
		return nil
	})
	return result, err
}

func (r *orderRepositoryInMemory) Get(ctx context.Context, id int64) (domain.Order, bool, error) {
	var (
		found domain.Order
		ok    bool
	)
	err := r.db.read(ctx, func() error {
		if idx := r.db.orderIndex(id); idx >= 0 {
			found, ok = r.db.orders[idx], true
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, false, err
	}
	return found, ok, nil
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
