package memory

import (
	"context"
	"fmt"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

type customerRepositoryInMemory struct {
	db *Database
}

// NewCustomerRepository возвращает in-memory репозиторий клиентов.
func NewCustomerRepository(db *Database) domain.CustomerRepository {
	return &customerRepositoryInMemory{db: db}
}

// Create сохраняет клиента, если email ещё не занят.
func (r *customerRepositoryInMemory) Create(ctx context.Context, in domain.CustomerCreate) (domain.Customer, error) {
	var created domain.Customer
	err := r.db.write(ctx, func() error {
		for _, c := range r.db.customers {
			if c.Email == in.Email {
				return fmt.Errorf("customer email %q: %w", in.Email, domain.ErrUniqueViolation)
			}
		}
		r.db.customerSeq++
		created = domain.Customer{ID: r.db.customerSeq, Name: in.Name, Email: in.Email}
		r.db.customers = append(r.db.customers, created)
		created.Orders = []domain.Order{}
		return nil
	})
	if err != nil {
		return domain.Customer{}, err
	}
	return created, nil
}

func (r *customerRepositoryInMemory) List(ctx context.Context, page domain.Page) ([]domain.Customer, error) {
	if err := domain.Validate(page.Validate()); err != nil {
		return nil, err
	}

	var result []domain.Customer
	err := r.db.read(ctx, func() error {
		result = pageOf(r.db.customers, page)
		for i := range result {
			result[i] = r.db.withOrders(result[i])
		}
		return nil
	})
	return result, err
}

func (r *customerRepositoryInMemory) Get(ctx context.Context, id int64) (domain.Customer, bool, error) {
	var (
		found domain.Customer
		ok    bool
	)
	err := r.db.read(ctx, func() error {
		if idx := r.db.customerIndex(id); idx >= 0 {
			found, ok = r.db.withOrders(r.db.customers[idx]), true
		}
		return nil
	})
	if err != nil {
		return domain.Customer{}, false, err
	}
	return found, ok, nil
}

var _ domain.CustomerRepository = (*customerRepositoryInMemory)(nil)
