package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

type customerRepository struct {
	store *Store
}

// NewCustomerRepository создаёт SQLite-реализацию CustomerRepository.
func NewCustomerRepository(store *Store) domain.CustomerRepository {
	return &customerRepository{store: store}
}

func (r *customerRepository) Create(ctx context.Context, in domain.CustomerCreate) (domain.Customer, error) {
	row := customerRow{Name: in.Name, Email: in.Email}
	err := r.store.withTx(ctx, func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(&row).Error
	})
	if err != nil {
		return domain.Customer{}, fmt.Errorf("insert customer: %w", err)
	}
	return row.toDomain(), nil
}

func (r *customerRepository) List(ctx context.Context, page domain.Page) ([]domain.Customer, error) {
	if err := domain.Validate(page.Validate()); err != nil {
		return nil, err
	}

	var rows []customerRow
	err := r.store.withTx(ctx, func(tx *gorm.DB) error {
		return tx.Preload("Orders", orderedByID).
			Order("id").
			Offset(page.Skip).
			Limit(page.Limit).
			Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	customers := make([]domain.Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, row.toDomain())
	}
	return customers, nil
}

func (r *customerRepository) Get(ctx context.Context, id int64) (domain.Customer, bool, error) {
	var row customerRow
	err := r.store.withTx(ctx, func(tx *gorm.DB) error {
		return tx.Preload("Orders", orderedByID).First(&row, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Customer{}, false, nil
	}
	if err != nil {
		return domain.Customer{}, false, fmt.Errorf("select customer: %w", err)
	}
	return row.toDomain(), true, nil
}

func orderedByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

var _ domain.CustomerRepository = (*customerRepository)(nil)
