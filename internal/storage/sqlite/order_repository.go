package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

type orderRepository struct {
	store *Store
}

// NewOrderRepository создаёт SQLite-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{store: store}
}

func (r *orderRepository) Create(ctx context.Context, in domain.OrderCreate) (domain.Order, error) {
	row := orderRow{Description: in.Description, CustomerID: in.CustomerID}
	err := r.store.withTx(ctx, func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(&row).Error
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}
	return row.toDomain(), nil
}

func (r *orderRepository) List(ctx context.Context, page domain.Page) ([]domain.Order, error) {
	if err := domain.Validate(page.Validate()); err != nil {
		return nil, err
	}

	var rows []orderRow
	err := r.store.withSession(ctx, func(db *gorm.DB) error {
		return db.Order("id").Offset(page.Skip).Limit(page.Limit).Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, row.toDomain())
	}
	return orders, nil
}

func (r *orderRepository) Get(ctx context.Context, id int64) (domain.Order, bool, error) {
	var row orderRow
	err := r.store.withSession(ctx, func(db *gorm.DB) error {
		return db.First(&row, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Order{}, false, nil
	}
	if err != nil {
		return domain.Order{}, false, fmt.Errorf("select order: %w", err)
	}
	return row.toDomain(), true, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
