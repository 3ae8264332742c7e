package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

type deliveryRepository struct {
	store *Store
}

// NewDeliveryRepository создаёт SQLite-реализацию DeliveryRepository.
func NewDeliveryRepository(store *Store) domain.DeliveryRepository {
	return &deliveryRepository{store: store}
}

func (r *deliveryRepository) Create(ctx context.Context, in domain.DeliveryCreate) (domain.Delivery, error) {
	row := deliveryRow{
		Address:      in.Address,
		Status:       in.StatusOrDefault(),
		DeliveryDate: in.DeliveryDate.UTC(),
		OrderID:      in.OrderID,
	}
	err := r.store.withTx(ctx, func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(&row).Error
	})
	if err != nil {
		return domain.Delivery{}, fmt.Errorf("insert delivery: %w", err)
	}
	return row.toDomain(), nil
}

func (r *deliveryRepository) List(ctx context.Context, page domain.Page) ([]domain.Delivery, error) {
	if err := domain.Validate(page.Validate()); err != nil {
		return nil, err
	}

	var rows []deliveryRow
	err := r.store.withSession(ctx, func(db *gorm.DB) error {
		return db.Order("id").Offset(page.Skip).Limit(page.Limit).Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}

	deliveries := make([]domain.Delivery, 0, len(rows))
	for _, row := range rows {
		deliveries = append(deliveries, row.toDomain())
	}
	return deliveries, nil
}

func (r *deliveryRepository) Get(ctx context.Context, id int64) (domain.Delivery, bool, error) {
	var row deliveryRow
	err := r.store.withSession(ctx, func(db *gorm.DB) error {
		return db.First(&row, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Delivery{}, false, nil
	}
	if err != nil {
		return domain.Delivery{}, false, fmt.Errorf("select delivery: %w", err)
	}
	return row.toDomain(), true, nil
}

var _ domain.DeliveryRepository = (*deliveryRepository)(nil)
