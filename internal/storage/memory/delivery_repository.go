package memory

import (
	"context"
	"fmt"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

type deliveryRepositoryInMemory struct {
	db *Database
}

// NewDeliveryRepository возвращает in-memory репозиторий доставок.
func NewDeliveryRepository(db *Database) domain.DeliveryRepository {
	return &deliveryRepositoryInMemory{db: db}
}

func (r *deliveryRepositoryInMemory) Create(ctx context.Context, in domain.DeliveryCreate) (domain.Delivery, error) {
	var created domain.Delivery
	err := r.db.write(ctx, func() error {
		if r.db.orderIndex(in.OrderID) < 0 {
			return fmt.Errorf("delivery order %d: %w", in.OrderID, domain.ErrForeignKeyViolation)
		}
		r.db.deliverySeq++
		created = domain.Delivery{
			ID:           r.db.deliverySeq,
			Address:      in.Address,
			Status:       in.StatusOrDefault(),
			DeliveryDate: in.DeliveryDate.UTC(),
			OrderID:      in.OrderID,
		}
		r.db.deliveries = append(r.db.deliveries, created)
		return nil
	})
	if err != nil {
		return domain.Delivery{}, err
	}
	return created, nil
}

func (r *deliveryRepositoryInMemory) List(ctx context.Context, page domain.Page) ([]domain.Delivery, error) {
	if err := domain.Validate(page.Validate()); err != nil {
		return nil, err
	}

	var result []domain.Delivery
	err := r.db.read(ctx, func() error {
		result = pageOf(r.db.deliveries, page)
		return nil
	})
	return result, err
}

func (r *deliveryRepositoryInMemory) Get(ctx context.Context, id int64) (domain.Delivery, bool, error) {
	var (
		found domain.Delivery
		ok    bool
	)
	err := r.db.read(ctx, func() error {
		if idx := r.db.deliveryIndex(id); idx >= 0 {
			found, ok = r.db.deliveries[idx], true
		}
		return nil
	})
	if err != nil {
		return domain.Delivery{}, false, err
	}
	return found, ok, nil
}

var _ domain.DeliveryRepository = (*deliveryRepositoryInMemory)(nil)
