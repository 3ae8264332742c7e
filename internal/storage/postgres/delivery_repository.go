package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

const deliveryColumns = `id, address, status, delivery_date, order_id`

type deliveryRepository struct {
	store *Store
}

// NewDeliveryRepository создаёт PostgreSQL-реализацию DeliveryRepository.
func NewDeliveryRepository(store *Store) domain.DeliveryRepository {
	return &deliveryRepository{store: store}
}

func (r *deliveryRepository) Create(ctx context.Context, in domain.DeliveryCreate) (domain.Delivery, error) {
	var delivery domain.Delivery
	err := r.store.withTx(ctx, nil, func(ctx context.Context, q querier) error {
		var err error
		delivery, err = scanDelivery(q.QueryRowContext(ctx, `
			INSERT INTO deliveries (address, status, delivery_date, order_id)
			VALUES ($1, $2, $3, $4)
			RETURNING `+deliveryColumns,
			in.Address, in.StatusOrDefault(), in.DeliveryDate.UTC(), in.OrderID,
		))
		return err
	})
	if err != nil {
		return domain.Delivery{}, fmt.Errorf("insert delivery: %w", classifyError(err))
	}
	return delivery, nil
}

func (r *deliveryRepository) List(ctx context.Context, page domain.Page) ([]domain.Delivery, error) {
	if err := domain.Validate(page.Validate()); err != nil {
		return nil, err
	}

	deliveries := make([]domain.Delivery, 0)
	err := r.store.withConn(ctx, func(ctx context.Context, q querier) error {
		rows, err := q.QueryContext(ctx, `
			SELECT `+deliveryColumns+`
			FROM deliveries
			ORDER BY id
			OFFSET $1 LIMIT $2
		`, page.Skip, page.Limit)
		if err != nil {
			return fmt.Errorf("list deliveries: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			delivery, err := scanDelivery(rows)
			if err != nil {
				return fmt.Errorf("scan delivery row: %w", err)
			}
			deliveries = append(deliveries, delivery)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate delivery rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, classifyError(err)
	}
	return deliveries, nil
}

func (r *deliveryRepository) Get(ctx context.Context, id int64) (domain.Delivery, bool, error) {
	var delivery domain.Delivery
	err := r.store.withConn(ctx, func(ctx context.Context, q querier) error {
		var err error
		delivery, err = scanDelivery(q.QueryRowContext(ctx, `
			SELECT `+deliveryColumns+`
			FROM deliveries
			WHERE id = $1
		`, id))
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Delivery{}, false, nil
	}
	if err != nil {
		return domain.Delivery{}, false, fmt.Errorf("select delivery: %w", classifyError(err))
	}
	return delivery, true, nil
}

func scanDelivery(row rowScanner) (domain.Delivery, error) {
	var d domain.Delivery
	if err := row.Scan(&d.ID, &d.Address, &d.Status, &d.DeliveryDate, &d.OrderID); err != nil {
		return domain.Delivery{}, err
	}
	d.DeliveryDate = d.DeliveryDate.UTC()
	return d, nil
}

var _ domain.DeliveryRepository = (*deliveryRepository)(nil)
