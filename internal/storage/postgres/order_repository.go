package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

type orderRepository struct {
	store *Store
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{store: store}
}

func (r *orderRepository) Create(ctx context.Context, in domain.OrderCreate) (domain.Order, error) {
	var order domain.Order
	err := r.store.withTx(ctx, nil, func(ctx context.Context, q querier) error {
		return q.QueryRowContext(ctx, `
			INSERT INTO orders (description, customer_id)
			VALUES ($1, $2)
			RETURNING id, description, customer_id
		`, in.Description, in.CustomerID).Scan(&order.ID, &order.Description, &order.CustomerID)
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", classifyError(err))
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context, page domain.Page) ([]domain.Order, error) {
	if err := domain.Validate(page.Validate()); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0)
	err := r.store.withConn(ctx, func(ctx context.Context, q querier) error {
		rows, err := q.QueryContext(ctx, `
			SELECT id, description, customer_id
			FROM orders
			ORDER BY id
			OFFSET $1 LIMIT $2
		`, page.Skip, page.Limit)
		if err != nil {
			return fmt.Errorf("list orders: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var order domain.Order
			if err := rows.Scan(&order.ID, &order.Description, &order.CustomerID); err != nil {
				return fmt.Errorf("scan order row: %w", err)
			}
			orders = append(orders, order)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate order rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, classifyError(err)
	}
	return orders, nil
}

func (r *orderRepository) Get(ctx context.Context, id int64) (domain.Order, bool, error) {
	var order domain.Order
	err := r.store.withConn(ctx, func(ctx context.Context, q querier) error {
		return q.QueryRowContext(ctx, `
			SELECT id, description, customer_id
			FROM orders
			WHERE id = $1
		`, id).Scan(&order.ID, &order.Description, &order.CustomerID)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, false, nil
	}
	if err != nil {
		return domain.Order{}, false, fmt.Errorf("select order: %w", classifyError(err))
	}
	return order, true, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
