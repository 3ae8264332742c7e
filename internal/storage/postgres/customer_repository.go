package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

type customerRepository struct {
	store *Store
}

// NewCustomerRepository создаёт PostgreSQL-реализацию CustomerRepository.
func NewCustomerRepository(store *Store) domain.CustomerRepository {
	return &customerRepository{store: store}
}

func (r *customerRepository) Create(ctx context.Context, in domain.CustomerCreate) (domain.Customer, error) {
	customer := domain.Customer{Orders: []domain.Order{}}
	err := r.store.withTx(ctx, nil, func(ctx context.Context, q querier) error {
		return q.QueryRowContext(ctx, `
			INSERT INTO customers (name, email)
			VALUES ($1, $2)
			RETURNING id, name, email
		`, in.Name, in.Email).Scan(&customer.ID, &customer.Name, &customer.Email)
	})
	if err != nil {
		return domain.Customer{}, fmt.Errorf("insert customer: %w", classifyError(err))
	}
	return customer, nil
}

func (r *customerRepository) List(ctx context.Context, page domain.Page) ([]domain.Customer, error) {
	if err := domain.Validate(page.Validate()); err != nil {
		return nil, err
	}

	customers := make([]domain.Customer, 0)
	err := r.store.withTx(ctx, readOnlySnapshot, func(ctx context.Context, q querier) error {
		rows, err := q.QueryContext(ctx, `
			SELECT id, name, email
			FROM customers
			ORDER BY id
			OFFSET $1 LIMIT $2
		`, page.Skip, page.Limit)
		if err != nil {
			return fmt.Errorf("list customers: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			customer := domain.Customer{Orders: []domain.Order{}}
			if err := rows.Scan(&customer.ID, &customer.Name, &customer.Email); err != nil {
				return fmt.Errorf("scan customer row: %w", err)
			}
			customers = append(customers, customer)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate customer rows: %w", err)
		}
		if len(customers) == 0 {
			return nil
		}

		return attachOrders(ctx, q, customers)
	})
	if err != nil {
		return nil, classifyError(err)
	}
	return customers, nil
}

func (r *customerRepository) Get(ctx context.Context, id int64) (domain.Customer, bool, error) {
	var (
		customer domain.Customer
		found    bool
	)
	err := r.store.withTx(ctx, readOnlySnapshot, func(ctx context.Context, q querier) error {
		err := q.QueryRowContext(ctx, `
			SELECT id, name, email
			FROM customers
			WHERE id = $1
		`, id).Scan(&customer.ID, &customer.Name, &customer.Email)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("select customer: %w", err)
		}
		found = true

		orders, err := loadOrdersByCustomer(ctx, q, id)
		if err != nil {
			return err
		}
		customer.Orders = orders
		return nil
	})
	if err != nil {
		return domain.Customer{}, false, classifyError(err)
	}
	if !found {
		return domain.Customer{}, false, nil
	}
	return customer, true, nil
}

// attachOrders загружает заказы страницы клиентов одним запросом.
func attachOrders(ctx context.Context, q querier, customers []domain.Customer) error {
	byID := make(map[int64]int, len(customers))
	for i := range customers {
		byID[customers[i].ID] = i
	}

	rows, err := q.QueryContext(ctx, `
		SELECT id, description, customer_id
		FROM orders
		WHERE customer_id BETWEEN $1 AND $2
		ORDER BY id
	`, customers[0].ID, customers[len(customers)-1].ID)
	if err != nil {
		return fmt.Errorf("load customer orders: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.Description, &order.CustomerID); err != nil {
			return fmt.Errorf("scan customer order: %w", err)
		}
		if i, ok := byID[order.CustomerID]; ok {
			customers[i].Orders = append(customers[i].Orders, order)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate customer orders: %w", err)
	}
	return nil
}

func loadOrdersByCustomer(ctx context.Context, q querier, customerID int64) ([]domain.Order, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, description, customer_id
		FROM orders
		WHERE customer_id = $1
		ORDER BY id
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("load customer orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.Description, &order.CustomerID); err != nil {
			return nil, fmt.Errorf("scan customer order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer orders: %w", err)
	}
	return orders, nil
}

var _ domain.CustomerRepository = (*customerRepository)(nil)
