package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

const paymentColumns = `id, order_id, amount, status, payment_method, created_at`

type paymentRepository struct {
	store *Store
}

// NewPaymentRepository создаёт PostgreSQL-реализацию PaymentRepository.
// Статус по умолчанию и created_at проставляет сама база.
func NewPaymentRepository(store *Store) domain.PaymentRepository {
	return &paymentRepository{store: store}
}

func (r *paymentRepository) Create(ctx context.Context, in domain.PaymentCreate) (domain.Payment, error) {
	var payment domain.Payment
	err := r.store.withTx(ctx, nil, func(ctx context.Context, q querier) error {
		var err error
		payment, err = scanPayment(q.QueryRowContext(ctx, `
			INSERT INTO payments (order_id, amount, payment_method)
			VALUES ($1, $2, $3)
			RETURNING `+paymentColumns,
			in.OrderID, in.Amount, in.PaymentMethod,
		))
		return err
	})
	if err != nil {
		return domain.Payment{}, fmt.Errorf("insert payment: %w", classifyError(err))
	}
	return payment, nil
}

func (r *paymentRepository) List(ctx context.Context, page domain.Page) ([]domain.Payment, error) {
	if err := domain.Validate(page.Validate()); err != nil {
		return nil, err
	}

	payments := make([]domain.Payment, 0)
	err := r.store.withConn(ctx, func(ctx context.Context, q querier) error {
		rows, err := q.QueryContext(ctx, `
			SELECT `+paymentColumns+`
			FROM payments
			ORDER BY id
			OFFSET $1 LIMIT $2
		`, page.Skip, page.Limit)
		if err != nil {
			return fmt.Errorf("list payments: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			payment, err := scanPayment(rows)
			if err != nil {
				return fmt.Errorf("scan payment row: %w", err)
			}
			payments = append(payments, payment)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate payment rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, classifyError(err)
	}
	return payments, nil
}

func (r *paymentRepository) Get(ctx context.Context, id int64) (domain.Payment, bool, error) {
	var payment domain.Payment
	err := r.store.withConn(ctx, func(ctx context.Context, q querier) error {
		var err error
		payment, err = scanPayment(q.QueryRowContext(ctx, `
			SELECT `+paymentColumns+`
			FROM payments
			WHERE id = $1
		`, id))
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Payment{}, false, nil
	}
	if err != nil {
		return domain.Payment{}, false, fmt.Errorf("select payment: %w", classifyError(err))
	}
	return payment, true, nil
}

func (r *paymentRepository) Update(ctx context.Context, id int64, in domain.PaymentUpdate) (domain.Payment, bool, error) {
	var payment domain.Payment
	err := r.store.withTx(ctx, nil, func(ctx context.Context, q querier) error {
		var err error
		payment, err = scanPayment(q.QueryRowContext(ctx, `
			UPDATE payments
			SET status = $1
			WHERE id = $2
			RETURNING `+paymentColumns,
			string(in.Status), id,
		))
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Payment{}, false, nil
	}
	if err != nil {
		return domain.Payment{}, false, fmt.Errorf("update payment: %w", classifyError(err))
	}
	return payment, true, nil
}

func (r *paymentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return deleteByID(ctx, r.store, "payments", id)
}

func scanPayment(row rowScanner) (domain.Payment, error) {
	var (
		p      domain.Payment
		status string
	)
	if err := row.Scan(&p.ID, &p.OrderID, &p.Amount, &status, &p.PaymentMethod, &p.CreatedAt); err != nil {
		return domain.Payment{}, err
	}
	p.Status = domain.PaymentStatus(status)
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}

var _ domain.PaymentRepository = (*paymentRepository)(nil)
