package memory

import (
	"context"
	"fmt"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

type paymentRepositoryInMemory struct {
	db *Database
}

// NewPaymentRepository возвращает in-memory репозиторий платежей.
func NewPaymentRepository(db *Database) domain.PaymentRepository {
	return &paymentRepositoryInMemory{db: db}
}

// Create сохраняет платёж со статусом pending, если заказ существует.
func (r *paymentRepositoryInMemory) Create(ctx context.Context, in domain.PaymentCreate) (domain.Payment, error) {
	var created domain.Payment
	err := r.db.write(ctx, func() error {
		if r.db.orderIndex(in.OrderID) < 0 {
			return fmt.Errorf("payment order %d: %w", in.OrderID, domain.ErrForeignKeyViolation)
		}
		r.db.paymentSeq++
		created = domain.Payment{
			ID:            r.db.paymentSeq,
			OrderID:       in.OrderID,
			Amount:        in.Amount,
			Status:        domain.PaymentStatusPending,
			PaymentMethod: in.PaymentMethod,
			CreatedAt:     r.db.now(),
		}
		r.db.payments = append(r.db.payments, created)
		return nil
	})
	if err != nil {
		return domain.Payment{}, err
	}
	return created, nil
}

func (r *paymentRepositoryInMemory) List(ctx context.Context, page domain.Page) ([]domain.Payment, error) {
	if err := domain.Validate(page.Validate()); err != nil {
		return nil, err
	}

	var result []domain.Payment
	err := r.db.read(ctx, func() error {
		result = pageOf(r.db.payments, page)
		return nil
	})
	return result, err
}

func (r *paymentRepositoryInMemory) Get(ctx context.Context, id int64) (domain.Payment, bool, error) {
	var (
		found domain.Payment
		ok    bool
	)
	err := r.db.read(ctx, func() error {
		if idx := r.db.paymentIndex(id); idx >= 0 {
			found, ok = r.db.payments[idx], true
		}
		return nil
	})
	if err != nil {
		return domain.Payment{}, false, err
	}
	return found, ok, nil
}

// Update меняет только статус платежа.
func (r *paymentRepositoryInMemory) Update(ctx context.Context, id int64, in domain.PaymentUpdate) (domain.Payment, bool, error) {
	var (
		updated domain.Payment
		ok      bool
	)
	err := r.db.write(ctx, func() error {
		idx := r.db.paymentIndex(id)
		if idx < 0 {
			return nil
		}
		r.db.payments[idx].Status = in.Status
		updated, ok = r.db.payments[idx], true
		return nil
	})
	if err != nil {
		return domain.Payment{}, false, err
	}
	return updated, ok, nil
}

func (r *paymentRepositoryInMemory) Delete(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.db.write(ctx, func() error {
		idx := r.db.paymentIndex(id)
		if idx < 0 {
			return nil
		}
		r.db.payments = append(r.db.payments[:idx], r.db.payments[idx+1:]...)
		ok = true
		return nil
	})
	return ok, err
}

var _ domain.PaymentRepository = (*paymentRepositoryInMemory)(nil)
