package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

type paymentRepository struct {
	store *Store
}

// NewPaymentRepository создаёт SQLite-реализацию PaymentRepository.
func NewPaymentRepository(store *Store) domain.PaymentRepository {
	return &paymentRepository{store: store}
}

func (r *paymentRepository) Create(ctx context.Context, in domain.PaymentCreate) (domain.Payment, error) {
	row := paymentRow{
		OrderID:       in.OrderID,
		Amount:        in.Amount,
		Status:        string(domain.PaymentStatusPending),
		PaymentMethod: in.PaymentMethod,
	}
	err := r.store.withTx(ctx, func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(&row).Error
	})
	if err != nil {
		return domain.Payment{}, fmt.Errorf("insert payment: %w", err)
	}
	return row.toDomain(), nil
}

func (r *paymentRepository) List(ctx context.Context, page domain.Page) ([]domain.Payment, error) {
	if err := domain.Validate(page.Validate()); err != nil {
		return nil, err
	}

	var rows []paymentRow
	err := r.store.withSession(ctx, func(db *gorm.DB) error {
		return db.Order("id").Offset(page.Skip).Limit(page.Limit).Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	payments := make([]domain.Payment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, row.toDomain())
	}
	return payments, nil
}

func (r *paymentRepository) Get(ctx context.Context, id int64) (domain.Payment, bool, error) {
	var row paymentRow
	err := r.store.withSession(ctx, func(db *gorm.DB) error {
		return db.First(&row, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Payment{}, false, nil
	}
	if err != nil {
		return domain.Payment{}, false, fmt.Errorf("select payment: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *paymentRepository) Update(ctx context.Context, id int64, in domain.PaymentUpdate) (domain.Payment, bool, error) {
	var row paymentRow
	err := r.store.withTx(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&paymentRow{}).Where("id = ?", id).Update("status", string(in.Status))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&row, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Payment{}, false, nil
	}
	if err != nil {
		return domain.Payment{}, false, fmt.Errorf("update payment: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *paymentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return deleteByID(ctx, r.store, &paymentRow{}, id)
}

var _ domain.PaymentRepository = (*paymentRepository)(nil)
