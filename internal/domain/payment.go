package domain

import (
	"strings"
	"time"
)

// PaymentStatus описывает состояние платежа.
type PaymentStatus string

const (
	// PaymentStatusPending: платёж создан, но не подтверждён.
	PaymentStatusPending PaymentStatus = "pending"
	// PaymentStatusPaid: платёж подтверждён.
	PaymentStatusPaid PaymentStatus = "paid"
	// PaymentStatusCancelled: платёж отменён.
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// Valid проверяет, что статус относится к поддерживаемым значениям.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusCancelled:
		return true
	default:
		return false
	}
}

// Payment описывает платёж, связанный с заказом.
type Payment struct {
	ID            int64         `json:"id"`
	OrderID       int64         `json:"order_id"`
	Amount        float64       `json:"amount"`
	Status        PaymentStatus `json:"status"`
	PaymentMethod string        `json:"payment_method"`
	CreatedAt     time.Time     `json:"created_at"`
}

// PaymentCreate содержит входные данные платежа. Status и CreatedAt назначает хранилище.
type PaymentCreate struct {
	OrderID       int64   `json:"order_id"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
}

// Validate проверяет корректность полей платежа.
func (p *PaymentCreate) Validate() []error {
	var errs []error

	if p.OrderID <= 0 {
		errs = append(errs, ErrOrderIDRequired)
	}
	if !(p.Amount >= 0) {
		errs = append(errs, ErrPaymentAmountNegative)
	}
	if strings.TrimSpace(p.PaymentMethod) == "" {
		errs = append(errs, ErrPaymentMethodRequired)
	}

	return errs
}

// PaymentUpdate содержит единственное изменяемое поле платежа.
type PaymentUpdate struct {
	Status PaymentStatus `json:"status"`
}

// Validate проверяет новый статус платежа.
func (p *PaymentUpdate) Validate() []error {
	if !p.Status.Valid() {
		return []error{ErrPaymentStatusInvalid}
	}
	return nil
}
