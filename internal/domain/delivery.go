package domain

import (
	"strings"
	"time"
)

// DefaultDeliveryStatus назначается, если статус доставки не передан.
const DefaultDeliveryStatus = "pending"

// Delivery описывает доставку по заказу. Один заказ может иметь несколько доставок.
type Delivery struct {
	ID           int64     `json:"id"`
	Address      string    `json:"address"`
	Status       string    `json:"status"`
	DeliveryDate time.Time `json:"delivery_date"`
	OrderID      int64     `json:"order_id"`
}

// DeliveryCreate содержит входные данные доставки.
type DeliveryCreate struct {
	Address      string    `json:"address"`
	Status       string    `json:"status"`
	DeliveryDate time.Time `json:"delivery_date"`
	OrderID      int64     `json:"order_id"`
}

// Validate проверяет поля доставки.
func (d *DeliveryCreate) Validate() []error {
	var errs []error

	if strings.TrimSpace(d.Address) == "" {
		errs = append(errs, ErrDeliveryAddressRequired)
	}
	if d.DeliveryDate.IsZero() {
		errs = append(errs, ErrDeliveryDateRequired)
	}
	if d.OrderID <= 0 {
		errs = append(errs, ErrOrderIDRequired)
	}

	return errs
}

// StatusOrDefault возвращает статус доставки с учётом значения по умолчанию.
func (d *DeliveryCreate) StatusOrDefault() string {
	if s := strings.TrimSpace(d.Status); s != "" {
		return s
	}
	return DefaultDeliveryStatus
}
