package domain

import "strings"

// Order описывает заказ клиента. Позиции заказа в модели не представлены,
// связь с Product отсутствует.
type Order struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	CustomerID  int64  `json:"customer_id"`
}

// OrderCreate содержит входные данные для создания заказа.
type OrderCreate struct {
	Description string `json:"description"`
	CustomerID  int64  `json:"customer_id"`
}

// Validate проверяет поля заказа. Существование клиента проверяет хранилище.
func (o *OrderCreate) Validate() []error {
	var errs []error

	if strings.TrimSpace(o.Description) == "" {
		errs = append(errs, ErrOrderDescriptionRequired)
	}
	if o.CustomerID <= 0 {
		errs = append(errs, ErrCustomerIDRequired)
	}

	return errs
}
