package domain

import "strings"

// Customer описывает клиента вместе с его заказами (read-модель).
type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	// Orders заполняется при чтении, упорядочен по id заказа.
	Orders []Order `json:"orders"`
}

// CustomerCreate содержит входные данные для создания клиента.
type CustomerCreate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate проверяет поля клиента и возвращает список замечаний.
func (c *CustomerCreate) Validate() []error {
	var errs []error

	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, ErrCustomerNameRequired)
	}
	email := strings.TrimSpace(c.Email)
	switch {
	case email == "":
		errs = append(errs, ErrCustomerEmailRequired)
	case !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@"):
		errs = append(errs, ErrCustomerEmailInvalid)
	}

	return errs
}

// CustomerOrderCount описывает строку отчёта «заказы по клиентам».
type CustomerOrderCount struct {
	CustomerID   int64  `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	TotalOrders  int64  `json:"total_orders"`
}
