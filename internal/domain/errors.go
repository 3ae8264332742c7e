package domain

import (
	"errors"
	"strings"
)

var (
	// ErrValidation: входные данные не соответствуют контракту схемы.
	ErrValidation = errors.New("validation failed")
	// ErrForeignKeyViolation: ссылка на несуществующую родительскую запись.
	ErrForeignKeyViolation = errors.New("foreign key violation")
	// ErrUniqueViolation: нарушено правило уникальности (например, email клиента).
	ErrUniqueViolation = errors.New("unique constraint violation")
	// ErrStoreUnavailable: хранилище не смогло выполнить операцию (соединение, таймаут).
	ErrStoreUnavailable = errors.New("store unavailable")
)

var (
	// Ошибка пустого имени клиента.
	ErrCustomerNameRequired = errors.New("name is required")
	// Ошибка пустого email.
	ErrCustomerEmailRequired = errors.New("email is required")
	// Ошибка некорректного email.
	ErrCustomerEmailInvalid = errors.New("email is invalid")
	// Ошибка пустого описания заказа.
	ErrOrderDescriptionRequired = errors.New("description is required")
	// Ошибка отсутствующего идентификатора клиента.
	ErrCustomerIDRequired = errors.New("customer_id must be greater than zero")
	// Ошибка пустого названия товара.
	ErrProductNameRequired = errors.New("name is required")
	// Ошибка пустой категории товара.
	ErrProductCategoryRequired = errors.New("category is required")
	// Ошибка отсутствующей цены.
	ErrProductPriceRequired = errors.New("price is required")
	// Ошибка отсутствующего остатка.
	ErrProductStockRequired = errors.New("stock_quantity is required")
	// Ошибка отрицательной цены.
	ErrProductPriceNegative = errors.New("price must be non-negative")
	// Ошибка отрицательного остатка.
	ErrProductStockNegative = errors.New("stock_quantity must be non-negative")
	// Ошибка отсутствующего идентификатора заказа в платежах/доставках.
	ErrOrderIDRequired = errors.New("order_id must be greater than zero")
	// Ошибка отсутствующей суммы платежа.
	ErrPaymentAmountRequired = errors.New("amount is required")
	// Ошибка отрицательной суммы платежа.
	ErrPaymentAmountNegative = errors.New("amount must be non-negative")
	// Ошибка пустого способа оплаты.
	ErrPaymentMethodRequired = errors.New("payment_method is required")
	// Ошибка неизвестного статуса платежа.
	ErrPaymentStatusInvalid = errors.New("status must be one of pending, paid, cancelled")
	// Ошибка пустого адреса доставки.
	ErrDeliveryAddressRequired = errors.New("address is required")
	// Ошибка отсутствующей даты доставки.
	ErrDeliveryDateRequired = errors.New("delivery_date is required")
	// Ошибка отрицательного смещения страницы.
	ErrPageSkipNegative = errors.New("skip must be non-negative")
	// Ошибка некорректного размера страницы.
	ErrPageLimitInvalid = errors.New("limit must be between 1 and 100")
	// Ошибка некорректного идентификатора записи.
	ErrIDInvalid = errors.New("id must be a positive integer")
)

// ValidationError собирает все замечания к входным данным.
// errors.Is(err, ErrValidation) срабатывает для любого ValidationError,
// а отдельные замечания доступны через errors.Is по их sentinel-ошибкам.
type ValidationError struct {
	Problems []error
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, p.Error())
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Is позволяет сравнивать ValidationError с ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() []error {
	return e.Problems
}

// Validate превращает список замечаний в ValidationError или nil.
func Validate(problems []error) error {
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

// IsClientError сообщает, может ли вызывающая сторона исправить ошибку сама.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrForeignKeyViolation) ||
		errors.Is(err, ErrUniqueViolation)
}
