package domain

import "context"

// Во всех репозиториях отсутствие записи возвращается как (zero, false, nil), а не ошибка.
// Ошибки хранилища транслируются в ErrForeignKeyViolation, ErrUniqueViolation
// и ErrStoreUnavailable; всё остальное возвращается обёрнутым как есть.

// CustomerRepository описывает требования к хранилищу клиентов.
type CustomerRepository interface {
	// Create сохраняет клиента. ErrUniqueViolation, если email уже занят.
	Create(ctx context.Context, in CustomerCreate) (Customer, error)
	// List возвращает страницу клиентов в порядке id вместе с их заказами.
	List(ctx context.Context, page Page) ([]Customer, error)
	// Get возвращает клиента и его заказы.
	Get(ctx context.Context, id int64) (Customer, bool, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет заказ. ErrForeignKeyViolation, если клиента нет.
	Create(ctx context.Context, in OrderCreate) (Order, error)
	List(ctx context.Context, page Page) ([]Order, error)
	Get(ctx context.Context, id int64) (Order, bool, error)
}

// ProductRepository описывает требования к каталогу товаров.
type ProductRepository interface {
	Create(ctx context.Context, in ProductInput) (Product, error)
	List(ctx context.Context, page Page) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, bool, error)
	// Update перезаписывает все изменяемые поля товара.
	Update(ctx context.Context, id int64, in ProductInput) (Product, bool, error)
	// Delete удаляет товар; false, если его не было.
	Delete(ctx context.Context, id int64) (bool, error)
}

// PaymentRepository описывает требования к хранилищу платежей.
type PaymentRepository interface {
	// Create сохраняет платёж со статусом pending и текущим временем создания.
	Create(ctx context.Context, in PaymentCreate) (Payment, error)
	List(ctx context.Context, page Page) ([]Payment, error)
	Get(ctx context.Context, id int64) (Payment, bool, error)
	// Update меняет только статус платежа.
	Update(ctx context.Context, id int64, in PaymentUpdate) (Payment, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// DeliveryRepository описывает требования к хранилищу доставок.
type DeliveryRepository interface {
	Create(ctx context.Context, in DeliveryCreate) (Delivery, error)
	List(ctx context.Context, page Page) ([]Delivery, error)
	Get(ctx context.Context, id int64) (Delivery, bool, error)
}

// ReportRepository строит агрегатные отчёты поверх хранилища.
type ReportRepository interface {
	// OrdersPerCustomer возвращает число заказов для каждого клиента,
	// у которого есть хотя бы один заказ. Пагинация не применяется.
	OrdersPerCustomer(ctx context.Context) ([]CustomerOrderCount, error)
}

// Repositories объединяет репозитории одного хранилища.
type Repositories struct {
	Customers  CustomerRepository
	Orders     OrderRepository
	Products   ProductRepository
	Payments   PaymentRepository
	Deliveries DeliveryRepository
	Reports    ReportRepository
}
