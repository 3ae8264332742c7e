package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

// Database хранит в памяти все таблицы для локальной разработки и тестов.
// Один мьютекс на все таблицы: внешние ключи проверяются в той же критической
// секции, что и вставка.
type Database struct {
	mu sync.RWMutex

	customers  []domain.Customer
	orders     []domain.Order
	products   []domain.Product
	payments   []domain.Payment
	deliveries []domain.Delivery

	customerSeq int64
	orderSeq    int64
	productSeq  int64
	paymentSeq  int64
	deliverySeq int64

	now func() time.Time
}

// NewDatabase создаёт пустое in-memory хранилище.
func NewDatabase() *Database {
	return &Database{now: func() time.Time { return time.Now().UTC() }}
}

// NewRepositories возвращает все репозитории поверх одного Database.
func NewRepositories(db *Database) domain.Repositories {
	return domain.Repositories{
		Customers:  NewCustomerRepository(db),
		Orders:     NewOrderRepository(db),
		Products:   NewProductRepository(db),
		Payments:   NewPaymentRepository(db),
		Deliveries: NewDeliveryRepository(db),
		Reports:    NewReportRepository(db),
	}
}

// Ping всегда успешен, пока контекст не отменён.
func (db *Database) Ping(ctx context.Context) error {
	return ctx.Err()
}

// read выполняет fn под read-lock; lock освобождается на любом пути выхода.
func (db *Database) read(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.RLock()
	defer db.mu.RUnlock()
	return fn()
}

// write выполняет fn под эксклюзивной блокировкой.
func (db *Database) write(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	return fn()
}

func (db *Database) customerIndex(id int64) int {
	for i := range db.customers {
		if db.customers[i].ID == id {
			return i
		}
	}
	return -1
}

func (db *Database) orderIndex(id int64) int {
	for i := range db.orders {
		if db.orders[i].ID == id {
			return i
		}
	}
	return -1
}

func (db *Database) productIndex(id int64) int {
	for i := range db.products {
		if db.products[i].ID == id {
			return i
		}
	}
	return -1
}

func (db *Database) paymentIndex(id int64) int {
	for i := range db.payments {
		if db.payments[i].ID == id {
			return i
		}
	}
	return -1
}

func (db *Database) deliveryIndex(id int64) int {
	for i := range db.deliveries {
		if db.deliveries[i].ID == id {
			return i
		}
	}
	return -1
}

// customerOrders возвращает копию заказов клиента в порядке id.
func (db *Database) customerOrders(customerID int64) []domain.Order {
	result := make([]domain.Order, 0)
	for _, o := range db.orders {
		if o.CustomerID == customerID {
			result = append(result, o)
		}
	}
	return result
}

func (db *Database) withOrders(c domain.Customer) domain.Customer {
	c.Orders = db.customerOrders(c.ID)
	return c
}

// pageOf возвращает копию среза rows в границах page.
func pageOf[T any](rows []T, page domain.Page) []T {
	from, to := page.Bounds(len(rows))
	result := make([]T, to-from)
	copy(result, rows[from:to])
	return result
}
