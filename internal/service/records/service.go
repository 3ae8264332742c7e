// Package records содержит прикладной слой над репозиториями: проверка входных данных
// до обращения к хранилищу и публикация событий после фиксации изменений.
package records

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
	"github.com/vladislavdragonenkov/easyorder/internal/metrics"
)

const publishTimeout = 5 * time.Second

// Service реализует операции над записями магазина.
type Service struct {
	repos        domain.Repositories
	publisher    domain.EventPublisher
	eventMetrics *metrics.EventMetrics
	logger       *log.Entry

	newID func() string
	now   func() time.Time
}

// NewService конструирует сервис. publisher и eventMetrics необязательны.
func NewService(
	repos domain.Repositories,
	publisher domain.EventPublisher,
	eventMetrics *metrics.EventMetrics,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "records-service")
	}
	return &Service{
		repos:        repos,
		publisher:    publisher,
		eventMetrics: eventMetrics,
		logger:       logger,
		newID:        uuid.NewString,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// CreateCustomer регистрирует клиента с уникальным email.
func (s *Service) CreateCustomer(ctx context.Context, in domain.CustomerCreate) (domain.Customer, error) {
	if err := s.validate("create_customer", in.Validate()); err != nil {
		return domain.Customer{}, err
	}
	customer, err := s.repos.Customers.Create(ctx, in)
	if err != nil {
		return domain.Customer{}, s.fail("create_customer", err)
	}
	s.publish(ctx, domain.EntityCustomer, customer.ID, domain.ChangeCreated, customer)
	return customer, nil
}

// ListCustomers возвращает страницу клиентов с их заказами.
func (s *Service) ListCustomers(ctx context.Context, page domain.Page) ([]domain.Customer, error) {
	if err := s.validate("list_customers", page.Validate()); err != nil {
		return nil, err
	}
	customers, err := s.repos.Customers.List(ctx, page)
	if err != nil {
		return nil, s.fail("list_customers", err)
	}
	return customers, nil
}

// GetCustomer возвращает клиента; false, если его нет.
func (s *Service) GetCustomer(ctx context.Context, id int64) (domain.Customer, bool, error) {
	if err := s.validateID("get_customer", id); err != nil {
		return domain.Customer{}, false, err
	}
	customer, ok, err := s.repos.Customers.Get(ctx, id)
	if err != nil {
		return domain.Customer{}, false, s.fail("get_customer", err)
	}
	return customer, ok, nil
}

// CreateOrder создаёт заказ существующего клиента.
func (s *Service) CreateOrder(ctx context.Context, in domain.OrderCreate) (domain.Order, error) {
	if err := s.validate("create_order", in.Validate()); err != nil {
		return domain.Order{}, err
	}
	order, err := s.repos.Orders.Create(ctx, in)
	if err != nil {
		return domain.Order{}, s.fail("create_order", err)
	}
	s.publish(ctx, domain.EntityOrder, order.ID, domain.ChangeCreated, order)
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context, page domain.Page) ([]domain.Order, error) {
	if err := s.validate("list_orders", page.Validate()); err != nil {
		return nil, err
	}
	orders, err := s.repos.Orders.List(ctx, page)
	if err != nil {
		return nil, s.fail("list_orders", err)
	}
	return orders, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (domain.Order, bool, error) {
	if err := s.validateID("get_order", id); err != nil {
		return domain.Order{}, false, err
	}
	order, ok, err := s.repos.Orders.Get(ctx, id)
	if err != nil {
		return domain.Order{}, false, s.fail("get_order", err)
	}
	return order, ok, nil
}

// CreateProduct добавляет товар в каталог.
func (s *Service) CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	if err := s.validate("create_product", in.Validate()); err != nil {
		return domain.Product{}, err
	}
	product, err := s.repos.Products.Create(ctx, in)
	if err != nil {
		return domain.Product{}, s.fail("create_product", err)
	}
	s.publish(ctx, domain.EntityProduct, product.ID, domain.ChangeCreated, product)
	return product, nil
}

func (s *Service) ListProducts(ctx context.Context, page domain.Page) ([]domain.Product, error) {
	if err := s.validate("list_products", page.Validate()); err != nil {
		return nil, err
	}
	products, err := s.repos.Products.List(ctx, page)
	if err != nil {
		return nil, s.fail("list_products", err)
	}
	return products, nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (domain.Product, bool, error) {
	if err := s.validateID("get_product", id); err != nil {
		return domain.Product{}, false, err
	}
	product, ok, err := s.repos.Products.Get(ctx, id)
	if err != nil {
		return domain.Product{}, false, s.fail("get_product", err)
	}
	return product, ok, nil
}

// UpdateProduct перезаписывает все изменяемые поля товара.
func (s *Service) UpdateProduct(ctx context.Context, id int64, in domain.ProductInput) (domain.Product, bool, error) {
	problems := append(idProblems(id), in.Validate()...)
	if err := s.validate("update_product", problems); err != nil {
		return domain.Product{}, false, err
	}
	product, ok, err := s.repos.Products.Update(ctx, id, in)
	if err != nil {
		return domain.Product{}, false, s.fail("update_product", err)
	}
	if ok {
		s.publish(ctx, domain.EntityProduct, product.ID, domain.ChangeUpdated, product)
	}
	return product, ok, nil
}

// DeleteProduct удаляет товар; false, если его не было.
func (s *Service) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	if err := s.validateID("delete_product", id); err != nil {
		return false, err
	}
	ok, err := s.repos.Products.Delete(ctx, id)
	if err != nil {
		return false, s.fail("delete_product", err)
	}
	if ok {
		s.publish(ctx, domain.EntityProduct, id, domain.ChangeDeleted, nil)
	}
	return ok, nil
}

// CreatePayment регистрирует платёж по существующему заказу со статусом pending.
func (s *Service) CreatePayment(ctx context.Context, in domain.PaymentCreate) (domain.Payment, error) {
	if err := s.validate("create_payment", in.Validate()); err != nil {
		return domain.Payment{}, err
	}
	payment, err := s.repos.Payments.Create(ctx, in)
	if err != nil {
		return domain.Payment{}, s.fail("create_payment", err)
	}
	s.publish(ctx, domain.EntityPayment, payment.ID, domain.ChangeCreated, payment)
	return payment, nil
}

func (s *Service) ListPayments(ctx context.Context, page domain.Page) ([]domain.Payment, error) {
	if err := s.validate("list_payments", page.Validate()); err != nil {
		return nil, err
	}
	payments, err := s.repos.Payments.List(ctx, page)
	if err != nil {
		return nil, s.fail("list_payments", err)
	}
	return payments, nil
}

func (s *Service) GetPayment(ctx context.Context, id int64) (domain.Payment, bool, error) {
	if err := s.validateID("get_payment", id); err != nil {
		return domain.Payment{}, false, err
	}
	payment, ok, err := s.repos.Payments.Get(ctx, id)
	if err != nil {
		return domain.Payment{}, false, s.fail("get_payment", err)
	}
	return payment, ok, nil
}

// UpdatePayment меняет статус платежа.
func (s *Service) UpdatePayment(ctx context.Context, id int64, in domain.PaymentUpdate) (domain.Payment, bool, error) {
	problems := append(idProblems(id), in.Validate()...)
	if err := s.validate("update_payment", problems); err != nil {
		return domain.Payment{}, false, err
	}
	payment, ok, err := s.repos.Payments.Update(ctx, id, in)
	if err != nil {
		return domain.Payment{}, false, s.fail("update_payment", err)
	}
	if ok {
		s.publish(ctx, domain.EntityPayment, payment.ID, domain.ChangeUpdated, payment)
	}
	return payment, ok, nil
}

func (s *Service) DeletePayment(ctx context.Context, id int64) (bool, error) {
	if err := s.validateID("delete_payment", id); err != nil {
		return false, err
	}
	ok, err := s.repos.Payments.Delete(ctx, id)
	if err != nil {
		return false, s.fail("delete_payment", err)
	}
	if ok {
		s.publish(ctx, domain.EntityPayment, id, domain.ChangeDeleted, nil)
	}
	return ok, nil
}

// CreateDelivery планирует доставку по существующему заказу.
func (s *Service) CreateDelivery(ctx context.Context, in domain.DeliveryCreate) (domain.Delivery, error) {
	if err := s.validate("create_delivery", in.Validate()); err != nil {
		return domain.Delivery{}, err
	}
	delivery, err := s.repos.Deliveries.Create(ctx, in)
	if err != nil {
		return domain.Delivery{}, s.fail("create_delivery", err)
	}
	s.publish(ctx, domain.EntityDelivery, delivery.ID, domain.ChangeCreated, delivery)
	return delivery, nil
}

func (s *Service) ListDeliveries(ctx context.Context, page domain.Page) ([]domain.Delivery, error) {
	if err := s.validate("list_deliveries", page.Validate()); err != nil {
		return nil, err
	}
	deliveries, err := s.repos.Deliveries.List(ctx, page)
	if err != nil {
		return nil, s.fail("list_deliveries", err)
	}
	return deliveries, nil
}

func (s *Service) GetDelivery(ctx context.Context, id int64) (domain.Delivery, bool, error) {
	if err := s.validateID("get_delivery", id); err != nil {
		return domain.Delivery{}, false, err
	}
	delivery, ok, err := s.repos.Deliveries.Get(ctx, id)
	if err != nil {
		return domain.Delivery{}, false, s.fail("get_delivery", err)
	}
	return delivery, ok, nil
}

// OrdersPerCustomer возвращает число заказов по каждому клиенту, у которого они есть.
func (s *Service) OrdersPerCustomer(ctx context.Context) ([]domain.CustomerOrderCount, error) {
	report, err := s.repos.Reports.OrdersPerCustomer(ctx)
	if err != nil {
		return nil, s.fail("orders_per_customer", err)
	}
	return report, nil
}
