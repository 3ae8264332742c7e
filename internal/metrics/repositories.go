package metrics

import (
	"context"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

// Имена операций в метке operation.
const (
	OpCreate = "create"
	OpList   = "list"
	OpGet    = "get"
	OpUpdate = "update"
	OpDelete = "delete"
	OpReport = "orders_per_customer"
)

// InstrumentRepositories оборачивает каждый репозиторий сбором метрик.
// Поведение и ошибки репозиториев не меняются.
func InstrumentRepositories(repos domain.Repositories, m *StoreMetrics) domain.Repositories {
	if m == nil {
		return repos
	}
	return domain.Repositories{
		Customers:  &customerRepository{next: repos.Customers, m: m},
		Orders:     &orderRepository{next: repos.Orders, m: m},
		Products:   &productRepository{next: repos.Products, m: m},
		Payments:   &paymentRepository{next: repos.Payments, m: m},
		Deliveries: &deliveryRepository{next: repos.Deliveries, m: m},
		Reports:    &reportRepository{next: repos.Reports, m: m},
	}
}

type customerRepository struct {
	next domain.CustomerRepository
	m    *StoreMetrics
}

func (r *customerRepository) Create(ctx context.Context, in domain.CustomerCreate) (domain.Customer, error) {
	done := r.m.start(domain.EntityCustomer, OpCreate)
	c, err := r.next.Create(ctx, in)
	done(true, err)
	return c, err
}

func (r *customerRepository) List(ctx context.Context, page domain.Page) ([]domain.Customer, error) {
	done := r.m.start(domain.EntityCustomer, OpList)
	list, err := r.next.List(ctx, page)
	done(true, err)
	return list, err
}

func (r *customerRepository) Get(ctx context.Context, id int64) (domain.Customer, bool, error) {
	done := r.m.start(domain.EntityCustomer, OpGet)
	c, ok, err := r.next.Get(ctx, id)
	done(ok, err)
	return c, ok, err
}

type orderRepository struct {
	next domain.OrderRepository
	m    *StoreMetrics
}

func (r *orderRepository) Create(ctx context.Context, in domain.OrderCreate) (domain.Order, error) {
	done := r.m.start(domain.EntityOrder, OpCreate)
	o, err := r.next.Create(ctx, in)
	done(true, err)
	return o, err
}

func (r *orderRepository) List(ctx context.Context, page domain.Page) ([]domain.Order, error) {
	done := r.m.start(domain.EntityOrder, OpList)
	list, err := r.next.List(ctx, page)
	done(true, err)
	return list, err
}

func (r *orderRepository) Get(ctx context.Context, id int64) (domain.Order, bool, error) {
	done := r.m.start(domain.EntityOrder, OpGet)
	o, ok, err := r.next.Get(ctx, id)
	done(ok, err)
	return o, ok, err
}

type productRepository struct {
	next domain.ProductRepository
	m    *StoreMetrics
}

func (r *productRepository) Create(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	done := r.m.start(domain.EntityProduct, OpCreate)
	p, err := r.next.Create(ctx, in)
	done(true, err)
	return p, err
}

func (r *productRepository) List(ctx context.Context, page domain.Page) ([]domain.Product, error) {
	done := r.m.start(domain.EntityProduct, OpList)
	list, err := r.next.List(ctx, page)
	done(true, err)
	return list, err
}

func (r *productRepository) Get(ctx context.Context, id int64) (domain.Product, bool, error) {
	done := r.m.start(domain.EntityProduct, OpGet)
	p, ok, err := r.next.Get(ctx, id)
	done(ok, err)
	return p, ok, err
}

func (r *productRepository) Update(ctx context.Context, id int64, in domain.ProductInput) (domain.Product, bool, error) {
	done := r.m.start(domain.EntityProduct, OpUpdate)
	p, ok, err := r.next.Update(ctx, id, in)
	done(ok, err)
	return p, ok, err
}

func (r *productRepository) Delete(ctx context.Context, id int64) (bool, error) {
	done := r.m.start(domain.EntityProduct, OpDelete)
	ok, err := r.next.Delete(ctx, id)
	done(ok, err)
	return ok, err
}

type paymentRepository struct {
	next domain.PaymentRepository
	m    *StoreMetrics
}

func (r *paymentRepository) Create(ctx context.Context, in domain.PaymentCreate) (domain.Payment, error) {
	done := r.m.start(domain.EntityPayment, OpCreate)
	p, err := r.next.Create(ctx, in)
	done(true, err)
	return p, err
}

func (r *paymentRepository) List(ctx context.Context, page domain.Page) ([]domain.Payment, error) {
	done := r.m.start(domain.EntityPayment, OpList)
	list, err := r.next.List(ctx, page)
	done(true, err)
	return list, err
}

func (r *paymentRepository) Get(ctx context.Context, id int64) (domain.Payment, bool, error) {
	done := r.m.start(domain.EntityPayment, OpGet)
	p, ok, err := r.next.Get(ctx, id)
	done(ok, err)
	return p, ok, err
}

func (r *paymentRepository) Update(ctx context.Context, id int64, in domain.PaymentUpdate) (domain.Payment, bool, error) {
	done := r.m.start(domain.EntityPayment, OpUpdate)
	p, ok, err := r.next.Update(ctx, id, in)
	done(ok, err)
	return p, ok, err
}

func (r *paymentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	done := r.m.start(domain.EntityPayment, OpDelete)
	ok, err := r.next.Delete(ctx, id)
	done(ok, err)
	return ok, err
}

type deliveryRepository struct {
	next domain.DeliveryRepository
	m    *StoreMetrics
}

func (r *deliveryRepository) Create(ctx context.Context, in domain.DeliveryCreate) (domain.Delivery, error) {
	done := r.m.start(domain.EntityDelivery, OpCreate)
	d, err := r.next.Create(ctx, in)
	done(true, err)
	return d, err
}

func (r *deliveryRepository) List(ctx context.Context, page domain.Page) ([]domain.Delivery, error) {
	done := r.m.start(domain.EntityDelivery, OpList)
	list, err := r.next.List(ctx, page)
	done(true, err)
	return list, err
}

func (r *deliveryRepository) Get(ctx context.Context, id int64) (domain.Delivery, bool, error) {
	done := r.m.start(domain.EntityDelivery, OpGet)
	d, ok, err := r.next.Get(ctx, id)
	done(ok, err)
	return d, ok, err
}

type reportRepository struct {
	next domain.ReportRepository
	m    *StoreMetrics
}

func (r *reportRepository) OrdersPerCustomer(ctx context.Context) ([]domain.CustomerOrderCount, error) {
	done := r.m.start(domain.EntityCustomer, OpReport)
	rows, err := r.next.OrdersPerCustomer(ctx)
	done(true, err)
	return rows, err
}

var (
	_ domain.CustomerRepository = (*customerRepository)(nil)
	_ domain.OrderRepository    = (*orderRepository)(nil)
	_ domain.ProductRepository  = (*productRepository)(nil)
	_ domain.PaymentRepository  = (*paymentRepository)(nil)
	_ domain.DeliveryRepository = (*deliveryRepository)(nil)
	_ domain.ReportRepository   = (*reportRepository)(nil)
)
