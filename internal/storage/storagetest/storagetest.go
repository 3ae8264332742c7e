// Package storagetest содержит общий набор контрактных тестов для всех реализаций
// domain.Repositories (memory, sqlite, postgres).
package storagetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

// Factory возвращает пустое хранилище для одного подтеста.
type Factory func(t *testing.T) domain.Repositories

// Run прогоняет контракт репозиториев на свежем хранилище для каждого сценария.
func Run(t *testing.T, newRepos Factory) {
	t.Helper()

	cases := []struct {
		name string
		fn   func(t *testing.T, repos domain.Repositories)
	}{
		{"CustomerRoundTrip", testCustomerRoundTrip},
		{"CustomerDuplicateEmail", testCustomerDuplicateEmail},
		{"CustomerConcurrentDuplicateEmail", testCustomerConcurrentDuplicateEmail},
		{"CustomerEmbedsOrders", testCustomerEmbedsOrders},
		{"OrderRoundTrip", testOrderRoundTrip},
		{"OrderMissingCustomer", testOrderMissingCustomer},
		{"ProductCRUD", testProductCRUD},
		{"ProductDeleteMissing", testProductDeleteMissing},
		{"PaymentLifecycle", testPaymentLifecycle},
		{"PaymentMissingOrder", testPaymentMissingOrder},
		{"DeliveryRoundTrip", testDeliveryRoundTrip},
		{"DeliveryMissingOrder", testDeliveryMissingOrder},
		{"Pagination", testPagination},
		{"InvalidPage", testInvalidPage},
		{"OrdersPerCustomer", testOrdersPerCustomer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.fn(t, newRepos(t))
		})
	}
}

func ctxForTest(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func mustCustomer(t *testing.T, repos domain.Repositories, name, email string) domain.Customer {
	t.Helper()
	c, err := repos.Customers.Create(ctxForTest(t), domain.CustomerCreate{Name: name, Email: email})
	require.NoError(t, err)
	return c
}

func mustOrder(t *testing.T, repos domain.Repositories, customerID int64, description string) domain.Order {
	t.Helper()
	o, err := repos.Orders.Create(ctxForTest(t), domain.OrderCreate{Description: description, CustomerID: customerID})
	require.NoError(t, err)
	return o
}

func testCustomerRoundTrip(t *testing.T, repos domain.Repositories) {
	ctx := ctxForTest(t)

	created := mustCustomer(t, repos, "Ana", "ana@x.com")
	require.Positive(t, created.ID)
	require.Equal(t, "Ana", created.Name)
	require.Equal(t, "ana@x.com", created.Email)
	require.Empty(t, created.Orders)

	got, ok, err := repos.Customers.Get(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, created, got)

	_, ok, err = repos.Customers.Get(ctx, created.ID+1000)
	require.NoError(t, err)
	require.False(t, ok)
}

func testCustomerDuplicateEmail(t *testing.T, repos domain.Repositories) {
	ctx := ctxForTest(t)

	mustCustomer(t, repos, "Ana", "ana@x.com")
	_, err := repos.Customers.Create(ctx, domain.CustomerCreate{Name: "Other Ana", Email: "ana@x.com"})
	require.ErrorIs(t, err, domain.ErrUniqueViolation)

	all, err := repos.Customers.List(ctx, domain.Page{Skip: 0, Limit: 10})
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func testCustomerConcurrentDuplicateEmail(t *testing.T, repos domain.Repositories) {
	ctx := ctxForTest(t)

	const workers = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repos.Customers.Create(ctx, domain.CustomerCreate{
				Name:  fmt.Sprintf("racer-%d", i),
				Email: "race@x.com",
			})
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, domain.ErrUniqueViolation)
	}
	require.Equal(t, 1, succeeded)
}

func testCustomerEmbedsOrders(t *testing.T, repos domain.Repositories) {
	ctx := ctxForTest(t)

	ana := mustCustomer(t, repos, "Ana", "ana@x.com")
	bob := mustCustomer(t, repos, "Bob", "bob@x.com")
	first := mustOrder(t, repos, ana.ID, "book")
	mustOrder(t, repos, bob.ID, "pen")
	second := mustOrder(t, repos, ana.ID, "lamp")

	got, ok, err := repos.Customers.Get(ctx, ana.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []domain.Order{first, second}, got.Orders)

	listed, err := repos.Customers.List(ctx, domain.Page{Skip: 0, Limit: 10})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Len(t, listed[0].Orders, 2)
	require.Len(t, listed[1].Orders, 1)
}

func testOrderRoundTrip(t *testing.T, repos domain.Repositories) {
	ctx := ctxForTest(t)

	ana := mustCustomer(t, repos, "Ana", "ana@x.com")
	created := mustOrder(t, repos, ana.ID, "book")
	require.Positive(t, created.ID)
	require.Equal(t, ana.ID, created.CustomerID)

	got, ok, err := repos.Orders.Get(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, created, got)
}

func testOrderMissingCustomer(t *testing.T, repos domain.Repositories) {
	ctx := ctxForTest(t)

	_, err := repos.Orders.Create(ctx, domain.OrderCreate{Description: "book", CustomerID: 404})
	require.ErrorIs(t, err, domain.ErrForeignKeyViolation)

	orders, err := repos.Orders.List(ctx, domain.Page{Skip: 0, Limit: 10})
	require.NoError(t, err)
	require.Empty(t, orders)
}

func testProductCRUD(t *testing.T, repos domain.Repositories) {
	ctx := ctxForTest(t)

	created, err := repos.Products.Create(ctx, domain.ProductInput{
		Name: "Pen", Price: 2.5, Category: "office", StockQuantity: 10,
	})
	require.NoError(t, err)

	got, ok, err := repos.Products.Get(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, created, got)

	update := domain.ProductInput{Name: "Pencil", Price: 0.75, Category: "school", StockQuantity: 0}
	updated, ok, err := repos.Products.Update(ctx, created.ID, update)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, domain.Product{
		ID: created.ID, Name: "Pencil", Price: 0.75, Category: "school", StockQuantity: 0,
	}, updated)

	reread, _, err := repos.Products.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, updated, reread)

	_, ok, err = repos.Products.Update(ctx, created.ID+1000, update)
	require.NoError(t, err)
	require.False(t, ok)

	deleted, err := repos.Products.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	_, ok, err = repos.Products.Get(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, ok)

	deleted, err = repos.Products.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, deleted)
}

func testProductDeleteMissing(t *testing.T, repos domain.Repositories) {
	ctx := ctxForTest(t)

	kept, err := repos.Products.Create(ctx, domain.ProductInput{Name: "Mug", Price: 9, Category: "kitchen", StockQuantity: 1})
	require.NoError(t, err)

	deleted, err := repos.Products.Delete(ctx, kept.ID+1000)
	require.NoError(t, err)
	require.False(t, deleted)

	all, err := repos.Products.List(ctx, domain.Page{Skip: 0, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, []domain.Product{kept}, all)
}

func testPaymentLifecycle(t *testing.T, repos domain.Repositories) {
	ctx := ctxForTest(t)

	ana := mustCustomer(t, repos, "Ana", "ana@x.com")
	order := mustOrder(t, repos, ana.ID, "book")

	before := time.Now().UTC().Add(-time.Minute)
	created, err := repos.Payments.Create(ctx, domain.PaymentCreate{
		OrderID: order.ID, Amount: 50.0, PaymentMethod: "card",
	})
	require.NoError(t, err)
	require.Equal(t, domain.PaymentStatusPending, created.Status)
	require.Equal(t, order.ID, created.OrderID)
	require.Equal(t, 50.0, created.Amount)
	require.Equal(t, "card", created.PaymentMethod)
	require.True(t, created.CreatedAt.After(before), "created_at must default to creation time")

	got, ok, err := repos.Payments.Get(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	requirePaymentEqual(t, created, got)

	updated, ok, err := repos.Payments.Update(ctx, created.ID, domain.PaymentUpdate{Status: domain.PaymentStatusPaid})
	require.NoError(t, err)
	require.True(t, ok)
	want := created
	want.Status = domain.PaymentStatusPaid
	requirePaymentEqual(t, want, updated)

	_, ok, err = repos.Payments.Update(ctx, created.ID+1000, domain.PaymentUpdate{Status: domain.PaymentStatusCancelled})
	require.NoError(t, err)
	require.False(t, ok)

	deleted, err := repos.Payments.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	_, ok, err = repos.Payments.Get(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, ok)

	deleted, err = repos.Payments.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, deleted)
}

func testPaymentMissingOrder(t *testing.T, repos domain.Repositories) {
	ctx := ctxForTest(t)

	_, err := repos.Payments.Create(ctx, domain.PaymentCreate{OrderID: 999, Amount: 1, PaymentMethod: "card"})
	require.ErrorIs(t, err, domain.ErrForeignKeyViolation)

	payments, err := repos.Payments.List(ctx, domain.Page{Skip: 0, Limit: 10})
	require.NoError(t, err)
	require.Empty(t, payments)
}

func testDeliveryRoundTrip(t *testing.T, repos domain.Repositories) {
	ctx := ctxForTest(t)

	ana := mustCustomer(t, repos, "Ana", "ana@x.com")
	order := mustOrder(t, repos, ana.ID, "book")
	when := time.Date(2026, 11, 2, 15, 0, 0, 0, time.UTC)

	first, err := repos.Deliveries.Create(ctx, domain.DeliveryCreate{
		Address: "Rua A, 1", DeliveryDate: when, OrderID: order.ID,
	})
	require.NoError(t, err)
	require.Equal(t, domain.DefaultDeliveryStatus, first.Status)
	require.True(t, when.Equal(first.DeliveryDate))

	// Несколько доставок на один заказ допустимы.
	second, err := repos.Deliveries.Create(ctx, domain.DeliveryCreate{
		Address: "Rua B, 2", Status: "shipped", DeliveryDate: when.Add(24 * time.Hour), OrderID: order.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "shipped", second.Status)

	got, ok, err := repos.Deliveries.Get(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, first.ID, got.ID)
	require.Equal(t, first.Address, got.Address)
	require.Equal(t, first.Status, got.Status)
	require.Equal(t, first.OrderID, got.OrderID)
	require.True(t, first.DeliveryDate.Equal(got.DeliveryDate))

	_, ok, err = repos.Deliveries.Get(ctx, second.ID+1000)
	require.NoError(t, err)
	require.False(t, ok)
}

func testDeliveryMissingOrder(t *testing.T, repos domain.Repositories) {
	ctx := ctxForTest(t)

	_, err := repos.Deliveries.Create(ctx, domain.DeliveryCreate{
		Address: "Rua A, 1", DeliveryDate: time.Now(), OrderID: 12345,
	})
	require.ErrorIs(t, err, domain.ErrForeignKeyViolation)
}

func testPagination(t *testing.T, repos domain.Repositories) {
	ctx := ctxForTest(t)

	const total = 5
	ids := make([]int64, 0, total)
	for i := 0; i < total; i++ {
		p, err := repos.Products.Create(ctx, domain.ProductInput{
			Name: fmt.Sprintf("p-%d", i), Price: float64(i), Category: "c", StockQuantity: int64(i),
		})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	cases := []struct {
		page domain.Page
		want []int64
	}{
		{page: domain.Page{Skip: 0, Limit: 2}, want: ids[0:2]},
		{page: domain.Page{Skip: 2, Limit: 2}, want: ids[2:4]},
		{page: domain.Page{Skip: 4, Limit: 2}, want: ids[4:5]},
		{page: domain.Page{Skip: 0, Limit: 100}, want: ids},
		{page: domain.Page{Skip: total, Limit: 10}, want: nil},
		{page: domain.Page{Skip: total + 10, Limit: 10}, want: nil},
	}
	for _, tc := range cases {
		got, err := repos.Products.List(ctx, tc.page)
		require.NoError(t, err)
		require.NotNil(t, got, "empty page must be an empty slice")
		require.LessOrEqual(t, len(got), tc.page.Limit)

		gotIDs := make([]int64, 0, len(got))
		for _, p := range got {
			gotIDs = append(gotIDs, p.ID)
		}
		if tc.want == nil {
			require.Empty(t, gotIDs, "page %+v", tc.page)
			continue
		}
		require.Equal(t, tc.want, gotIDs, "page %+v", tc.page)
	}
}

func testInvalidPage(t *testing.T, repos domain.Repositories) {
	ctx := ctxForTest(t)

	_, err := repos.Customers.List(ctx, domain.Page{Skip: -1, Limit: 10})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = repos.Deliveries.List(ctx, domain.Page{Skip: 0, Limit: 0})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func testOrdersPerCustomer(t *testing.T, repos domain.Repositories) {
	ctx := ctxForTest(t)

	empty, err := repos.Reports.OrdersPerCustomer(ctx)
	require.NoError(t, err)
	require.Empty(t, empty)

	ana := mustCustomer(t, repos, "Ana", "ana@x.com")
	require.Equal(t, int64(1), ana.ID)
	order := mustOrder(t, repos, ana.ID, "book")
	require.Equal(t, int64(1), order.ID)

	report, err := repos.Reports.OrdersPerCustomer(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.CustomerOrderCount{{CustomerID: 1, CustomerName: "Ana", TotalOrders: 1}}, report)

	idle := mustCustomer(t, repos, "Bia", "bia@x.com")
	require.Equal(t, int64(2), idle.ID)

	report, err = repos.Reports.OrdersPerCustomer(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.CustomerOrderCount{{CustomerID: 1, CustomerName: "Ana", TotalOrders: 1}}, report)

	mustOrder(t, repos, ana.ID, "lamp")
	cleo := mustCustomer(t, repos, "Cleo", "cleo@x.com")
	mustOrder(t, repos, cleo.ID, "chair")

	report, err = repos.Reports.OrdersPerCustomer(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []domain.CustomerOrderCount{
		{CustomerID: ana.ID, CustomerName: "Ana", TotalOrders: 2},
		{CustomerID: cleo.ID, CustomerName: "Cleo", TotalOrders: 1},
	}, report)
}

// requirePaymentEqual сравнивает платежи с точностью до представления времени в хранилище.
func requirePaymentEqual(t *testing.T, want, got domain.Payment) {
	t.Helper()

	require.Equal(t, want.ID, got.ID)
	require.Equal(t, want.OrderID, got.OrderID)
	require.Equal(t, want.Amount, got.Amount)
	require.Equal(t, want.Status, got.Status)
	require.Equal(t, want.PaymentMethod, got.PaymentMethod)
	if !want.CreatedAt.Equal(got.CreatedAt) {
		t.Fatalf("created_at mismatch: want %s got %s", want.CreatedAt, got.CreatedAt)
	}
}
