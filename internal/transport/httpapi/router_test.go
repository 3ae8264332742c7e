package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
	"github.com/vladislavdragonenkov/easyorder/internal/service/records"
	"github.com/vladislavdragonenkov/easyorder/internal/storage/memory"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *log.Entry {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return log.NewEntry(logger)
}

func newTestRouter(t *testing.T, repos domain.Repositories) *gin.Engine {
	t.Helper()
	svc := records.NewService(repos, nil, nil, quietLogger())
	return NewRouter(svc, quietLogger(), Options{AllowedOrigins: []string{"http://localhost:3000"}})
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestRouter_CustomersAndOrders(t *testing.T) {
	router := newTestRouter(t, memory.NewRepositories(memory.NewDatabase()))

	rec := do(t, router, http.MethodPost, "/customers", map[string]string{"name": "Ana", "email": "ana@x.com"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	ana := decode[domain.Customer](t, rec)
	require.Equal(t, int64(1), ana.ID)
	require.NotNil(t, ana.Orders)

	rec = do(t, router, http.MethodPost, "/customers", map[string]string{"name": "Ana 2", "email": "ana@x.com"})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "record already exists", decode[errorBody](t, rec).Error)

	rec = do(t, router, http.MethodPost, "/customers", map[string]string{"name": "", "email": "nope"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, decode[errorBody](t, rec).Error, "name is required")

	rec = do(t, router, http.MethodPost, "/orders", map[string]any{"description": "book", "customer_id": 404})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/orders", map[string]any{"description": "book", "customer_id": ana.ID})
	require.Equal(t, http.StatusCreated, rec.Code)
	order := decode[domain.Order](t, rec)

	rec = do(t, router, http.MethodGet, fmt.Sprintf("/customers/%d", ana.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []domain.Order{order}, decode[domain.Customer](t, rec).Orders)

	rec = do(t, router, http.MethodGet, "/customers/999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "customer not found", decode[errorBody](t, rec).Error)

	rec = do(t, router, http.MethodGet, "/orders/abc", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, router, http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]domain.Order](t, rec), 1)

	rec = do(t, router, http.MethodGet, "/reports/orders-per-customer", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []domain.CustomerOrderCount{{CustomerID: ana.ID, CustomerName: "Ana", TotalOrders: 1}},
		decode[[]domain.CustomerOrderCount](t, rec))
}

func TestRouter_ProductLifecycle(t *testing.T) {
	router := newTestRouter(t, memory.NewRepositories(memory.NewDatabase()))

	rec := do(t, router, http.MethodPost, "/products", map[string]any{
		"name": "Pen", "price": 2.5, "category": "office", "stock_quantity": 10,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	product := decode[domain.Product](t, rec)

	rec = do(t, router, http.MethodPut, fmt.Sprintf("/products/%d", product.ID), map[string]any{
		"name": "Pencil", "price": 0, "category": "school", "stock_quantity": 0,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, domain.Product{ID: product.ID, Name: "Pencil", Category: "school"}, decode[domain.Product](t, rec))

	rec = do(t, router, http.MethodPut, "/products/999", map[string]any{
		"name": "X", "price": 1, "category": "y", "stock_quantity": 1,
	})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPut, fmt.Sprintf("/products/%d", product.ID), `{"name":`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, router, http.MethodDelete, fmt.Sprintf("/products/%d", product.ID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.Bytes())

	rec = do(t, router, http.MethodDelete, fmt.Sprintf("/products/%d", product.ID), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_MissingNumericFieldsAreRejected(t *testing.T) {
	router := newTestRouter(t, memory.NewRepositories(memory.NewDatabase()))

	rec := do(t, router, http.MethodPost, "/products", map[string]any{
		"name": "Pen", "price": 2.5, "category": "office", "stock_quantity": 10,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	product := decode[domain.Product](t, rec)
	productPath := fmt.Sprintf("/products/%d", product.ID)

	customer := decode[domain.Customer](t, do(t, router, http.MethodPost, "/customers", map[string]string{"name": "Ana", "email": "ana@x.com"}))
	order := decode[domain.Order](t, do(t, router, http.MethodPost, "/orders", map[string]any{"description": "book", "customer_id": customer.ID}))

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   []string
	}{
		{
			name:   "create product without price",
			method: http.MethodPost,
			path:   "/products",
			body:   map[string]any{"name": "Pen", "category": "office", "stock_quantity": 1},
			want:   []string{"price is required"},
		},
		{
			name:   "create product without stock",
			method: http.MethodPost,
			path:   "/products",
			body:   map[string]any{"name": "Pen", "price": 1, "category": "office"},
			want:   []string{"stock_quantity is required"},
		},
		{
			name:   "create product with null price",
			method: http.MethodPost,
			path:   "/products",
			body:   `{"name":"Pen","price":null,"category":"office","stock_quantity":1}`,
			want:   []string{"price is required"},
		},
		{
			name:   "update product without price",
			method: http.MethodPut,
			path:   productPath,
			body:   map[string]any{"name": "Pen", "category": "office", "stock_quantity": 1},
			want:   []string{"price is required"},
		},
		{
			name:   "update product without stock",
			method: http.MethodPut,
			path:   productPath,
			body:   map[string]any{"name": "Pen", "price": 1, "category": "office"},
			want:   []string{"stock_quantity is required"},
		},
		{
			name:   "update product without numbers",
			method: http.MethodPut,
			path:   productPath,
			body:   map[string]any{"name": "Pen", "category": "office"},
			want:   []string{"price is required", "stock_quantity is required"},
		},
		{
			name:   "create payment without amount",
			method: http.MethodPost,
			path:   "/payments",
			body:   map[string]any{"order_id": order.ID, "payment_method": "card"},
			want:   []string{"amount is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, tt.method, tt.path, tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
			for _, msg := range tt.want {
				require.Contains(t, rec.Body.String(), msg)
			}
		})
	}

	rec = do(t, router, http.MethodGet, productPath, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, product, decode[domain.Product](t, rec))

	payments := decode[[]domain.Payment](t, do(t, router, http.MethodGet, "/payments", nil))
	require.Empty(t, payments)
}

func TestRouter_PaymentsAndDeliveries(t *testing.T) {
	router := newTestRouter(t, memory.NewRepositories(memory.NewDatabase()))

	customer := decode[domain.Customer](t, do(t, router, http.MethodPost, "/customers", map[string]string{"name": "Ana", "email": "ana@x.com"}))
	order := decode[domain.Order](t, do(t, router, http.MethodPost, "/orders", map[string]any{"description": "book", "customer_id": customer.ID}))

	rec := do(t, router, http.MethodPost, "/payments", map[string]any{"order_id": order.ID, "amount": 50, "payment_method": "card"})
	require.Equal(t, http.StatusCreated, rec.Code)
	payment := decode[domain.Payment](t, rec)
	require.Equal(t, domain.PaymentStatusPending, payment.Status)
	require.False(t, payment.CreatedAt.IsZero())

	rec = do(t, router, http.MethodPut, fmt.Sprintf("/payments/%d", payment.ID), map[string]string{"status": "paid"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, domain.PaymentStatusPaid, decode[domain.Payment](t, rec).Status)

	rec = do(t, router, http.MethodPut, fmt.Sprintf("/payments/%d", payment.ID), map[string]string{"status": "refunded"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, router, http.MethodPost, "/payments", map[string]any{"order_id": 999, "amount": 5, "payment_method": "card"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/deliveries", map[string]any{
		"address": "Rua A, 1", "delivery_date": "2024-06-01", "order_id": order.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	delivery := decode[domain.Delivery](t, rec)
	require.Equal(t, domain.DefaultDeliveryStatus, delivery.Status)
	require.Equal(t, 2024, delivery.DeliveryDate.Year())

	rec = do(t, router, http.MethodPost, "/deliveries", map[string]any{
		"address": "Rua A, 1", "delivery_date": "tomorrow", "order_id": order.ID,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, router, http.MethodGet, fmt.Sprintf("/deliveries/%d", delivery.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodDelete, fmt.Sprintf("/payments/%d", payment.ID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, router, http.MethodGet, fmt.Sprintf("/payments/%d", payment.ID), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Pagination(t *testing.T) {
	router := newTestRouter(t, memory.NewRepositories(memory.NewDatabase()))
	for i := 0; i < 3; i++ {
		rec := do(t, router, http.MethodPost, "/products", map[string]any{
			"name": fmt.Sprintf("p%d", i), "price": 1, "category": "c", "stock_quantity": 1,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := do(t, router, http.MethodGet, "/products?skip=1&limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[[]domain.Product](t, rec)
	require.Len(t, page, 1)
	require.Equal(t, "p1", page[0].Name)

	rec = do(t, router, http.MethodGet, "/products?skip=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "[]", rec.Body.String())

	for _, query := range []string{"skip=-1", "limit=0", "limit=101", "limit=ten"} {
		rec = do(t, router, http.MethodGet, "/products?"+query, nil)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code, query)
	}
}

type failingProducts struct {
	domain.ProductRepository
	err error
}

func (f failingProducts) List(context.Context, domain.Page) ([]domain.Product, error) {
	return nil, f.err
}

func TestRouter_StoreFailures(t *testing.T) {
	repos := memory.NewRepositories(memory.NewDatabase())

	repos.Products = failingProducts{err: fmt.Errorf("list products: %w", domain.ErrStoreUnavailable)}
	rec := do(t, newTestRouter(t, repos), http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	repos.Products = failingProducts{err: errors.New("disk on fire")}
	rec = do(t, newTestRouter(t, repos), http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "internal error", decode[errorBody](t, rec).Error)
}

func TestRouter_RequestIDAndCORS(t *testing.T) {
	router := newTestRouter(t, memory.NewRepositories(memory.NewDatabase()))

	rec := do(t, router, http.MethodGet, "/orders", nil)
	require.NotEmpty(t, rec.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, "req-42", rec.Header().Get(HeaderRequestID))

	req = httptest.NewRequest(http.MethodOptions, "/orders", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, router, http.MethodGet, "/nowhere", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
