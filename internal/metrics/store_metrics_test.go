package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
	"github.com/vladislavdragonenkov/easyorder/internal/storage/memory"
)

func counterValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()

	metric := &dto.Metric{}
	if err := vec.WithLabelValues(labels...).Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func TestResultOf(t *testing.T) {
	tests := []struct {
		found bool
		err   error
		want  string
	}{
		{found: true, want: ResultOK},
		{found: false, want: ResultNotFound},
		{err: domain.Validate([]error{domain.ErrIDInvalid}), want: ResultValidation},
		{err: fmt.Errorf("insert: %w", domain.ErrForeignKeyViolation), want: ResultForeignKey},
		{err: fmt.Errorf("insert: %w", domain.ErrUniqueViolation), want: ResultUniqueViolation},
		{err: fmt.Errorf("ping: %w", domain.ErrStoreUnavailable), want: ResultUnavailable},
		{err: errors.New("boom"), want: ResultError},
	}

	for _, tc := range tests {
		if got := ResultOf(tc.found, tc.err); got != tc.want {
			t.Errorf("ResultOf(%v, %v) = %q, want %q", tc.found, tc.err, got, tc.want)
		}
	}
}

func TestNewStoreMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := NewStoreMetrics(reg)
	second := NewStoreMetrics(reg)

	if first.operations != second.operations {
		t.Fatal("expected second constructor call to reuse the registered counter")
	}
	if first.duration != second.duration {
		t.Fatal("expected second constructor call to reuse the registered histogram")
	}
}

func TestInstrumentRepositories_CountsOperations(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStoreMetrics(reg)
	repos := InstrumentRepositories(memory.NewRepositories(memory.NewDatabase()), m)
	ctx := context.Background()

	customer, err := repos.Customers.Create(ctx, domain.CustomerCreate{Name: "Ana", Email: "ana@x.com"})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if _, err := repos.Customers.Create(ctx, domain.CustomerCreate{Name: "Ana", Email: "ana@x.com"}); err == nil {
		t.Fatal("expected duplicate email error")
	}
	if _, err := repos.Orders.Create(ctx, domain.OrderCreate{Description: "book", CustomerID: 999}); err == nil {
		t.Fatal("expected foreign key error")
	}
	if _, ok, err := repos.Customers.Get(ctx, customer.ID+100); err != nil || ok {
		t.Fatalf("expected absent customer, got ok=%v err=%v", ok, err)
	}
	if _, err := repos.Products.List(ctx, domain.Page{Skip: -1, Limit: 10}); err == nil {
		t.Fatal("expected page validation error")
	}

	checks := []struct {
		labels []string
		want   float64
	}{
		{labels: []string{"customer", OpCreate, ResultOK}, want: 1},
		{labels: []string{"customer", OpCreate, ResultUniqueViolation}, want: 1},
		{labels: []string{"order", OpCreate, ResultForeignKey}, want: 1},
		{labels: []string{"customer", OpGet, ResultNotFound}, want: 1},
		{labels: []string{"product", OpList, ResultValidation}, want: 1},
	}
	for _, c := range checks {
		if got := counterValue(t, m.operations, c.labels...); got != c.want {
			t.Errorf("operations%v = %v, want %v", c.labels, got, c.want)
		}
	}

	gauge := &dto.Metric{}
	if err := m.inFlight.WithLabelValues("customer").Write(gauge); err != nil {
		t.Fatalf("failed to write gauge: %v", err)
	}
	if gauge.Gauge.GetValue() != 0 {
		t.Errorf("expected no operations in flight, got %v", gauge.Gauge.GetValue())
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	var histogramSeen bool
	for _, family := range families {
		if family.GetName() == "easyorder_repository_operation_duration_seconds" {
			histogramSeen = true
		}
	}
	if !histogramSeen {
		t.Error("expected duration histogram to be exported")
	}
}

func TestInstrumentRepositories_NilMetricsReturnsOriginal(t *testing.T) {
	repos := memory.NewRepositories(memory.NewDatabase())
	got := InstrumentRepositories(repos, nil)
	if got.Customers != repos.Customers {
		t.Fatal("expected repositories to be returned unchanged")
	}
}

func TestEventMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewEventMetrics(reg)

	m.RecordPublished()
	m.RecordPublished()
	m.RecordFailed()

	if got := counterValue(t, m.events, "published"); got != 2 {
		t.Errorf("expected 2 published events, got %v", got)
	}
	if got := counterValue(t, m.events, "failed"); got != 1 {
		t.Errorf("expected 1 failed event, got %v", got)
	}

	var nilMetrics *EventMetrics
	nilMetrics.RecordPublished()
	nilMetrics.RecordFailed()
}
