package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

// Значения метки result.
const (
	ResultOK              = "ok"
	ResultNotFound        = "not_found"
	ResultValidation      = "validation"
	ResultForeignKey      = "foreign_key_violation"
	ResultUniqueViolation = "unique_violation"
	ResultUnavailable     = "unavailable"
	ResultError           = "error"
)

// StoreMetrics содержит метрики операций репозиториев.
type StoreMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	inFlight   *prometheus.GaugeVec
}

// NewStoreMetrics регистрирует метрики хранилища в registerer
// (prometheus.DefaultRegisterer, если nil).
func NewStoreMetrics(registerer prometheus.Registerer) *StoreMetrics {
	return &StoreMetrics{
		operations: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "easyorder_repository_operations_total",
			Help: "Total number of repository operations by entity, operation and result",
		}, []string{"entity", "operation", "result"}),
		duration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "easyorder_repository_operation_duration_seconds",
			Help:    "Duration of repository operations in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"entity", "operation"}),
		inFlight: registerGaugeVec(registerer, prometheus.GaugeOpts{
			Name: "easyorder_repository_operations_in_flight",
			Help: "Number of repository operations currently executing",
		}, []string{"entity"}),
	}
}

// start отмечает начало операции; возвращённая функция фиксирует её итог.
func (m *StoreMetrics) start(entity domain.Entity, operation string) func(found bool, err error) {
	if m == nil {
		return func(bool, error) {}
	}

	begin := time.Now()
	gauge := m.inFlight.WithLabelValues(string(entity))
	gauge.Inc()

	return func(found bool, err error) {
		gauge.Dec()
		m.duration.WithLabelValues(string(entity), operation).Observe(time.Since(begin).Seconds())
		m.operations.WithLabelValues(string(entity), operation, ResultOf(found, err)).Inc()
	}
}

// ResultOf переводит исход операции в значение метки result.
func ResultOf(found bool, err error) string {
	switch {
	case err == nil && found:
		return ResultOK
	case err == nil:
		return ResultNotFound
	case errors.Is(err, domain.ErrValidation):
		return ResultValidation
	case errors.Is(err, domain.ErrForeignKeyViolation):
		return ResultForeignKey
	case errors.Is(err, domain.ErrUniqueViolation):
		return ResultUniqueViolation
	case errors.Is(err, domain.ErrStoreUnavailable):
		return ResultUnavailable
	default:
		return ResultError
	}
}

// EventMetrics считает публикации событий об изменениях.
type EventMetrics struct {
	events *prometheus.CounterVec
}

// NewEventMetrics регистрирует счётчик easyorder_change_events_total.
func NewEventMetrics(registerer prometheus.Registerer) *EventMetrics {
	return &EventMetrics{
		events: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "easyorder_change_events_total",
			Help: "Total number of change events by publish result",
		}, []string{"result"}),
	}
}

// RecordPublished увеличивает счётчик успешно опубликованных событий.
func (m *EventMetrics) RecordPublished() {
	if m != nil {
		m.events.WithLabelValues("published").Inc()
	}
}

// RecordFailed увеличивает счётчик событий, которые не удалось опубликовать.
func (m *EventMetrics) RecordFailed() {
	if m != nil {
		m.events.WithLabelValues("failed").Inc()
	}
}
