package memory

import (
	"context"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

type reportRepositoryInMemory struct {
	db *Database
}

// NewReportRepository возвращает отчёты поверх in-memory хранилища.
func NewReportRepository(db *Database) domain.ReportRepository {
	return &reportRepositoryInMemory{db: db}
}

// OrdersPerCustomer считает заказы для клиентов, у которых они есть.
func (r *reportRepositoryInMemory) OrdersPerCustomer(ctx context.Context) ([]domain.CustomerOrderCount, error) {
	result := make([]domain.CustomerOrderCount, 0)
	err := r.db.read(ctx, func() error {
		counts := make(map[int64]int64, len(r.db.customers))
		for _, o := range r.db.orders {
			counts[o.CustomerID]++
		}
		for _, c := range r.db.customers {
			total := counts[c.ID]
			if total == 0 {
				continue
			}
			result = append(result, domain.CustomerOrderCount{
				CustomerID:   c.ID,
				CustomerName: c.Name,
				TotalOrders:  total,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

var _ domain.ReportRepository = (*reportRepositoryInMemory)(nil)
