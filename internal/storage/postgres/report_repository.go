package postgres

import (
	"context"
	"fmt"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

type reportRepository struct {
	store *Store
}

// NewReportRepository создаёт PostgreSQL-реализацию ReportRepository.
func NewReportRepository(store *Store) domain.ReportRepository {
	return &reportRepository{store: store}
}

func (r *reportRepository) OrdersPerCustomer(ctx context.Context) ([]domain.CustomerOrderCount, error) {
	report := make([]domain.CustomerOrderCount, 0)
	err := r.store.withConn(ctx, func(ctx context.Context, q querier) error {
		rows, err := q.QueryContext(ctx, `
			SELECT c.id, c.name, COUNT(o.id)
			FROM customers c
			JOIN orders o ON o.customer_id = c.id
			GROUP BY c.id, c.name
			ORDER BY c.id
		`)
		if err != nil {
			return fmt.Errorf("query orders per customer: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var row domain.CustomerOrderCount
			if err := rows.Scan(&row.CustomerID, &row.CustomerName, &row.TotalOrders); err != nil {
				return fmt.Errorf("scan report row: %w", err)
			}
			report = append(report, row)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate report rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, classifyError(err)
	}
	return report, nil
}

var _ domain.ReportRepository = (*reportRepository)(nil)
