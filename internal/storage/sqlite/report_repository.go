package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

type reportRepository struct {
	store *Store
}

// NewReportRepository создаёт SQLite-реализацию ReportRepository.
func NewReportRepository(store *Store) domain.ReportRepository {
	return &reportRepository{store: store}
}

func (r *reportRepository) OrdersPerCustomer(ctx context.Context) ([]domain.CustomerOrderCount, error) {
	report := make([]domain.CustomerOrderCount, 0)
	err := r.store.withSession(ctx, func(db *gorm.DB) error {
		return db.Table("customers AS c").
			Select("c.id AS customer_id, c.name AS customer_name, COUNT(o.id) AS total_orders").
			Joins("JOIN orders AS o ON o.customer_id = c.id").
			Group("c.id, c.name").
			Order("c.id").
			Scan(&report).Error
	})
	if err != nil {
		return nil, fmt.Errorf("query orders per customer: %w", err)
	}
	if report == nil {
		report = make([]domain.CustomerOrderCount, 0)
	}
	return report, nil
}

var _ domain.ReportRepository = (*reportRepository)(nil)
