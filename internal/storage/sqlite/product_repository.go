package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

type productRepository struct {
	store *Store
}

// NewProductRepository создаёт SQLite-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{store: store}
}

func (r *productRepository) Create(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	row := productRow{Name: in.Name, Price: in.Price, Category: in.Category, StockQuantity: in.StockQuantity}
	err := r.store.withTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return row.toDomain(), nil
}

func (r *productRepository) List(ctx context.Context, page domain.Page) ([]domain.Product, error) {
	if err := domain.Validate(page.Validate()); err != nil {
		return nil, err
	}

	var rows []productRow
	err := r.store.withSession(ctx, func(db *gorm.DB) error {
		return db.Order("id").Offset(page.Skip).Limit(page.Limit).Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toDomain())
	}
	return products, nil
}

func (r *productRepository) Get(ctx context.Context, id int64) (domain.Product, bool, error) {
	var row productRow
	err := r.store.withSession(ctx, func(db *gorm.DB) error {
		return db.First(&row, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Product{}, false, nil
	}
	if err != nil {
		return domain.Product{}, false, fmt.Errorf("select product: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *productRepository) Update(ctx context.Context, id int64, in domain.ProductInput) (domain.Product, bool, error) {
	var row productRow
	err := r.store.withTx(ctx, func(tx *gorm.DB) error {
		// map, а не структура: gorm пропускает нулевые поля структуры, а цена 0 допустима.
		res := tx.Model(&productRow{}).Where("id = ?", id).Updates(map[string]any{
			"name":           in.Name,
			"price":          in.Price,
			"category":       in.Category,
			"stock_quantity": in.StockQuantity,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&row, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Product{}, false, nil
	}
	if err != nil {
		return domain.Product{}, false, fmt.Errorf("update product: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return deleteByID(ctx, r.store, &productRow{}, id)
}

// deleteByID удаляет строку модели; false, если её не было.
func deleteByID(ctx context.Context, store *Store, model any, id int64) (bool, error) {
	var affected int64
	err := store.withTx(ctx, func(tx *gorm.DB) error {
		res := tx.Delete(model, id)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return false, fmt.Errorf("delete record: %w", err)
	}
	return affected > 0, nil
}

var _ domain.ProductRepository = (*productRepository)(nil)
