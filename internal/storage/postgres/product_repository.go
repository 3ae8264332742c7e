package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

const productColumns = `id, name, price, category, stock_quantity`

type rowScanner interface {
	Scan(dest ...any) error
}

type productRepository struct {
	store *Store
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{store: store}
}

func (r *productRepository) Create(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	var product domain.Product
	err := r.store.withTx(ctx, nil, func(ctx context.Context, q querier) error {
		var err error
		product, err = scanProduct(q.QueryRowContext(ctx, `
			INSERT INTO products (name, price, category, stock_quantity)
			VALUES ($1, $2, $3, $4)
			RETURNING `+productColumns,
			in.Name, in.Price, in.Category, in.StockQuantity,
		))
		return err
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", classifyError(err))
	}
	return product, nil
}

func (r *productRepository) List(ctx context.Context, page domain.Page) ([]domain.Product, error) {
	if err := domain.Validate(page.Validate()); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0)
	err := r.store.withConn(ctx, func(ctx context.Context, q querier) error {
		rows, err := q.QueryContext(ctx, `
			SELECT `+productColumns+`
			FROM products
			ORDER BY id
			OFFSET $1 LIMIT $2
		`, page.Skip, page.Limit)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			product, err := scanProduct(rows)
			if err != nil {
				return fmt.Errorf("scan product row: %w", err)
			}
			products = append(products, product)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate product rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, classifyError(err)
	}
	return products, nil
}

func (r *productRepository) Get(ctx context.Context, id int64) (domain.Product, bool, error) {
	var product domain.Product
	err := r.store.withConn(ctx, func(ctx context.Context, q querier) error {
		var err error
		product, err = scanProduct(q.QueryRowContext(ctx, `
			SELECT `+productColumns+`
			FROM products
			WHERE id = $1
		`, id))
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, false, nil
	}
	if err != nil {
		return domain.Product{}, false, fmt.Errorf("select product: %w", classifyError(err))
	}
	return product, true, nil
}

func (r *productRepository) Update(ctx context.Context, id int64, in domain.ProductInput) (domain.Product, bool, error) {
	var product domain.Product
	err := r.store.withTx(ctx, nil, func(ctx context.Context, q querier) error {
		var err error
		product, err = scanProduct(q.QueryRowContext(ctx, `
			UPDATE products
			SET name = $1,
			    price = $2,
			    category = $3,
			    stock_quantity = $4
			WHERE id = $5
			RETURNING `+productColumns,
			in.Name, in.Price, in.Category, in.StockQuantity, id,
		))
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, false, nil
	}
	if err != nil {
		return domain.Product{}, false, fmt.Errorf("update product: %w", classifyError(err))
	}
	return product, true, nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return deleteByID(ctx, r.store, "products", id)
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.StockQuantity); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// deleteByID удаляет строку по id; table подставляется только из констант пакета.
func deleteByID(ctx context.Context, store *Store, table string, id int64) (bool, error) {
	var affected int64
	err := store.withTx(ctx, nil, func(ctx context.Context, q querier) error {
		res, err := q.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", table, classifyError(err))
	}
	return affected > 0, nil
}

var _ domain.ProductRepository = (*productRepository)(nil)
