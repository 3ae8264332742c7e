package domain

import "strings"

// Product описывает позицию каталога, не связанная с заказами.
type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
	StockQuantity int64   `json:"stock_quantity"`
}

// ProductInput используется и при создании, и при полной перезаписи товара.
type ProductInput struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
	StockQuantity int64   `json:"stock_quantity"`
}

// Validate проверяет поля товара и возвращает ошибки, если они есть.
func (p *ProductInput) Validate() []error {
	var errs []error

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if strings.TrimSpace(p.Category) == "" {
		errs = append(errs, ErrProductCategoryRequired)
	}
	// NaN не проходит сравнение p.Price >= 0.
	if !(p.Price >= 0) {
		errs = append(errs, ErrProductPriceNegative)
	}
	if p.StockQuantity < 0 {
		errs = append(errs, ErrProductStockNegative)
	}

	return errs
}

// Apply перезаписывает все изменяемые поля товара.
func (p ProductInput) Apply(product Product) Product {
	product.Name = p.Name
	product.Price = p.Price
	product.Category = p.Category
	product.StockQuantity = p.StockQuantity
	return product
}
