package sqlite

import (
	"time"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

// Ограничение внешнего ключа описано на обеих сторонах связи: gorm строит его
// по has-many, если обратная связь объявлена.
type customerRow struct {
	ID     int64      `gorm:"primaryKey;autoIncrement"`
	Name   string     `gorm:"not null"`
	Email  string     `gorm:"not null;uniqueIndex"`
	Orders []orderRow `gorm:"foreignKey:CustomerID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}

func (customerRow) TableName() string { return "customers" }

func (r customerRow) toDomain() domain.Customer {
	orders := make([]domain.Order, 0, len(r.Orders))
	for _, o := range r.Orders {
		orders = append(orders, o.toDomain())
	}
	return domain.Customer{ID: r.ID, Name: r.Name, Email: r.Email, Orders: orders}
}

type orderRow struct {
	ID          int64        `gorm:"primaryKey;autoIncrement"`
	Description string       `gorm:"not null"`
	CustomerID  int64        `gorm:"not null;index"`
	Customer    *customerRow `gorm:"foreignKey:CustomerID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}

func (orderRow) TableName() string { return "orders" }

func (r orderRow) toDomain() domain.Order {
	return domain.Order{ID: r.ID, Description: r.Description, CustomerID: r.CustomerID}
}

type productRow struct {
	ID            int64   `gorm:"primaryKey;autoIncrement"`
	Name          string  `gorm:"not null"`
	Price         float64 `gorm:"not null;check:price >= 0"`
	Category      string  `gorm:"not null"`
	StockQuantity int64   `gorm:"not null;check:stock_quantity >= 0"`
}

func (productRow) TableName() string { return "products" }

func (r productRow) toDomain() domain.Product {
	return domain.Product{
		ID:            r.ID,
		Name:          r.Name,
		Price:         r.Price,
		Category:      r.Category,
		StockQuantity: r.StockQuantity,
	}
}

type paymentRow struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	OrderID       int64     `gorm:"not null;index"`
	Order         *orderRow `gorm:"foreignKey:OrderID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	Amount        float64   `gorm:"not null;check:amount >= 0"`
	Status        string    `gorm:"not null;default:pending;check:status IN ('pending', 'paid', 'cancelled')"`
	PaymentMethod string    `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime"`
}

func (paymentRow) TableName() string { return "payments" }

func (r paymentRow) toDomain() domain.Payment {
	return domain.Payment{
		ID:            r.ID,
		OrderID:       r.OrderID,
		Amount:        r.Amount,
		Status:        domain.PaymentStatus(r.Status),
		PaymentMethod: r.PaymentMethod,
		CreatedAt:     r.CreatedAt.UTC(),
	}
}

type deliveryRow struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Address      string    `gorm:"not null"`
	Status       string    `gorm:"not null;default:pending"`
	DeliveryDate time.Time `gorm:"not null"`
	OrderID      int64     `gorm:"not null;index"`
	Order        *orderRow `gorm:"foreignKey:OrderID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}

func (deliveryRow) TableName() string { return "deliveries" }

func (r deliveryRow) toDomain() domain.Delivery {
	return domain.Delivery{
		ID:           r.ID,
		Address:      r.Address,
		Status:       r.Status,
		DeliveryDate: r.DeliveryDate.UTC(),
		OrderID:      r.OrderID,
	}
}
