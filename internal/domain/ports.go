package domain

import (
	"context"
	"time"
)

// Entity задаёт имя сущности в событиях и метриках.
type Entity string

const (
	EntityCustomer Entity = "customer"
	EntityOrder    Entity = "order"
	EntityProduct  Entity = "product"
	EntityPayment  Entity = "payment"
	EntityDelivery Entity = "delivery"
)

// ChangeAction описывает вид изменения записи.
type ChangeAction string

const (
	ChangeCreated ChangeAction = "created"
	ChangeUpdated ChangeAction = "updated"
	ChangeDeleted ChangeAction = "deleted"
)

// ChangeEvent описывает уже зафиксированное в хранилище изменение.
type ChangeEvent struct {
	ID         string       `json:"id"`
	Entity     Entity       `json:"entity"`
	EntityID   int64        `json:"entity_id"`
	Action     ChangeAction `json:"action"`
	OccurredAt time.Time    `json:"occurred_at"`
	// Payload содержит состояние записи после изменения, пустой для удаления.
	Payload any `json:"payload,omitempty"`
}

// EventPublisher публикует события об изменениях наружу.
type EventPublisher interface {
	Publish(ctx context.Context, event ChangeEvent) error
}

// StoreChecker проверяет доступность хранилища (для readiness/health).
type StoreChecker interface {
	Ping(ctx context.Context) error
}
