package kafka

import (
	"fmt"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

// TopicRecordEvents задаёт топик по умолчанию для событий об изменении записей.
const TopicRecordEvents = "easyorder.records.events"

// Kafka headers, по которым потребители фильтруют события без разбора тела.
const (
	HeaderEventID   = "x-event-id"
	HeaderEventType = "x-event-type"
	HeaderEntity    = "x-entity"
)

// EventType возвращает тип события вида "<entity>.<action>", например "payment.updated".
func EventType(event domain.ChangeEvent) string {
	return fmt.Sprintf("%s.%s", event.Entity, event.Action)
}

// MessageKey возвращает ключ партиционирования: все события одной записи попадают
// в одну партицию и читаются по порядку.
func MessageKey(event domain.ChangeEvent) string {
	return fmt.Sprintf("%s:%d", event.Entity, event.EntityID)
}
