package kafka

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// EventType определяет тип события заказа.
type EventType string

const (
	// EventTypeOrderCreated — заказ создан со статусом pending.
	EventTypeOrderCreated EventType = "order.created"
	// EventTypeOrderStatusChanged — статус заказа изменился.
	EventTypeOrderStatusChanged EventType = "order.status_changed"
)

// Topics для Kafka.
const (
	TopicOrderEvents     = "orders.order.events"
	TopicDeadLetterQueue = "orders.dlq"
)

// OrderEvent представляет событие заказа для внешних потребителей.
type OrderEvent struct {
	EventType  EventType       `json:"event_type"`
	OrderID    string          `json:"order_id"`
	UserID     int64           `json:"user_id"`
	ProductID  int64           `json:"product_id"`
	Quantity   int32           `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     string          `json:"status"`
	Timestamp  time.Time       `json:"timestamp"`
}

// NewOrderEvent создает событие заказа из доменной записи.
func NewOrderEvent(eventType EventType, order domain.Order) *OrderEvent {
	return &OrderEvent{
		EventType:  eventType,
		OrderID:    order.ID,
		UserID:     order.UserID,
		ProductID:  order.ProductID,
		Quantity:   order.Quantity,
		TotalPrice: order.TotalPrice,
		Status:     string(order.Status),
		Timestamp:  time.Now().UTC(),
	}
}

// MarshalOrderEvent сериализует событие заказа в JSON-payload для outbox.
func MarshalOrderEvent(eventType EventType, order domain.Order) ([]byte, error) {
	return json.Marshal(NewOrderEvent(eventType, order))
}
