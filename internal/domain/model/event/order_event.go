package event

import (
	"time"

	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/shopspring/decimal"
)

type EventType string

const (
	OrderPlacedEventName        EventType = "OrderPlaced"
	OrderStatusChangedEventName EventType = "OrderStatusChanged"
	OrderCancelledEventName     EventType = "OrderCancelled"
)

type Event interface {
	Type() EventType
	GetID() string
}

type BaseEvent struct {
	EventID     string    `json:"eventId"`
	AggregateID string    `json:"aggregateId"`
	CreatedAt   time.Time `json:"createdAt"`
	EventType   EventType `json:"eventType"`
}

func (e *BaseEvent) GetID() string {
	return e.EventID
}

// OrderPlacedEvent 結帳完成後發布
// 訂單階段 OrderItems不會再變動，之後只有status變動
type OrderPlacedEvent struct {
	BaseEvent
	UserID    int                   `json:"user_id"`
	OrderID   string                `json:"order_id"`
	UserEmail string                `json:"user_email"`
	OrderDate time.Time             `json:"order_date"`
	Items     []model.OrderItemData `json:"items"`
	Amount    decimal.Decimal       `json:"amount"`
}

func (e *OrderPlacedEvent) Type() EventType {
	return OrderPlacedEventName
}

type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID        string            `json:"order_id"`
	UserID         int               `json:"user_id"`
	UserEmail      string            `json:"user_email"`
	FromStatus     model.OrderStatus `json:"from_status"`
	ToStatus       model.OrderStatus `json:"to_status"`
	TrackingNumber string            `json:"tracking_number,omitempty"`
}

func (e *OrderStatusChangedEvent) Type() EventType {
	return OrderStatusChangedEventName
}

type OrderCancelledEvent struct {
	BaseEvent
	OrderID    string            `json:"order_id"`
	UserID     int               `json:"user_id"`
	UserEmail  string            `json:"user_email"`
	FromStatus model.OrderStatus `json:"from_status"`
	Message    string            `json:"message"` // 取消原因
}

func (e *OrderCancelledEvent) Type() EventType {
	return OrderCancelledEventName
}
