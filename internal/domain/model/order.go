package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus 訂單狀態，happy path單向推進，cancelled為非終態皆可達的終態
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusReadyToDeliver OrderStatus = "ready_to_deliver"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// OrderStatusRank happy path上的順序，用於驗證單向推進
var OrderStatusRank = map[OrderStatus]int{
	OrderStatusPending:        0,
	OrderStatusProcessing:     1,
	OrderStatusReadyToDeliver: 2,
	OrderStatusShipped:        3,
	OrderStatusDelivered:      4,
}

func IsValidOrderStatus(status string) bool {
	switch OrderStatus(status) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusReadyToDeliver,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal delivered與cancelled之後不允許任何轉移
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo 驗證狀態轉移
// happy path只允許往下一階，cancelled可由任何非終態進入
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	curRank, ok := OrderStatusRank[s]
	if !ok {
		return false
	}
	nextRank, ok := OrderStatusRank[next]
	if !ok {
		return false
	}
	return nextRank == curRank+1
}

type Order struct {
	OrderID           string          `gorm:"primaryKey;type:varchar(255)" json:"order_id"`
	UserID            int             `gorm:"not null;index" json:"user_id"`
	OrderItems        []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items"` // 一對多，級聯刪除
	Subtotal          decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"subtotal"`
	ShippingFee       decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"shipping_fee"`
	Tax               decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"tax"`
	Amount            decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"amount"`
	Status            OrderStatus     `gorm:"not null;type:varchar(30);default:'pending'" json:"status"`
	ShippingAddress   string          `gorm:"not null;type:varchar(255)" json:"shipping_address"`
	DeliveryMethod    string          `gorm:"not null;type:varchar(20)" json:"delivery_method"`
	TrackingNumber    string          `gorm:"type:varchar(100)" json:"tracking_number"`
	EstimatedDelivery time.Time       `json:"estimated_delivery"`
	OrderDate         time.Time       `gorm:"not null" json:"order_date"`
	// 配送角色指派
	DeliveryUserID int `gorm:"index" json:"delivery_user_id"`
	BaseModel
}

type OrderItem struct {
	OrderID   string          `gorm:"primaryKey;type:varchar(255)" json:"order_id"`   // 外鍵，關聯到 Order
	ProductID string          `gorm:"primaryKey;type:varchar(255)" json:"product_id"` // 外鍵，關聯到 Product
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	LensType  string          `gorm:"type:varchar(20)" json:"lens_type,omitempty"`
	LensPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"lens_price"`
	BaseModel
}

// OrderItemData for command and event
type OrderItemData struct {
	OrderID     string          `json:"order_id"`
	ProductID   string          `json:"product_id"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Amount      decimal.Decimal `json:"amount"`
	ProductName string          `json:"product_name"`
}
