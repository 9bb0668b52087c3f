package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/domain/model/event"
	"github.com/luxoptic/optistore/internal/infra/repository/db"
	"github.com/luxoptic/optistore/internal/infra/repository/eventdb"
	"github.com/luxoptic/optistore/internal/infra/stream"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotExist            = errors.New("order is not exist")
	ErrInvalidStateTransition   = errors.New("invalid order state transition")
	ErrNotOrderOwner            = errors.New("order does not belong to this user")
	ErrDeliveryScopedTransition = errors.New("delivery role can only move orders between ready_to_deliver and delivered")
)

// TrackingStage tracking顯示的固定五階段之一
type TrackingStage struct {
	Status    model.OrderStatus `json:"status"`
	Reached   bool              `json:"reached"`
	ReachedAt *time.Time        `json:"reached_at,omitempty"`
}

// TrackingView 訂單追蹤畫面資料
// 狀態由外部供給，此處只做state-to-view映射，cancelled短路成獨立終態
type TrackingView struct {
	OrderID           string            `json:"order_id"`
	Status            model.OrderStatus `json:"status"`
	Cancelled         bool              `json:"cancelled"`
	TrackingNumber    string            `json:"tracking_number,omitempty"`
	EstimatedDelivery time.Time         `json:"estimated_delivery"`
	Stages            []TrackingStage   `json:"stages"`
}

type IOrderService interface {
	PlaceOrder(ctx context.Context, order *model.Order, userEmail string) error
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
	GetOrdersByUserID(ctx context.Context, userID int) ([]model.Order, error)
	GetOrdersByDeliveryUser(ctx context.Context, deliveryUserID int) ([]model.Order, error)
	GetAllOrders(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, next model.OrderStatus) error
	CancelOrder(ctx context.Context, orderID string, reason string) error
	AssignDelivery(ctx context.Context, orderID string, deliveryUserID int) error
	GetTracking(ctx context.Context, orderID string, userID int) (*TrackingView, error)
}

// 購物車階段只會寫入redis，PlaceOrder之後訂單才落db
// 每張訂單一條event stream，狀態時間軸從journal還原
type OrderService struct {
	orderRepo      db.IOrderRepository
	userRepo       db.IUserRepository
	productService IProductService
	journal        eventdb.IOrderJournal
	orderProducer  stream.Producer
	logger         *zerolog.Logger
}

func NewOrderService(
	orderRepo db.IOrderRepository,
	userRepo db.IUserRepository,
	productService IProductService,
	journal eventdb.IOrderJournal,
	orderProducer stream.Producer,
	logger *zerolog.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		userRepo:       userRepo,
		productService: productService,
		journal:        journal,
		orderProducer:  orderProducer,
		logger:         logger,
	}
}

// 通用的事件消息準備函數
func prepareEventMessage(userID int, eventType event.EventType, payload interface{}) (stream.Message, error) {
	eventBytes, err := json.Marshal(payload)
	if err != nil {
		return stream.Message{}, err
	}

	return stream.Message{
		Key:   []byte(strconv.Itoa(userID)),
		Value: eventBytes,
		Headers: []stream.Header{
			{
				Key:   "event_type",
				Value: []byte(eventType),
			},
		},
	}, nil
}

// publishEvent 次要事件發布，失敗只記錄，交由後續程序處理
func (o *OrderService) publishEvent(ctx context.Context, userID int, evt event.Event) {
	msg, err := prepareEventMessage(userID, evt.Type(), evt)
	if err != nil {
		o.logger.Error().Err(err).Str("event_type", string(evt.Type())).Msg("failed to prepare order event")
		return
	}
	if err := o.orderProducer.Produce(ctx, []stream.Message{msg}); err != nil {
		o.logger.Error().Err(err).Str("event_type", string(evt.Type())).Msg("failed to publish order event")
	}
}

// PlaceOrder 結帳完成後落單
// db為主要寫入，journal與kafka為次要事件，失敗記錄不影響主流程
func (o *OrderService) PlaceOrder(ctx context.Context, order *model.Order, userEmail string) error {
	order.Status = model.OrderStatusPending
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now()
	}

	if err := o.orderRepo.CreateOrder(ctx, order); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	items := make([]model.OrderItemData, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		items = append(items, model.OrderItemData{
			OrderID:   order.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Amount:    item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}

	evt := &event.OrderPlacedEvent{
		BaseEvent: event.BaseEvent{
			EventID:     uuid.NewString(),
			AggregateID: order.OrderID,
			CreatedAt:   time.Now(),
			EventType:   event.OrderPlacedEventName,
		},
		UserID:    order.UserID,
		OrderID:   order.OrderID,
		UserEmail: userEmail,
		OrderDate: order.OrderDate,
		Items:     items,
		Amount:    order.Amount,
	}

	if err := o.journal.AppendOrderEvent(ctx, order.OrderID, evt); err != nil {
		o.logger.Error().Err(err).Str("order_id", order.OrderID).Msg("failed to append order placed event")
	}
	o.publishEvent(ctx, order.UserID, evt)

	return nil
}

func (o *OrderService) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := o.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, ErrOrderNotExist
	}
	return order, nil
}

func (o *OrderService) GetOrdersByUserID(ctx context.Context, userID int) ([]model.Order, error) {
	return o.orderRepo.GetOrdersByUserID(ctx, userID)
}

func (o *OrderService) GetOrdersByDeliveryUser(ctx context.Context, deliveryUserID int) ([]model.Order, error) {
	return o.orderRepo.GetOrdersByDeliveryUser(ctx, deliveryUserID)
}

func (o *OrderService) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	return o.orderRepo.GetAllOrders(ctx)
}

// UpdateOrderStatus 推進訂單狀態
// happy path只允許往下一階，終態後不允許任何轉移
func (o *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, next model.OrderStatus) error {
	order, err := o.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return ErrOrderNotExist
	}

	if next == model.OrderStatusCancelled {
		return o.CancelOrder(ctx, orderID, "")
	}

	if !order.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, order.Status, next)
	}

	// 出貨時補發追蹤編號
	if next == model.OrderStatusShipped && order.TrackingNumber == "" {
		order.TrackingNumber = "TRK-" + uuid.NewString()[:8]
		if err := o.orderRepo.UpdateTrackingNumber(ctx, orderID, order.TrackingNumber); err != nil {
			return err
		}
	}

	if err := o.orderRepo.UpdateOrderStatus(ctx, orderID, next); err != nil {
		return err
	}

	userEmail := o.lookupUserEmail(ctx, order.UserID)
	evt := &event.OrderStatusChangedEvent{
		BaseEvent: event.BaseEvent{
			EventID:     uuid.NewString(),
			AggregateID: orderID,
			CreatedAt:   time.Now(),
			EventType:   event.OrderStatusChangedEventName,
		},
		OrderID:        orderID,
		UserID:         order.UserID,
		UserEmail:      userEmail,
		FromStatus:     order.Status,
		ToStatus:       next,
		TrackingNumber: order.TrackingNumber,
	}

	if err := o.journal.AppendOrderEvent(ctx, orderID, evt); err != nil {
		o.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to append status event")
	}
	o.publishEvent(ctx, order.UserID, evt)

	return nil
}

// CancelOrder 取消訂單並回補庫存
// cancelled可由任何非終態進入
func (o *OrderService) CancelOrder(ctx context.Context, orderID string, reason string) error {
	order, err := o.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return ErrOrderNotExist
	}

	if !order.Status.CanTransitionTo(model.OrderStatusCancelled) {
		return fmt.Errorf("%w: %s -> cancelled", ErrInvalidStateTransition, order.Status)
	}

	if err := o.orderRepo.UpdateOrderStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
		return err
	}

	// 庫存個別回補，單項失敗記錄後繼續
	for _, item := range order.OrderItems {
		if err := o.productService.RestoreProductStock(ctx, item.ProductID, uint(item.Quantity)); err != nil {
			o.logger.Error().Err(err).
				Str("order_id", orderID).
				Str("product_id", item.ProductID).
				Msg("failed to restore stock on cancel")
		}
	}

	evt := &event.OrderCancelledEvent{
		BaseEvent: event.BaseEvent{
			EventID:     uuid.NewString(),
			AggregateID: orderID,
			CreatedAt:   time.Now(),
			EventType:   event.OrderCancelledEventName,
		},
		OrderID:    orderID,
		UserID:     order.UserID,
		UserEmail:  o.lookupUserEmail(ctx, order.UserID),
		FromStatus: order.Status,
		Message:    reason,
	}

	if err := o.journal.AppendOrderEvent(ctx, orderID, evt); err != nil {
		o.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to append cancel event")
	}
	o.publishEvent(ctx, order.UserID, evt)

	return nil
}

func (o *OrderService) AssignDelivery(ctx context.Context, orderID string, deliveryUserID int) error {
	order, err := o.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return ErrOrderNotExist
	}
	order.DeliveryUserID = deliveryUserID
	return o.orderRepo.UpdateOrder(ctx, order)
}

// GetTracking 還原訂單追蹤畫面
// 固定五階段進度條，cancelled短路
// userID為0時不檢查擁有者(admin用)
func (o *OrderService) GetTracking(ctx context.Context, orderID string, userID int) (*TrackingView, error) {
	order, err := o.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, ErrOrderNotExist
	}
	if userID != 0 && order.UserID != userID {
		return nil, ErrNotOrderOwner
	}

	view := &TrackingView{
		OrderID:           order.OrderID,
		Status:            order.Status,
		Cancelled:         order.Status == model.OrderStatusCancelled,
		TrackingNumber:    order.TrackingNumber,
		EstimatedDelivery: order.EstimatedDelivery,
	}

	// journal不可用時degrade成沒有時間戳的進度條
	var history []eventdb.StatusRecord
	if records, err := o.journal.GetStatusHistory(ctx, orderID); err == nil {
		history = records
	} else {
		o.logger.Warn().Err(err).Str("order_id", orderID).Msg("failed to read order journal")
	}

	reachedAt := make(map[model.OrderStatus]time.Time, len(history))
	for _, record := range history {
		if _, ok := reachedAt[record.Status]; !ok {
			reachedAt[record.Status] = record.OccurredAt
		}
	}

	currentRank, onPath := model.OrderStatusRank[order.Status]
	for _, status := range []model.OrderStatus{
		model.OrderStatusPending,
		model.OrderStatusProcessing,
		model.OrderStatusReadyToDeliver,
		model.OrderStatusShipped,
		model.OrderStatusDelivered,
	} {
		stage := TrackingStage{Status: status}
		if onPath && model.OrderStatusRank[status] <= currentRank {
			stage.Reached = true
			if at, ok := reachedAt[status]; ok {
				t := at
				stage.ReachedAt = &t
			}
		}
		view.Stages = append(view.Stages, stage)
	}

	return view, nil
}

func (o *OrderService) lookupUserEmail(ctx context.Context, userID int) string {
	user, err := o.userRepo.GetUserByID(ctx, userID)
	if err != nil || user == nil {
		return ""
	}
	return user.UserEmail
}

var _ IOrderService = (*OrderService)(nil)
