package db

import (
	"context"

	"github.com/luxoptic/optistore/internal/domain/model"
)

// 購物車階段只會寫入redis，出帳後訂單才落db
type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create - 創建訂單
func (s *OrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

// Read - 根據ID查詢訂單
func (s *OrderRepo) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).Preload("OrderItems").First(&order, "order_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Read - 根據用戶ID查詢訂單
func (s *OrderRepo) GetOrdersByUserID(ctx context.Context, userID int) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).Preload("OrderItems").Where("user_id = ?", userID).Find(&orders).Error
	return orders, err
}

// Read - 根據配送員查詢訂單
func (s *OrderRepo) GetOrdersByDeliveryUser(ctx context.Context, deliveryUserID int) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).Preload("OrderItems").
		Where("delivery_user_id = ?", deliveryUserID).
		Where("status IN ?", []model.OrderStatus{
			model.OrderStatusReadyToDeliver,
			model.OrderStatusShipped,
		}).
		Find(&orders).Error
	return orders, err
}

// Read - 查詢所有訂單
func (s *OrderRepo) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).Preload("OrderItems").Find(&orders).Error
	return orders, err
}

// Read - 根據狀態查詢訂單
func (s *OrderRepo) GetOrdersByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).Preload("OrderItems").Where("status = ?", status).Find(&orders).Error
	return orders, err
}

// Update - 更新訂單
func (s *OrderRepo) UpdateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Save(order).Error
}

// Update - 更新訂單狀態
func (s *OrderRepo) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	return s.db.WithContext(ctx).Model(&model.Order{}).Where("order_id = ?", id).Update("status", status).Error
}

// Update - 更新追蹤編號
func (s *OrderRepo) UpdateTrackingNumber(ctx context.Context, id string, trackingNumber string) error {
	return s.db.WithContext(ctx).Model(&model.Order{}).Where("order_id = ?", id).Update("tracking_number", trackingNumber).Error
}

// Delete - 硬刪除訂單
func (s *OrderRepo) HardDeleteOrder(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Unscoped().Where("order_id = ?", id).Delete(&model.Order{}).Error
}

// 分頁查詢訂單
func (s *OrderRepo) GetOrdersPaginated(ctx context.Context, page, pageSize int) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	offset := (page - 1) * pageSize

	if err := s.db.WithContext(ctx).Model(&model.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := s.db.WithContext(ctx).Preload("OrderItems").Offset(offset).Limit(pageSize).Find(&orders).Error
	return orders, total, err
}

// CountOrdersByStatus dashboard彙總
func (s *OrderRepo) CountOrdersByStatus(ctx context.Context, status model.OrderStatus) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Order{}).Where("status = ?", status).Count(&total).Error
	return total, err
}
