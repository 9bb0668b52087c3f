package service

import (
	"context"
	"testing"
	"time"

	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/domain/model/event"
	"github.com/luxoptic/optistore/internal/infra/repository/eventdb"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type orderServiceFixture struct {
	svc      *OrderService
	orders   *fakeOrderRepo
	users    *fakeUserRepo
	products *fakeProductService
	journal  *fakeJournal
	producer *fakeProducer
}

func setupOrderService(t *testing.T) *orderServiceFixture {
	t.Helper()

	orders := newFakeOrderRepo()
	users := newFakeUserRepo()
	products := newFakeProductService()
	journal := newFakeJournal()
	producer := &fakeProducer{}
	logger := zerolog.Nop()

	svc := NewOrderService(orders, users, products, journal, producer, &logger)
	return &orderServiceFixture{
		svc:      svc,
		orders:   orders,
		users:    users,
		products: products,
		journal:  journal,
		producer: producer,
	}
}

func sampleOrder(orderID string, userID int, status model.OrderStatus) *model.Order {
	return &model.Order{
		OrderID: orderID,
		UserID:  userID,
		Status:  status,
		Amount:  decimal.RequireFromString("178.50"),
		OrderItems: []model.OrderItem{
			{OrderID: orderID, ProductID: "p1", Quantity: 2, Price: decimal.RequireFromString("50")},
		},
		OrderDate: time.Now(),
	}
}

func TestPlaceOrderPersistsAndPublishes(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	order := sampleOrder("ORD-100001", 7, "")
	require.NoError(t, f.svc.PlaceOrder(ctx, order, "buyer@example.com"))

	saved, err := f.orders.GetOrderByID(ctx, "ORD-100001")
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusPending, saved.Status)

	require.Len(t, f.journal.appended["ORD-100001"], 1)
	require.Equal(t, event.OrderPlacedEventName, f.journal.appended["ORD-100001"][0].Type())

	require.Len(t, f.producer.messages, 1)
	require.Equal(t, []byte("7"), f.producer.messages[0].Key)
}

func TestUpdateOrderStatusHappyPath(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()
	f.orders.CreateOrder(ctx, sampleOrder("ORD-1", 7, model.OrderStatusPending))

	require.NoError(t, f.svc.UpdateOrderStatus(ctx, "ORD-1", model.OrderStatusProcessing))

	order, _ := f.orders.GetOrderByID(ctx, "ORD-1")
	require.Equal(t, model.OrderStatusProcessing, order.Status)
}

func TestUpdateOrderStatusRejectsSkip(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()
	f.orders.CreateOrder(ctx, sampleOrder("ORD-1", 7, model.OrderStatusPending))

	err := f.svc.UpdateOrderStatus(ctx, "ORD-1", model.OrderStatusShipped)
	require.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestUpdateOrderStatusRejectsAfterTerminal(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()
	f.orders.CreateOrder(ctx, sampleOrder("ORD-1", 7, model.OrderStatusDelivered))

	err := f.svc.UpdateOrderStatus(ctx, "ORD-1", model.OrderStatusCancelled)
	require.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestUpdateOrderStatusGeneratesTrackingOnShipped(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()
	f.orders.CreateOrder(ctx, sampleOrder("ORD-1", 7, model.OrderStatusReadyToDeliver))

	require.NoError(t, f.svc.UpdateOrderStatus(ctx, "ORD-1", model.OrderStatusShipped))

	order, _ := f.orders.GetOrderByID(ctx, "ORD-1")
	require.NotEmpty(t, order.TrackingNumber)
	require.Contains(t, order.TrackingNumber, "TRK-")
}

func TestUpdateOrderStatusNotExist(t *testing.T) {
	f := setupOrderService(t)

	err := f.svc.UpdateOrderStatus(context.Background(), "ORD-NOPE", model.OrderStatusProcessing)
	require.ErrorIs(t, err, ErrOrderNotExist)
}

func TestCancelOrderRestoresStock(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()
	f.products.addProduct(eyeglassesProduct("p1", "50"))
	f.orders.CreateOrder(ctx, sampleOrder("ORD-1", 7, model.OrderStatusProcessing))

	require.NoError(t, f.svc.CancelOrder(ctx, "ORD-1", "changed my mind"))

	order, _ := f.orders.GetOrderByID(ctx, "ORD-1")
	require.Equal(t, model.OrderStatusCancelled, order.Status)
	require.Equal(t, []string{"p1"}, f.products.restoreCalls)
	require.Equal(t, uint(12), f.products.stock["p1"])
}

func TestCancelOrderRejectsDelivered(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()
	f.orders.CreateOrder(ctx, sampleOrder("ORD-1", 7, model.OrderStatusDelivered))

	err := f.svc.CancelOrder(ctx, "ORD-1", "")
	require.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestGetTrackingOwnerCheck(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()
	f.orders.CreateOrder(ctx, sampleOrder("ORD-1", 7, model.OrderStatusShipped))

	_, err := f.svc.GetTracking(ctx, "ORD-1", 8)
	require.ErrorIs(t, err, ErrNotOrderOwner)

	// userID 0 略過擁有者檢查
	view, err := f.svc.GetTracking(ctx, "ORD-1", 0)
	require.NoError(t, err)
	require.Equal(t, "ORD-1", view.OrderID)
}

func TestGetTrackingStages(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()
	f.orders.CreateOrder(ctx, sampleOrder("ORD-1", 7, model.OrderStatusShipped))

	placedAt := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	f.journal.history["ORD-1"] = []eventdb.StatusRecord{
		{Status: model.OrderStatusPending, OccurredAt: placedAt},
		{Status: model.OrderStatusProcessing, OccurredAt: placedAt.Add(1 * time.Hour)},
		{Status: model.OrderStatusReadyToDeliver, OccurredAt: placedAt.Add(2 * time.Hour)},
		{Status: model.OrderStatusShipped, OccurredAt: placedAt.Add(3 * time.Hour)},
	}

	view, err := f.svc.GetTracking(ctx, "ORD-1", 7)
	require.NoError(t, err)
	require.False(t, view.Cancelled)
	require.Len(t, view.Stages, 5)

	// shipped以前(含)皆reached且有時間戳，delivered未達
	for i, stage := range view.Stages[:4] {
		require.True(t, stage.Reached, "stage %d", i)
		require.NotNil(t, stage.ReachedAt, "stage %d", i)
	}
	require.False(t, view.Stages[4].Reached)
	require.Nil(t, view.Stages[4].ReachedAt)
}

func TestGetTrackingCancelledShortCircuits(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()
	f.orders.CreateOrder(ctx, sampleOrder("ORD-1", 7, model.OrderStatusCancelled))

	view, err := f.svc.GetTracking(ctx, "ORD-1", 7)
	require.NoError(t, err)
	require.True(t, view.Cancelled)
	for _, stage := range view.Stages {
		require.False(t, stage.Reached)
	}
}

func TestAssignDelivery(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()
	f.orders.CreateOrder(ctx, sampleOrder("ORD-1", 7, model.OrderStatusReadyToDeliver))

	require.NoError(t, f.svc.AssignDelivery(ctx, "ORD-1", 42))

	order, _ := f.orders.GetOrderByID(ctx, "ORD-1")
	require.Equal(t, 42, order.DeliveryUserID)
}
