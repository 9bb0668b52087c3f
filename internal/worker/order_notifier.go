package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/domain/model/event"
	"github.com/luxoptic/optistore/internal/infra/stream"
	"github.com/luxoptic/optistore/internal/metrics"
	"github.com/luxoptic/optistore/internal/service"
	"github.com/rs/zerolog"
)

// OrderNotifier 訂單事件通知worker
// 消費訂單事件topic，shipped/delivered/cancelled時寄通知信
// 寄信失敗記錄後照常commit，避免壞訊息卡住整個partition
type OrderNotifier struct {
	consumer    stream.Consumer
	mailService service.IMailService
	logger      *zerolog.Logger
}

func NewOrderNotifier(consumer stream.Consumer, mailService service.IMailService, logger *zerolog.Logger) *OrderNotifier {
	return &OrderNotifier{
		consumer:    consumer,
		mailService: mailService,
		logger:      logger,
	}
}

// Run blocking直到ctx取消
func (w *OrderNotifier) Run(ctx context.Context) error {
	msgCh, errCh := w.consumer.Consume(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err, ok := <-errCh:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("order notifier consume error")
		case msg, ok := <-msgCh:
			if !ok {
				return nil
			}
			if err := w.handle(msg); err != nil {
				w.logger.Error().Err(err).Msg("failed to handle order event")
			}
			if err := w.consumer.CommitMessages(ctx, msg); err != nil {
				w.logger.Error().Err(err).Msg("failed to commit order event")
			}
		}
	}
}

func (w *OrderNotifier) handle(msg stream.Message) error {
	eventType := msg.HeaderValue("event_type")
	if eventType == nil {
		return fmt.Errorf("message missing event_type header")
	}

	switch event.EventType(string(eventType)) {
	case event.OrderStatusChangedEventName:
		var evt event.OrderStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			return fmt.Errorf("failed to unmarshal status event: %w", err)
		}
		return w.notifyStatusChange(&evt)
	case event.OrderCancelledEventName:
		var evt event.OrderCancelledEvent
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			return fmt.Errorf("failed to unmarshal cancel event: %w", err)
		}
		return w.notifyCancelled(&evt)
	default:
		// OrderPlaced的確認信由結帳流程直接寄，這裡略過
		return nil
	}
}

// notifyStatusChange 只有對顧客有意義的階段才寄信
func (w *OrderNotifier) notifyStatusChange(evt *event.OrderStatusChangedEvent) error {
	switch evt.ToStatus {
	case model.OrderStatusShipped, model.OrderStatusDelivered:
	default:
		return nil
	}
	if evt.UserEmail == "" {
		return nil
	}

	if err := w.mailService.SendShippingUpdate(evt.UserEmail, evt.OrderID, evt.ToStatus, evt.TrackingNumber); err != nil {
		metrics.NotificationFailures.WithLabelValues("shipping_update").Inc()
		return err
	}
	return nil
}

func (w *OrderNotifier) notifyCancelled(evt *event.OrderCancelledEvent) error {
	if evt.UserEmail == "" {
		return nil
	}
	if err := w.mailService.SendShippingUpdate(evt.UserEmail, evt.OrderID, model.OrderStatusCancelled, ""); err != nil {
		metrics.NotificationFailures.WithLabelValues("shipping_update").Inc()
		return err
	}
	return nil
}
