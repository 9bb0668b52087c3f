package eventdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/domain/model/event"
)

// IOrderJournal 訂單生命週期日誌
// tracking時間軸與audit都從這裡還原
type IOrderJournal interface {
	AppendOrderEvent(ctx context.Context, orderID string, evt event.Event) error
	GetStatusHistory(ctx context.Context, orderID string) ([]StatusRecord, error)
}

// StatusRecord 單筆狀態變更，tracking顯示用
type StatusRecord struct {
	Status     model.OrderStatus `json:"status"`
	OccurredAt time.Time         `json:"occurred_at"`
}

type OrderJournal struct {
	dao *EventDao
}

func NewOrderJournal(dao *EventDao) *OrderJournal {
	return &OrderJournal{dao: dao}
}

func orderStreamID(orderID string) string {
	return fmt.Sprintf("order-%s", orderID)
}

func (j *OrderJournal) AppendOrderEvent(ctx context.Context, orderID string, evt event.Event) error {
	return j.dao.AppendEvent(ctx, orderStreamID(orderID), string(evt.Type()), evt)
}

// GetStatusHistory 從事件流還原狀態時間軸
func (j *OrderJournal) GetStatusHistory(ctx context.Context, orderID string) ([]StatusRecord, error) {
	events, err := j.dao.ReadEvents(ctx, orderStreamID(orderID))
	if err != nil {
		return nil, err
	}

	var records []StatusRecord
	for _, resolved := range events {
		switch event.EventType(resolved.Event.EventType) {
		case event.OrderPlacedEventName:
			var e event.OrderPlacedEvent
			if err := json.Unmarshal(resolved.Event.Data, &e); err != nil {
				return nil, fmt.Errorf("%w: %s", ErrEventFormat, err)
			}
			records = append(records, StatusRecord{
				Status:     model.OrderStatusPending,
				OccurredAt: e.CreatedAt,
			})
		case event.OrderStatusChangedEventName:
			var e event.OrderStatusChangedEvent
			if err := json.Unmarshal(resolved.Event.Data, &e); err != nil {
				return nil, fmt.Errorf("%w: %s", ErrEventFormat, err)
			}
			records = append(records, StatusRecord{
				Status:     e.ToStatus,
				OccurredAt: e.CreatedAt,
			})
		case event.OrderCancelledEventName:
			var e event.OrderCancelledEvent
			if err := json.Unmarshal(resolved.Event.Data, &e); err != nil {
				return nil, fmt.Errorf("%w: %s", ErrEventFormat, err)
			}
			records = append(records, StatusRecord{
				Status:     model.OrderStatusCancelled,
				OccurredAt: e.CreatedAt,
			})
		}
	}
	return records, nil
}

var _ IOrderJournal = (*OrderJournal)(nil)
