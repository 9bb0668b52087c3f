package worker

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/domain/model/event"
	"github.com/luxoptic/optistore/internal/infra/stream"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type stubConsumer struct {
	msgCh chan stream.Message
	errCh chan error

	mu        sync.Mutex
	committed []stream.Message
}

func newStubConsumer() *stubConsumer {
	return &stubConsumer{
		msgCh: make(chan stream.Message, 16),
		errCh: make(chan error, 1),
	}
}

func (s *stubConsumer) Consume(ctx context.Context) (<-chan stream.Message, <-chan error) {
	return s.msgCh, s.errCh
}

func (s *stubConsumer) CommitMessages(ctx context.Context, msgs ...stream.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed = append(s.committed, msgs...)
	return nil
}

func (s *stubConsumer) Close() error { return nil }

func (s *stubConsumer) committedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.committed)
}

type recordingMail struct {
	mu      sync.Mutex
	updates []model.OrderStatus
}

func (r *recordingMail) SendOrderConfirmation(to string, order *model.Order, items []model.OrderItemData) error {
	return nil
}

func (r *recordingMail) SendShippingUpdate(to string, orderID string, status model.OrderStatus, trackingNumber string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, status)
	return nil
}

func (r *recordingMail) SendAppointmentConfirmation(to string, appointment *model.Appointment) error {
	return nil
}

func (r *recordingMail) sentStatuses() []model.OrderStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.OrderStatus, len(r.updates))
	copy(out, r.updates)
	return out
}

func eventMessage(t *testing.T, eventType event.EventType, payload interface{}) stream.Message {
	t.Helper()
	value, err := json.Marshal(payload)
	require.NoError(t, err)
	return stream.Message{
		Value:   value,
		Headers: []stream.Header{{Key: "event_type", Value: []byte(eventType)}},
	}
}

func runNotifier(t *testing.T) (*stubConsumer, *recordingMail, context.CancelFunc) {
	t.Helper()

	consumer := newStubConsumer()
	mails := &recordingMail{}
	logger := zerolog.Nop()
	notifier := NewOrderNotifier(consumer, mails, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	go notifier.Run(ctx)
	t.Cleanup(cancel)
	return consumer, mails, cancel
}

func TestNotifierSendsMailOnShipped(t *testing.T) {
	consumer, mails, _ := runNotifier(t)

	consumer.msgCh <- eventMessage(t, event.OrderStatusChangedEventName, &event.OrderStatusChangedEvent{
		OrderID:        "ORD-1",
		UserEmail:      "mei@example.com",
		ToStatus:       model.OrderStatusShipped,
		TrackingNumber: "TRK-abc",
	})

	require.Eventually(t, func() bool {
		return len(mails.sentStatuses()) == 1
	}, time.Second, 10*time.Millisecond)
	require.Equal(t, model.OrderStatusShipped, mails.sentStatuses()[0])
}

func TestNotifierIgnoresIntermediateStatuses(t *testing.T) {
	consumer, mails, _ := runNotifier(t)

	consumer.msgCh <- eventMessage(t, event.OrderStatusChangedEventName, &event.OrderStatusChangedEvent{
		OrderID:   "ORD-1",
		UserEmail: "mei@example.com",
		ToStatus:  model.OrderStatusProcessing,
	})

	// processing不寄信但仍要commit
	require.Eventually(t, func() bool {
		return consumer.committedCount() == 1
	}, time.Second, 10*time.Millisecond)
	require.Empty(t, mails.sentStatuses())
}

func TestNotifierSendsMailOnCancelled(t *testing.T) {
	consumer, mails, _ := runNotifier(t)

	consumer.msgCh <- eventMessage(t, event.OrderCancelledEventName, &event.OrderCancelledEvent{
		OrderID:   "ORD-1",
		UserEmail: "mei@example.com",
	})

	require.Eventually(t, func() bool {
		return len(mails.sentStatuses()) == 1
	}, time.Second, 10*time.Millisecond)
	require.Equal(t, model.OrderStatusCancelled, mails.sentStatuses()[0])
}

func TestNotifierCommitsBadMessages(t *testing.T) {
	consumer, mails, _ := runNotifier(t)

	// 缺event_type header的壞訊息不可卡住partition
	consumer.msgCh <- stream.Message{Value: []byte("junk")}
	consumer.msgCh <- eventMessage(t, event.OrderStatusChangedEventName, &event.OrderStatusChangedEvent{
		OrderID:   "ORD-2",
		UserEmail: "mei@example.com",
		ToStatus:  model.OrderStatusDelivered,
	})

	require.Eventually(t, func() bool {
		return consumer.committedCount() == 2
	}, time.Second, 10*time.Millisecond)
	require.Equal(t, []model.OrderStatus{model.OrderStatusDelivered}, mails.sentStatuses())
}
