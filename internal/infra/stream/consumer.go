package stream

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
)

var ErrConsumerClosed = errors.New("consumer is closed")

// Consumer interface defines the methods that a Kafka consumer must implement
type Consumer interface {
	// Consume 開始消費，回傳訊息與錯誤通道，ctx取消時結束
	Consume(ctx context.Context) (<-chan Message, <-chan error)
	// CommitMessages 手動commit
	CommitMessages(ctx context.Context, msgs ...Message) error
	Close() error
}

// kafkaConsumer implements the Consumer interface
type kafkaConsumer struct {
	reader *kafka.Reader
	cfg    *Config
	closed atomic.Bool
}

// NewConsumer creates a new Kafka consumer
func NewConsumer(cfg *Config) (Consumer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          cfg.Topic,
		GroupID:        cfg.ConsumerGroup,
		MinBytes:       cfg.MinBytes,
		MaxBytes:       cfg.MaxBytes,
		MaxWait:        cfg.MaxWait,
		CommitInterval: cfg.CommitInterval,

		// 重連機制設定
		Dialer: &kafka.Dialer{
			Timeout:   10 * time.Second,
			DualStack: true,
			KeepAlive: 30 * time.Second,
		},

		// 錯誤處理
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Printf("kafka reader error: "+msg, args...)
		}),

		ReadBackoffMin: cfg.RetryBackoffMin,
		ReadBackoffMax: cfg.RetryBackoffMax,
	})

	return &kafkaConsumer{
		reader: reader,
		cfg:    cfg,
	}, nil
}

// Consume 持續讀取訊息送進channel
// ctx取消或Close後結束，channel會關閉
func (c *kafkaConsumer) Consume(ctx context.Context) (<-chan Message, <-chan error) {
	msgCh := make(chan Message)
	errCh := make(chan error, 1)

	go func() {
		defer close(msgCh)
		defer close(errCh)

		for {
			if c.closed.Load() {
				return
			}

			kafkaMsg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return
				}
				select {
				case errCh <- err:
				case <-ctx.Done():
					return
				}
				continue
			}

			select {
			case msgCh <- FromKafkaMessage(kafkaMsg):
			case <-ctx.Done():
				return
			}
		}
	}()

	return msgCh, errCh
}

func (c *kafkaConsumer) CommitMessages(ctx context.Context, msgs ...Message) error {
	if c.closed.Load() {
		return ErrConsumerClosed
	}

	kafkaMsgs := make([]kafka.Message, 0, len(msgs))
	for _, msg := range msgs {
		kafkaMsgs = append(kafkaMsgs, kafka.Message{
			Topic:     msg.Topic,
			Partition: msg.Partition,
			Offset:    msg.Offset,
		})
	}
	return c.reader.CommitMessages(ctx, kafkaMsgs...)
}

func (c *kafkaConsumer) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.reader.Close()
}
