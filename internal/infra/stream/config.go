package stream

import (
	"errors"
	"time"
)

var ErrInvalidConfig = errors.New("invalid stream config")

// Config represents the configuration for Kafka client
type Config struct {
	// Broker 配置
	Brokers []string
	Topic   string

	// 消費者配置
	ConsumerGroup string

	// 生產者配置
	RequiredAcks int
	BatchSize    int
	BatchTimeout time.Duration

	// 通用配置
	MinBytes       int
	MaxBytes       int
	MaxWait        time.Duration
	CommitInterval time.Duration
	RetryAttempts  int

	// 重連相關配置
	RetryBackoffMin time.Duration
	RetryBackoffMax time.Duration
}

// DefaultConfig returns a Config with default settings
func DefaultConfig(brokers []string, topic string) *Config {
	return &Config{
		Brokers:         brokers,
		Topic:           topic,
		RequiredAcks:    -1, // 等待所有副本確認
		BatchSize:       100,
		BatchTimeout:    time.Second,
		MinBytes:        10e3, // 10KB
		MaxBytes:        10e6, // 10MB
		MaxWait:         time.Second,
		CommitInterval:  100 * time.Millisecond,
		RetryAttempts:   3,
		RetryBackoffMin: 200 * time.Millisecond,
		RetryBackoffMax: 5 * time.Second,
	}
}

func (c *Config) Validate() error {
	if len(c.Brokers) == 0 {
		return errors.Join(ErrInvalidConfig, errors.New("brokers is empty"))
	}
	if c.Topic == "" {
		return errors.Join(ErrInvalidConfig, errors.New("topic is empty"))
	}
	return nil
}
