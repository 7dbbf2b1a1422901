// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package event

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
)

var (
	ErrNoBrokers = errors.New("no kafka brokers")
	ErrNoTopic   = errors.New("no kafka topic")

	_ SubscriptionFactory[struct{}] = (*KafkaFactory[struct{}])(nil)
	_ Subscription[struct{}]        = (*KafkaPublisher[struct{}])(nil)
)

// publishBatchTimeout bounds how long a single published call waits for
// its batch to flush. The kafka-go default is one second.
const publishBatchTimeout = 5 * time.Millisecond

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaFactory publishes every accepted event as a JSON message on [Topic].
// [Key] optionally derives the message key.
type KafkaFactory[T any] struct {
	Brokers []string
	Topic   string
	Key     func(T) []byte
}

func (f KafkaFactory[T]) New() (Subscription[T], error) {
	if len(f.Brokers) == 0 {
		return nil, ErrNoBrokers
	}
	if len(f.Topic) == 0 {
		return nil, ErrNoTopic
	}
	return &KafkaPublisher[T]{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(f.Brokers...),
			Topic:        f.Topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: publishBatchTimeout,
		},
		key: f.Key,
	}, nil
}

type KafkaPublisher[T any] struct {
	writer messageWriter
	key    func(T) []byte
}

func (p *KafkaPublisher[T]) Accept(ctx context.Context, t T) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	msg := kafka.Message{Value: data}
	if p.key != nil {
		msg.Key = p.key(t)
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher[T]) Close() error {
	return p.writer.Close()
}
