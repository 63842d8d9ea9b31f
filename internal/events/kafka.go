package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/dtroode/blog-auth-server/internal/model"
)

// kafkaBatchTimeout bounds how long a single synchronous write waits for its
// batch to fill. The dispatcher writes one event at a time.
const kafkaBatchTimeout = 10 * time.Millisecond

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publishes events as JSON keyed by principal, so all events of a
// principal land on the same partition in order.
type KafkaSink struct {
	w     messageWriter
	topic string
}

func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	return &KafkaSink{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			BatchTimeout:           kafkaBatchTimeout,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
		topic: topic,
	}
}

func (s *KafkaSink) Emit(ctx context.Context, event model.TokenEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.PrincipalID.String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	if err := s.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write event to %s: %w", s.topic, err)
	}
	return nil
}

func (s *KafkaSink) Close() error { return s.w.Close() }
