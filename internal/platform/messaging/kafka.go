package messaging

import (
	"context"
	"log/slog"
	"sync"

	"quorum/contexts/election-core/ballot-service/ports"
)

// Kafka is the event bus adapter used by the outbox relay worker.
// Current implementation is in-process publish/subscribe while runtime wiring
// is finalized for external brokers.
type Kafka struct {
	mu          sync.RWMutex
	subscribers map[string][]chan ports.OutboxMessage
	logger      *slog.Logger
}

func NewKafka(_ []string, logger *slog.Logger) (*Kafka, error) {
	return &Kafka{
		subscribers: make(map[string][]chan ports.OutboxMessage),
		logger:      logger,
	}, nil
}

func (k *Kafka) Publish(ctx context.Context, topic string, message ports.OutboxMessage) error {
	k.mu.RLock()
	subs := append([]chan ports.OutboxMessage(nil), k.subscribers[topic]...)
	k.mu.RUnlock()

	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sub <- message:
		default:
			if k.logger != nil {
				k.logger.Warn("dropping message for slow subscriber",
					"event", "kafka_publish_drop",
					"module", "internal/platform/messaging",
					"layer", "platform",
					"topic", topic,
					"outbox_id", message.OutboxID,
				)
			}
		}
	}

	if k.logger != nil {
		k.logger.Info("message published",
			"event", "kafka_publish",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"topic", topic,
			"outbox_id", message.OutboxID,
			"event_type", message.EventType,
		)
	}
	return nil
}

func (k *Kafka) Subscribe(
	ctx context.Context,
	topic string,
	consumerGroup string,
	handler func(context.Context, ports.OutboxMessage) error,
) error {
	ch := make(chan ports.OutboxMessage, 128)

	k.mu.Lock()
	k.subscribers[topic] = append(k.subscribers[topic], ch)
	k.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				k.removeSubscriber(topic, ch)
				return
			case message := <-ch:
				if err := handler(ctx, message); err != nil && k.logger != nil {
					k.logger.Error("consumer handler failed",
						"event", "kafka_consume_failed",
						"module", "internal/platform/messaging",
						"layer", "platform",
						"topic", topic,
						"consumer_group", consumerGroup,
						"outbox_id", message.OutboxID,
						"event_type", message.EventType,
						"error", err.Error(),
					)
				}
			}
		}
	}()
	return nil
}

func (k *Kafka) removeSubscriber(topic string, target chan ports.OutboxMessage) {
	k.mu.Lock()
	defer k.mu.Unlock()

	items := k.subscribers[topic]
	if len(items) == 0 {
		return
	}
	filtered := make([]chan ports.OutboxMessage, 0, len(items))
	for _, item := range items {
		if item != target {
			filtered = append(filtered, item)
		}
	}
	k.subscribers[topic] = filtered
}
