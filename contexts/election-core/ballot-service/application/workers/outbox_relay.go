package workers

import (
	"context"
	"log/slog"
	"time"

	application "quorum/contexts/election-core/ballot-service/application"
	"quorum/contexts/election-core/ballot-service/ports"
)

// OutboxRelay drains pending ballot audit events and publishes them to the
// message bus. Each message is marked published only after a successful
// publish, so a crashed relay replays rather than drops.
type OutboxRelay struct {
	Outbox    ports.OutboxSource
	Publisher ports.EventPublisher
	Clock     ports.Clock
	Topic     string
	BatchSize int
	Logger    *slog.Logger
}

func (w OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(w.Logger)

	messages, err := w.Outbox.ListPendingOutbox(ctx, w.batchSize())
	if err != nil {
		return err
	}
	for _, message := range messages {
		if err := w.Publisher.Publish(ctx, w.topic(), message); err != nil {
			logger.Error("outbox publish failed",
				"event", "ballot_outbox_publish_failed",
				"module", "election-core/ballot-service",
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"error", err.Error(),
			)
			return err
		}
		if err := w.Outbox.MarkOutboxPublished(ctx, message.OutboxID, w.now()); err != nil {
			return err
		}
	}

	if len(messages) > 0 {
		logger.Info("outbox batch relayed",
			"event", "ballot_outbox_relayed",
			"module", "election-core/ballot-service",
			"layer", "worker",
			"count", len(messages),
		)
	}
	return nil
}

func (w OutboxRelay) batchSize() int {
	if w.BatchSize <= 0 {
		return 100
	}
	return w.BatchSize
}

func (w OutboxRelay) topic() string {
	if w.Topic == "" {
		return "ballot.accepted"
	}
	return w.Topic
}

func (w OutboxRelay) now() time.Time {
	now := time.Now().UTC()
	if w.Clock != nil {
		now = w.Clock.Now().UTC()
	}
	return now
}
