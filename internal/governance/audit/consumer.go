package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"

	cnats "github.com/notebot-labs/chatgate/internal/nats"
)

// Consumer drains governance events from JetStream into the audit table.
type Consumer struct {
	consumerMgr *cnats.ConsumerManager
	repo        *Repository
}

// NewConsumer creates an audit Consumer.
func NewConsumer(consumerMgr *cnats.ConsumerManager, repo *Repository) *Consumer {
	return &Consumer{consumerMgr: consumerMgr, repo: repo}
}

// Start runs the consume loop until ctx is canceled.
func (c *Consumer) Start(ctx context.Context) error {
	consumer, err := c.consumerMgr.EnsureConsumer(ctx, cnats.StreamEvents, "audit-writer", cnats.SubjectGovernanceEvent)
	if err != nil {
		return err
	}

	slog.Info("audit consumer started")

	for {
		msgs, err := consumer.Fetch(10, jetstream.FetchMaxWait(cnats.FetchTimeout))
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			slog.Debug("audit: fetching events", "error", err)
			continue
		}

		for msg := range msgs.Messages() {
			c.handleEvent(ctx, msg)
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

func (c *Consumer) handleEvent(ctx context.Context, msg jetstream.Msg) {
	var event cnats.GovernanceEvent
	if err := json.Unmarshal(msg.Data(), &event); err != nil {
		slog.Error("audit: unmarshaling event", "error", err)
		// Unparseable payloads never become parseable; drop them.
		_ = msg.Ack()
		return
	}

	if err := c.repo.Insert(ctx, eventToLog(event)); err != nil {
		slog.Error("audit: persisting event", "event_type", event.EventType, "error", err)
		_ = msg.Nak()
		return
	}

	if err := msg.Ack(); err != nil {
		slog.Warn("audit: acking event", "error", err)
	}
}

func eventToLog(event cnats.GovernanceEvent) *Log {
	return &Log{
		ID:        uuid.New(),
		ClientID:  event.ClientID,
		EventType: event.EventType,
		Severity:  event.Severity,
		Issues:    event.Issues,
		Reason:    event.Reason,
		Remaining: event.Remaining,
		CreatedAt: event.Timestamp,
	}
}
