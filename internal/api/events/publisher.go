package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

const contentTypeJSON = "application/json"

// JobEvent is the message body published after a job mutation
type JobEvent struct {
	Type         string    `json:"type"`
	JobID        string    `json:"job_id"`
	DeletedCount *int64    `json:"deleted_count,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// MessagePublisher sends a raw message under a routing key
type MessagePublisher interface {
	PublishWithRetry(ctx context.Context, routingKey string, body []byte, contentType string) error
}

// Publisher encodes job events and hands them to the message broker.
// The event type doubles as the routing key.
type Publisher struct {
	broker MessagePublisher
	logger *slog.Logger
	now    func() time.Time
}

// NewPublisher creates a Publisher backed by broker
func NewPublisher(broker MessagePublisher, logger *slog.Logger) *Publisher {
	return &Publisher{
		broker: broker,
		logger: logger,
		now:    time.Now,
	}
}

// Publish sends a job event of the given type
func (p *Publisher) Publish(ctx context.Context, eventType, jobID string) error {
	return p.publish(ctx, JobEvent{Type: eventType, JobID: jobID})
}

// PublishDeleted sends a deletion event carrying the store's deleted count
func (p *Publisher) PublishDeleted(ctx context.Context, eventType, jobID string, deleted int64) error {
	return p.publish(ctx, JobEvent{Type: eventType, JobID: jobID, DeletedCount: &deleted})
}

func (p *Publisher) publish(ctx context.Context, evt JobEvent) error {
	evt.OccurredAt = p.now().UTC()

	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to encode job event: %w", err)
	}

	if err := p.broker.PublishWithRetry(ctx, evt.Type, body, contentTypeJSON); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", evt.Type, err)
	}

	p.logger.Debug("Job event published",
		slog.String("type", evt.Type),
		slog.String("job_id", evt.JobID),
	)
	return nil
}

// NoopPublisher discards events; used when events are disabled
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, string) error { return nil }

func (NoopPublisher) PublishDeleted(context.Context, string, string, int64) error { return nil }
