package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"accounts-api/internal/models"
)

const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// EventPublisher emits user lifecycle events. Publishing is best-effort:
// callers log failures and never fail the request over them.
type EventPublisher interface {
	PublishUserEvent(ctx context.Context, eventType string, user *models.User) error
	Close() error
}

type userEvent struct {
	Type       string    `json:"type"`
	UserID     string    `json:"userId"`
	Email      string    `json:"email,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type kafkaPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

// NewKafkaPublisher writes user events to the given topic, keyed by user id
// so events for one user stay ordered within a partition.
func NewKafkaPublisher(brokers []string, topic string, log *zap.Logger) EventPublisher {
	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	})
	return &kafkaPublisher{writer: w, log: log}
}

func (p *kafkaPublisher) PublishUserEvent(ctx context.Context, eventType string, user *models.User) error {
	b, err := json.Marshal(userEvent{
		Type:       eventType,
		UserID:     user.ID,
		Email:      user.Email,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(user.ID),
		Value: b,
		Time:  time.Now(),
	})
	if err == nil {
		p.log.Debug("published user event",
			zap.String("type", eventType),
			zap.String("user_id", user.ID),
		)
	}
	return err
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type noopPublisher struct{}

// NewNoopPublisher is used when no Kafka brokers are configured.
func NewNoopPublisher() EventPublisher { return noopPublisher{} }

func (noopPublisher) PublishUserEvent(context.Context, string, *models.User) error { return nil }
func (noopPublisher) Close() error                                                 { return nil }
