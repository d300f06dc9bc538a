package events

import (
	"bookit/pkg/kafka"
	"bookit/pkg/model"
	"context"
	"fmt"
	"time"
)

const (
	EventBookingConfirmed         = "booking.confirmed"
	EventBookingPersistenceFailed = "booking.persistence_failed"

	SchemaVersion = "1"
	Source        = "bookings"
)

type BookingConfirmedEvent struct {
	OrderID      string        `json:"orderId"`
	ExperienceID string        `json:"experienceId"`
	Slot         model.SlotKey `json:"slot"`
	Quantity     int           `json:"quantity"`
	TotalPrice   int64         `json:"totalPrice"`
	PromoCode    string        `json:"promoCode,omitempty"`
	Email        string        `json:"email"`
	ConfirmedAt  time.Time     `json:"confirmedAt"`
}

// PersistenceFailedEvent reports seats that were consumed for an order whose
// booking record could not be written.
type PersistenceFailedEvent struct {
	OrderID      string        `json:"orderId"`
	ExperienceID string        `json:"experienceId"`
	Slot         model.SlotKey `json:"slot"`
	Quantity     int           `json:"quantity"`
	Reason       string        `json:"reason"`
	FailedAt     time.Time     `json:"failedAt"`
}

type Publisher interface {
	BookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error
	PersistenceFailed(ctx context.Context, event PersistenceFailedEvent) error
}

type MessagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// KafkaPublisher sends booking events keyed by experience id, so events for
// one experience stay ordered within a partition. Confirmations and
// persistence failures go to separate topics.
type KafkaPublisher struct {
	confirmed      MessagePublisher
	reconciliation MessagePublisher
}

func NewKafkaPublisher(confirmed, reconciliation MessagePublisher) *KafkaPublisher {
	return &KafkaPublisher{
		confirmed:      confirmed,
		reconciliation: reconciliation,
	}
}

func (p *KafkaPublisher) BookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error {
	return publish(ctx, p.confirmed, EventBookingConfirmed, event.ExperienceID, event.OrderID, event)
}

func (p *KafkaPublisher) PersistenceFailed(ctx context.Context, event PersistenceFailedEvent) error {
	return publish(ctx, p.reconciliation, EventBookingPersistenceFailed, event.ExperienceID, event.OrderID, event)
}

func publish(ctx context.Context, producer MessagePublisher, eventType, key, orderID string, payload any) error {
	msg, err := kafka.NewMessage().
		WithKey(key).
		WithValue(payload).
		WithEventType(eventType).
		WithCorrelationID(orderID).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		Build()
	if err != nil {
		return fmt.Errorf("build %s event: %w", eventType, err)
	}

	if err := producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}
	return nil
}

// NoopPublisher drops every event. Used when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) BookingConfirmed(context.Context, BookingConfirmedEvent) error { return nil }

func (NoopPublisher) PersistenceFailed(context.Context, PersistenceFailedEvent) error { return nil }
