package events

import (
	"bookit/pkg/kafka"
	"bookit/pkg/model"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProducer struct {
	messages []kafka.Message
	err      error
}

func (p *recordingProducer) Publish(_ context.Context, msg kafka.Message) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, msg)
	return nil
}

func TestKafkaPublisher_BookingConfirmed(t *testing.T) {
	producer := &recordingProducer{}
	reconciliation := &recordingProducer{}
	publisher := NewKafkaPublisher(producer, reconciliation)

	event := BookingConfirmedEvent{
		OrderID:      "HD-20301101-AB12Z",
		ExperienceID: "64b7f0c2a1b2c3d4e5f60718",
		Slot:         model.SlotKey{Date: "2030-11-01", Time: "10:00 AM"},
		Quantity:     2,
		TotalPrice:   9900,
		ConfirmedAt:  time.Date(2030, 10, 1, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, publisher.BookingConfirmed(context.Background(), event))
	require.Len(t, producer.messages, 1)
	assert.Empty(t, reconciliation.messages)

	msg := producer.messages[0]
	assert.Equal(t, event.ExperienceID, msg.Key)
	assert.Equal(t, EventBookingConfirmed, msg.GetEventType())
	assert.Equal(t, event.OrderID, msg.GetCorrelationID())
	assert.NotEmpty(t, msg.GetEventID())

	var decoded BookingConfirmedEvent
	require.NoError(t, msg.DecodeValue(&decoded))
	assert.Equal(t, event, decoded)
}

func TestKafkaPublisher_PersistenceFailedWrapsProducerError(t *testing.T) {
	producer := &recordingProducer{err: errors.New("broker down")}
	publisher := NewKafkaPublisher(&recordingProducer{}, producer)

	err := publisher.PersistenceFailed(context.Background(), PersistenceFailedEvent{
		OrderID:      "HD-20301101-AB12Z",
		ExperienceID: "64b7f0c2a1b2c3d4e5f60718",
		Quantity:     1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), EventBookingPersistenceFailed)
	assert.ErrorIs(t, err, producer.err)
}
