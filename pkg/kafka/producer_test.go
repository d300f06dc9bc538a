package kafka

import (
	"context"
	"errors"
	"testing"

	"bookit/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducer_Publish(t *testing.T) {
	writer := &fakeWriter{}
	p := &Producer{writer: writer, topic: "booking.confirmed", log: logger.Discard()}

	var seenTopic string
	p.Use(func(ctx context.Context, msg Message, next MessageHandler) error {
		seenTopic = msg.Topic
		return next(ctx, msg)
	})

	msg, err := NewMessage().
		WithKey("64b7f0c2a1b2c3d4e5f60718").
		WithEventType("booking.confirmed").
		WithValue(map[string]int{"quantity": 2}).
		Build()
	require.NoError(t, err)

	require.NoError(t, p.Publish(context.Background(), msg))
	assert.Equal(t, "booking.confirmed", seenTopic)
	require.Len(t, writer.messages, 1)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", string(writer.messages[0].Key))
	sent := fromKafkaMessage(writer.messages[0])
	assert.NotEmpty(t, sent.GetEventID())
}

func TestProducer_PublishValidation(t *testing.T) {
	p := &Producer{writer: &fakeWriter{}, topic: "t", log: logger.Discard()}

	assert.ErrorIs(t, p.Publish(context.Background(), Message{Value: []byte("x")}), ErrEmptyKey)
	assert.ErrorIs(t, p.Publish(context.Background(), Message{Key: "k"}), ErrEmptyValue)

	require.NoError(t, p.Close())
	assert.ErrorIs(t, p.Publish(context.Background(), Message{Key: "k", Value: []byte("x")}), ErrProducerClosed)
}

func TestProducer_FailedWriteGoesToDLQ(t *testing.T) {
	writeErr := errors.New("leader not available")
	dlq := &fakeWriter{}
	p := &Producer{
		writer:    &fakeWriter{err: writeErr},
		dlqWriter: dlq,
		topic:     "booking.confirmed",
		log:       logger.Discard(),
	}

	err := p.Publish(context.Background(), Message{Key: "k", Value: []byte(`{}`), Headers: map[string]string{}})

	assert.ErrorIs(t, err, writeErr)
	require.Len(t, dlq.messages, 1)
	assert.Equal(t, "booking.confirmed", fromKafkaMessage(dlq.messages[0]).Headers[HeaderOriginalTopic])
}

func TestMessageBuilder_InvalidValue(t *testing.T) {
	_, err := NewMessage().WithKey("k").WithValue(make(chan int)).Build()
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestMessage_RetryCount(t *testing.T) {
	msg := Message{}
	for range 12 {
		msg.IncrementRetryCount()
	}
	assert.Equal(t, 12, msg.GetRetryCount())
}
