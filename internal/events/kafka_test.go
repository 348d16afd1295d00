package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, NewProducerConfig("test"))
	publisher := NewKafkaPublisherWithProducer(producer, "ecommerce.events", zerolog.Nop())

	event := New(TypeStockUpdated, 7, StockChange{ProductID: 7, Previous: 50, Current: 48})

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		assert.Equal(t, "ecommerce.events", msg.Topic)

		key, err := msg.Key.Encode()
		require.NoError(t, err)
		assert.Equal(t, "7", string(key))

		value, err := msg.Value.Encode()
		require.NoError(t, err)

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(value, &decoded))
		assert.Equal(t, TypeStockUpdated, decoded["type"])
		assert.Equal(t, "7", decoded["key"])

		payload := decoded["payload"].(map[string]interface{})
		assert.Equal(t, float64(48), payload["current"])

		require.Len(t, msg.Headers, 1)
		assert.Equal(t, TypeStockUpdated, string(msg.Headers[0].Value))
		return nil
	})

	require.NoError(t, publisher.Publish(context.Background(), event))
	require.NoError(t, publisher.Close())
}

func TestKafkaPublisher_PublishFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, NewProducerConfig("test"))
	publisher := NewKafkaPublisherWithProducer(producer, "ecommerce.events", zerolog.Nop())

	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := publisher.Publish(context.Background(), New(TypeOrderCreated, 1, nil))

	require.Error(t, err)
	assert.True(t, errors.Is(err, sarama.ErrOutOfBrokers))
	assert.Contains(t, err.Error(), TypeOrderCreated)
	require.NoError(t, publisher.Close())
}

func TestKafkaPublisher_CancelledContext(t *testing.T) {
	producer := mocks.NewSyncProducer(t, NewProducerConfig("test"))
	publisher := NewKafkaPublisherWithProducer(producer, "ecommerce.events", zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := publisher.Publish(ctx, New(TypeOrderCreated, 1, nil))
	assert.ErrorIs(t, err, context.Canceled)
	require.NoError(t, publisher.Close())
}

func TestNoopPublisher(t *testing.T) {
	publisher := NewNoopPublisher()

	assert.NoError(t, publisher.Publish(context.Background(), New(TypeProductCreated, 1, nil)))
	assert.NoError(t, publisher.Close())
}

func TestNew(t *testing.T) {
	event := New(TypeProductDeleted, 42, map[string]int64{"productId": 42})

	assert.Equal(t, TypeProductDeleted, event.Type)
	assert.Equal(t, "42", event.Key)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.False(t, event.OccurredAt.IsZero())
}
