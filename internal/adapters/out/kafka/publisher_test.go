package kafka_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"storefront/internal/adapters/out/kafka"
	"storefront/internal/core/domain/model/invalidation"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotice(ownerID kernel.UUID) invalidation.Notice {
	return invalidation.NoticeFor(order.Event{
		ID:         kernel.NewUUID(),
		Name:       order.EventPaymentStatusChanged,
		OrderID:    kernel.NewUUID(),
		OwnerID:    ownerID,
		OccurredAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	})
}

func producerConfig() *sarama.Config {
	config := mocks.NewTestConfig()
	config.Producer.Return.Successes = true
	return config
}

func TestPublisher_Publish(t *testing.T) {
	ownerID := kernel.NewUUID()
	notice := newNotice(ownerID)

	producer := mocks.NewSyncProducer(t, producerConfig())
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
		var msg kafka.Message
		if err := json.Unmarshal(value, &msg); err != nil {
			return err
		}
		if msg.OrderID != notice.OrderID.String() {
			return errors.New("unexpected order id " + msg.OrderID)
		}
		if len(msg.Tags) != 2 || msg.Tags[0] != "MyOrder:"+ownerID.String() || msg.Tags[1] != "AllOrders" {
			return errors.New("unexpected tags")
		}
		return nil
	})

	publisher, err := kafka.NewPublisher(producer, "order-invalidations", nil)
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(t.Context(), notice))
	require.NoError(t, publisher.Close())
}

func TestPublisher_PublishBatch(t *testing.T) {
	producer := mocks.NewSyncProducer(t, producerConfig())
	producer.ExpectSendMessageAndSucceed()
	producer.ExpectSendMessageAndSucceed()

	publisher, err := kafka.NewPublisher(producer, "order-invalidations", nil)
	require.NoError(t, err)

	err = publisher.Publish(t.Context(), newNotice(kernel.NewUUID()), newNotice(kernel.NewUUID()))

	require.NoError(t, err)
	require.NoError(t, publisher.Close())
}

func TestPublisher_PublishFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, producerConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher, err := kafka.NewPublisher(producer, "order-invalidations", nil)
	require.NoError(t, err)

	err = publisher.Publish(t.Context(), newNotice(kernel.NewUUID()))

	require.Error(t, err)
	require.NoError(t, publisher.Close())
}

func TestPublisher_NothingToPublish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, producerConfig())

	publisher, err := kafka.NewPublisher(producer, "order-invalidations", nil)
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(t.Context()))
	require.NoError(t, publisher.Close())
}

func TestNewPublisher_Validation(t *testing.T) {
	_, err := kafka.NewPublisher(nil, "topic", nil)
	assert.Error(t, err)

	producer := mocks.NewSyncProducer(t, producerConfig())
	_, err = kafka.NewPublisher(producer, "", nil)
	assert.Error(t, err)
	require.NoError(t, producer.Close())
}

func TestNewSyncProducer_RequiresBrokers(t *testing.T) {
	_, err := kafka.NewSyncProducer(nil)
	assert.Error(t, err)
}
