package nsq

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nsqio/go-nsq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcbank/transactions-service/internal/pkg/models"
)

func TestNewConfig(t *testing.T) {
	config := NewConfig(models.NSQConfig{MaxInFlight: 25, MaxAttempts: 7, RequeueDelaySec: 3})

	assert.Equal(t, 25, config.MaxInFlight)
	assert.Equal(t, uint16(7), config.MaxAttempts)
	assert.Equal(t, 3*time.Second, config.DefaultRequeueDelay)

	defaults := NewConfig(models.NSQConfig{})
	assert.Equal(t, nsq.NewConfig().MaxInFlight, defaults.MaxInFlight)
}

func TestHandlerFunc(t *testing.T) {
	var got []byte
	ok := handlerFunc(context.Background(), "topic", func(ctx context.Context, body []byte) error {
		got = body
		return nil
	})
	msg := nsq.NewMessage(nsq.MessageID{}, []byte(`{"a":1}`))
	require.NoError(t, ok(msg))
	assert.Equal(t, `{"a":1}`, string(got))

	failing := handlerFunc(context.Background(), "topic", func(ctx context.Context, body []byte) error {
		return errors.New("ledger unavailable")
	})
	assert.EqualError(t, failing(msg), "ledger unavailable")
}

func TestNewProducer_Unreachable(t *testing.T) {
	producer, err := NewProducer(models.NSQConfig{NSQDAddress: "127.0.0.1:1"})
	assert.Error(t, err)
	assert.Nil(t, producer)
	assert.Contains(t, err.Error(), "failed to ping NSQ daemon")
}

func TestNewConsumer_InvalidTopic(t *testing.T) {
	consumer, err := NewConsumer(models.NSQConfig{NSQDAddress: "127.0.0.1:1"}, "bad topic!", "channel", nil)
	assert.Error(t, err)
	assert.Nil(t, consumer)
	assert.Contains(t, err.Error(), "failed to create NSQ consumer")
}
