package nats

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/arcbank/transactions-service/internal/pkg/logger"
)

// JetStreamMessageHandler processes one message. A nil return acks it, an
// error naks it for redelivery
type JetStreamMessageHandler func(ctx context.Context, msg jetstream.Msg) error

// Consumer pushes JetStream messages of a durable consumer to a handler
type Consumer struct {
	consumer   jetstream.Consumer
	consumeCtx jetstream.ConsumeContext
	cancel     context.CancelFunc
}

// NewJetStreamConsumer creates the durable consumer if needed and starts
// delivering messages to handler
func NewJetStreamConsumer(ctx context.Context, client *Client, stream string, config jetstream.ConsumerConfig, handler JetStreamMessageHandler) (*Consumer, error) {
	if client == nil {
		return nil, fmt.Errorf("client cannot be nil")
	}

	s, err := client.js.Stream(ctx, stream)
	if err != nil {
		return nil, fmt.Errorf("failed to get stream %s: %w", stream, err)
	}

	consumer, err := s.CreateOrUpdateConsumer(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	handlerCtx, cancel := context.WithCancel(context.Background())
	c := &Consumer{consumer: consumer, cancel: cancel}

	consumeCtx, err := consumer.Consume(func(msg jetstream.Msg) {
		c.dispatch(handlerCtx, msg, handler)
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}
	c.consumeCtx = consumeCtx

	logger.Info("JetStream consumer started",
		logger.String("stream", stream),
		logger.String("consumer", config.Durable))
	return c, nil
}

func (c *Consumer) dispatch(ctx context.Context, msg jetstream.Msg, handler JetStreamMessageHandler) {
	if err := handler(ctx, msg); err != nil {
		logger.Warn("Error processing JetStream message, requesting redelivery",
			logger.String("subject", msg.Subject()),
			logger.Err(err))
		if nakErr := msg.Nak(); nakErr != nil {
			logger.Error("Failed to NAK message", logger.Err(nakErr))
		}
		return
	}

	if ackErr := msg.Ack(); ackErr != nil {
		logger.Error("Failed to ACK message", logger.Err(ackErr))
	}
}

// Info returns consumer information
func (c *Consumer) Info(ctx context.Context) (*jetstream.ConsumerInfo, error) {
	return c.consumer.Info(ctx)
}

// Stop stops delivery and cancels in-flight handlers
func (c *Consumer) Stop() {
	if c.consumeCtx != nil {
		c.consumeCtx.Stop()
		c.consumeCtx = nil
	}
	c.cancel()
	logger.Info("JetStream consumer stopped")
}
