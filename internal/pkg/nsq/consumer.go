package nsq

import (
	"context"
	"fmt"
	"time"

	"github.com/nsqio/go-nsq"

	"github.com/arcbank/transactions-service/internal/pkg/logger"
	"github.com/arcbank/transactions-service/internal/pkg/models"
)

// MessageHandler processes one message body. An error requeues the message
type MessageHandler func(ctx context.Context, message []byte) error

// Consumer handles consuming messages from NSQ topics
type Consumer struct {
	consumer *nsq.Consumer
	cancel   context.CancelFunc
}

// NewConfig builds the go-nsq config from the service configuration
func NewConfig(cfg models.NSQConfig) *nsq.Config {
	config := nsq.NewConfig()
	if cfg.MaxInFlight > 0 {
		config.MaxInFlight = cfg.MaxInFlight
	}
	if cfg.MaxAttempts > 0 {
		config.MaxAttempts = uint16(cfg.MaxAttempts)
	}
	if cfg.RequeueDelaySec > 0 {
		config.DefaultRequeueDelay = time.Duration(cfg.RequeueDelaySec) * time.Second
	}
	return config
}

// NewConsumer subscribes to topic/channel and connects to lookupd when
// addresses are configured, falling back to a single nsqd
func NewConsumer(cfg models.NSQConfig, topic, channel string, handler MessageHandler) (*Consumer, error) {
	consumer, err := nsq.NewConsumer(topic, channel, NewConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create NSQ consumer: %w", err)
	}
	consumer.SetLogger(nil, nsq.LogLevelError)

	ctx, cancel := context.WithCancel(context.Background())
	consumer.AddHandler(handlerFunc(ctx, topic, handler))

	if len(cfg.LookupdAddress) > 0 {
		err = consumer.ConnectToNSQLookupds(cfg.LookupdAddress)
	} else {
		err = consumer.ConnectToNSQD(cfg.NSQDAddress)
	}
	if err != nil {
		cancel()
		consumer.Stop()
		return nil, fmt.Errorf("failed to connect NSQ consumer: %w", err)
	}

	logger.Info("NSQ consumer started", logger.String("topic", topic), logger.String("channel", channel))
	return &Consumer{consumer: consumer, cancel: cancel}, nil
}

// handlerFunc adapts handler to go-nsq, which finishes the message on nil and
// requeues it with backoff on error
func handlerFunc(ctx context.Context, topic string, handler MessageHandler) nsq.HandlerFunc {
	return func(message *nsq.Message) error {
		if err := handler(ctx, message.Body); err != nil {
			logger.Warn("Error processing NSQ message, requeueing",
				logger.String("topic", topic),
				logger.Int("attempts", int(message.Attempts)),
				logger.Err(err))
			return err
		}
		return nil
	}
}

// Stop gracefully stops the consumer
func (c *Consumer) Stop() {
	c.consumer.Stop()
	<-c.consumer.StopChan
	c.cancel()
}
