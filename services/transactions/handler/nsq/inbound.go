package nsq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/arcbank/transactions-service/internal/pkg/logger"
	"github.com/arcbank/transactions-service/internal/pkg/models"
	nrpkg "github.com/arcbank/transactions-service/internal/pkg/newrelic"
	nsqpkg "github.com/arcbank/transactions-service/internal/pkg/nsq"
	"github.com/arcbank/transactions-service/services/transactions"
)

// InboundHandler consumes switch transfers from an NSQ topic
type InboundHandler struct {
	transactionUC transactions.TransactionUC
	cfg           models.NSQConfig
	nrApp         *newrelic.Application
	consumer      *nsqpkg.Consumer
}

// NewInboundHandler creates a new NSQ inbound transfer handler
func NewInboundHandler(transactionUC transactions.TransactionUC, cfg models.NSQConfig, nrApp *newrelic.Application) *InboundHandler {
	return &InboundHandler{
		transactionUC: transactionUC,
		cfg:           cfg,
		nrApp:         nrApp,
	}
}

// InitNSQConsumers subscribes to the inbound transfer topic
func (h *InboundHandler) InitNSQConsumers() error {
	consumer, err := nsqpkg.NewConsumer(h.cfg, h.cfg.InboundTopic, h.cfg.InboundChannel, h.process)
	if err != nil {
		return fmt.Errorf("failed to start inbound transfer consumer: %w", err)
	}
	h.consumer = consumer
	return nil
}

// Stop disconnects the consumer
func (h *InboundHandler) Stop() {
	if h.consumer != nil {
		h.consumer.Stop()
		h.consumer = nil
	}
}

func (h *InboundHandler) process(ctx context.Context, message []byte) error {
	ctx, end := nrpkg.StartBackgroundTransaction(ctx, h.nrApp, "NSQ.InboundTransfer")
	defer end()

	var envelope models.TransferEnvelope
	if err := json.Unmarshal(message, &envelope); err != nil {
		logger.WarnCtx(ctx, "Discarding undecodable inbound transfer", logger.Err(err))
		return nil
	}

	return h.transactionUC.HandleQueuedTransfer(ctx, envelope)
}
