package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/arcbank/transactions-service/internal/pkg/constants"
	"github.com/arcbank/transactions-service/internal/pkg/logger"
	"github.com/arcbank/transactions-service/internal/pkg/models"
	natspkg "github.com/arcbank/transactions-service/internal/pkg/nats"
	nrpkg "github.com/arcbank/transactions-service/internal/pkg/newrelic"
	"github.com/arcbank/transactions-service/services/transactions"
)

const (
	inboundAckWait    = 30 * time.Second
	inboundMaxDeliver = 20
)

// InboundHandler consumes switch transfers queued on JetStream
type InboundHandler struct {
	transactionUC transactions.TransactionUC
	natsClient    *natspkg.Client
	nrApp         *newrelic.Application
	consumers     []*natspkg.Consumer
}

// NewInboundHandler creates a new JetStream inbound transfer handler
func NewInboundHandler(transactionUC transactions.TransactionUC, client *natspkg.Client, nrApp *newrelic.Application) *InboundHandler {
	return &InboundHandler{
		transactionUC: transactionUC,
		natsClient:    client,
		nrApp:         nrApp,
		consumers:     make([]*natspkg.Consumer, 0),
	}
}

// InitNATSConsumers starts the durable inbound transfer consumer
func (h *InboundHandler) InitNATSConsumers(ctx context.Context) error {
	stream, cfg := natspkg.NewConsumerConfigBuilder(constants.StreamSwitchInbound, constants.ConsumerInboundTransfers).
		WithSubject(constants.SubjectInboundTransfers).
		WithAckWait(inboundAckWait).
		WithMaxDeliver(inboundMaxDeliver).
		Build()

	consumer, err := natspkg.NewJetStreamConsumer(ctx, h.natsClient, stream, cfg, h.handleInboundTransfer)
	if err != nil {
		return fmt.Errorf("failed to start inbound transfer consumer: %w", err)
	}
	h.consumers = append(h.consumers, consumer)
	return nil
}

// Stop stops every consumer started by InitNATSConsumers
func (h *InboundHandler) Stop() {
	for _, consumer := range h.consumers {
		consumer.Stop()
	}
	h.consumers = nil
}

func (h *InboundHandler) handleInboundTransfer(ctx context.Context, msg jetstream.Msg) error {
	return h.process(ctx, msg.Data())
}

// process applies one queued transfer. Undecodable messages are dropped since
// redelivery cannot fix them
func (h *InboundHandler) process(ctx context.Context, data []byte) error {
	ctx, end := nrpkg.StartBackgroundTransaction(ctx, h.nrApp, "JetStream.InboundTransfer")
	defer end()

	var envelope models.TransferEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		logger.WarnCtx(ctx, "Discarding undecodable inbound transfer", logger.Err(err))
		return nil
	}

	return h.transactionUC.HandleQueuedTransfer(ctx, envelope)
}
