package nsq

import (
	"context"

	"github.com/arcbank/transactions-service/internal/pkg/constants"
	"github.com/arcbank/transactions-service/internal/pkg/models"
	"github.com/arcbank/transactions-service/services/transactions"
)

// Publisher is the part of the NSQ producer the gateway needs
type Publisher interface {
	PublishJSON(topic string, message interface{}) error
}

type eventGW struct {
	producer Publisher
}

// NewEventGW publishes lifecycle events to the transactions.events topic
func NewEventGW(producer Publisher) transactions.EventGW {
	return &eventGW{producer: producer}
}

// PublishTransactionEvent publishes event. NSQ has no subject hierarchy, so
// consumers filter on the status field
func (g *eventGW) PublishTransactionEvent(_ context.Context, event models.TransactionEvent) error {
	return g.producer.PublishJSON(constants.TopicTransactionEvents, event)
}
