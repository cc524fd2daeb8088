package nats

import (
	"context"
	"strings"

	"github.com/arcbank/transactions-service/internal/pkg/constants"
	"github.com/arcbank/transactions-service/internal/pkg/logger"
	"github.com/arcbank/transactions-service/internal/pkg/models"
	natspkg "github.com/arcbank/transactions-service/internal/pkg/nats"
	"github.com/arcbank/transactions-service/services/transactions"
)

type eventGW struct {
	natsClient *natspkg.Client
}

// NewEventGW publishes lifecycle events to the TRANSACTION_EVENTS stream
func NewEventGW(client *natspkg.Client) transactions.EventGW {
	return &eventGW{natsClient: client}
}

// Subject returns the subject an event with status is published on
func Subject(status models.TransactionStatus) string {
	return constants.SubjectTransactionEvents + "." + strings.ToLower(string(status))
}

// PublishTransactionEvent publishes event on transactions.events.<status>
func (g *eventGW) PublishTransactionEvent(ctx context.Context, event models.TransactionEvent) error {
	subject := Subject(event.Status)
	if err := g.natsClient.PublishJSON(ctx, subject, event); err != nil {
		return err
	}

	logger.Debug("Transaction event published",
		logger.String("subject", subject),
		logger.TransactionID(event.TransactionID))
	return nil
}
