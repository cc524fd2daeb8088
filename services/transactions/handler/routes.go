package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/arcbank/transactions-service/internal/pkg/middleware"
	"github.com/arcbank/transactions-service/internal/pkg/models"
	natspkg "github.com/arcbank/transactions-service/internal/pkg/nats"
	nrpkg "github.com/arcbank/transactions-service/internal/pkg/newrelic"
	"github.com/arcbank/transactions-service/services/transactions"
	httpHandler "github.com/arcbank/transactions-service/services/transactions/handler/http"
	natsHandler "github.com/arcbank/transactions-service/services/transactions/handler/nats"
	nsqHandler "github.com/arcbank/transactions-service/services/transactions/handler/nsq"
	"github.com/arcbank/transactions-service/services/transactions/handler/worker"
)

// Queue drivers for the inbound transfer channel
const (
	QueueDriverJetStream = "jetstream"
	QueueDriverNSQ       = "nsq"
	QueueDriverNone      = "none"
)

// Handler combines all handlers for the transactions service
type Handler struct {
	cfg             *models.Config
	transactionHTTP *httpHandler.TransactionHandler
	webhookHTTP     *httpHandler.WebhookHandler
	inboundNATS     *natsHandler.InboundHandler
	inboundNSQ      *nsqHandler.InboundHandler
	reconciler      *worker.Reconciler
}

// NewHandler creates a new combined handler. natsClient may be nil when the
// NSQ driver is selected
func NewHandler(
	cfg *models.Config,
	transactionUC transactions.TransactionUC,
	natsClient *natspkg.Client,
	lease transactions.SweepLease,
	nrApp *newrelic.Application,
) *Handler {
	return &Handler{
		cfg:             cfg,
		transactionHTTP: httpHandler.NewTransactionHandler(transactionUC),
		webhookHTTP:     httpHandler.NewWebhookHandler(transactionUC),
		inboundNATS:     natsHandler.NewInboundHandler(transactionUC, natsClient, nrApp),
		inboundNSQ:      nsqHandler.NewInboundHandler(transactionUC, cfg.NSQ, nrApp),
		reconciler:      worker.NewReconciler(transactionUC, lease, cfg.Reconciler.Interval, nrApp),
	}
}

// RegisterRoutes registers the bank API and the switch webhook
func (h *Handler) RegisterRoutes(e *echo.Echo, redisClient *redis.Client) {
	bank := e.Group("/api/transacciones", middleware.ValidateAPIKey(h.cfg.Security.APIKeys))
	bank.POST("", nrpkg.TraceHandler("Transactions.Create", h.transactionHTTP.CreateTransaction))
	bank.GET("/cuenta/:accountId", h.transactionHTTP.ListByAccount)
	bank.GET("/motivos-devolucion", h.transactionHTTP.ListReturnReasons)
	bank.POST("/validar-cuenta", h.transactionHTTP.ValidateExternalAccount)
	bank.GET("/buscar/:reference", h.transactionHTTP.GetByReference)
	bank.GET("/buscar/:reference/detalle-switch", h.transactionHTTP.GetDetailByReference)
	bank.GET("/buscar-codigo/:code", h.transactionHTTP.GetByCodigoReferencia)
	bank.GET("/saldo-tecnico", h.transactionHTTP.TechnicalBalance)
	bank.GET("/red/bancos", h.transactionHTTP.ListBanks)
	bank.POST("/referencia/:reference/devolucion", nrpkg.TraceHandler("Transactions.ReverseByReference", h.transactionHTTP.RequestReversalByReference))
	bank.GET("/:id", h.transactionHTTP.GetByID)
	bank.GET("/:id/detalle", h.transactionHTTP.GetDetail)
	bank.POST("/:id/devolucion", nrpkg.TraceHandler("Transactions.Reverse", h.transactionHTTP.RequestReversal))

	limiter := middleware.IPRateLimiter(h.cfg.Security.WebhookRateLimit, time.Minute, redisClient)

	webhook := e.Group("/api/core/transferencias", limiter)
	webhook.POST("/recepcion", nrpkg.TraceHandler("Webhook.Receive", h.webhookHTTP.Receive))
	webhook.GET("/recepcion/status/:instructionId", h.webhookHTTP.TransferStatus)

	e.POST("/api/incoming/return", nrpkg.TraceHandler("Webhook.Return", h.webhookHTTP.ReceiveReturn), limiter)
}

// InitConsumers starts the inbound transfer consumer of the configured driver
func (h *Handler) InitConsumers(ctx context.Context) error {
	switch h.cfg.Queue.Driver {
	case QueueDriverNSQ:
		return h.inboundNSQ.InitNSQConsumers()
	case QueueDriverJetStream, "":
		return h.inboundNATS.InitNATSConsumers(ctx)
	case QueueDriverNone:
		return nil
	default:
		return fmt.Errorf("unknown queue driver %q", h.cfg.Queue.Driver)
	}
}

// StopConsumers stops the inbound transfer consumers
func (h *Handler) StopConsumers() {
	h.inboundNATS.Stop()
	h.inboundNSQ.Stop()
}

// RunReconciler blocks running the reconciliation worker until ctx ends
func (h *Handler) RunReconciler(ctx context.Context) error {
	return h.reconciler.Run(ctx)
}
