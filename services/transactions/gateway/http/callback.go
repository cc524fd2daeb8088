package http

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	httpclient "github.com/arcbank/transactions-service/internal/pkg/http"
	"github.com/arcbank/transactions-service/internal/pkg/logger"
	"github.com/arcbank/transactions-service/internal/pkg/models"
)

// callbackAPIKeyHeader is the header the switch callback endpoint expects
const callbackAPIKeyHeader = "apikey"

// SendCallback reports the outcome of a queued transfer. Errors are logged
// and never returned
func (g *switchGW) SendCallback(ctx context.Context, instructionID, status, reasonCode string) {
	if g.cfg.CallbackURL == "" {
		logger.WarnCtx(ctx, "No callback URL configured, skipping callback", logger.Reference(instructionID))
		return
	}

	callback := models.SwitchCallback{
		Header: models.CallbackHeader{
			MessageID:        uuid.NewString(),
			RespondingBankID: g.cfg.BankCode,
		},
		Body: models.CallbackBody{
			OriginalInstructionID: instructionID,
			Status:                status,
			ProcessedDateTime:     g.now().UTC().Format(time.RFC3339),
			ReasonCode:            reasonCode,
		},
	}

	headers := map[string]string{}
	if g.cfg.CallbackAPIKey != "" {
		headers[callbackAPIKeyHeader] = g.cfg.CallbackAPIKey
	}

	resp, err := g.call(ctx, httpclient.Request{
		Method:  http.MethodPost,
		URL:     g.cfg.CallbackURL,
		Body:    callback,
		Headers: headers,
	})
	if err != nil {
		logger.ErrorCtx(ctx, "Failed to send switch callback",
			logger.Reference(instructionID),
			logger.String("status", status),
			logger.Err(err))
		return
	}
	if !resp.IsSuccess() {
		logger.ErrorCtx(ctx, "Switch refused callback",
			logger.Reference(instructionID),
			logger.Int("http_status", resp.StatusCode))
		return
	}

	logger.InfoCtx(ctx, "Switch callback sent",
		logger.Reference(instructionID),
		logger.String("status", status),
		logger.String("reason_code", reasonCode))
}
