package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	httpclient "github.com/arcbank/transactions-service/internal/pkg/http"
	jwtpkg "github.com/arcbank/transactions-service/internal/pkg/jwt"
	"github.com/arcbank/transactions-service/internal/pkg/logger"
	"github.com/arcbank/transactions-service/internal/pkg/models"
)

// defaultTokenLifetime applies when neither expires_in nor exp is present
const defaultTokenLifetime = 5 * time.Minute

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// TokenCache holds the switch access token obtained with client credentials
type TokenCache struct {
	client *httpclient.EnhancedClient
	cfg    models.SwitchConfig
	now    func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewTokenCache creates a token cache for cfg
func NewTokenCache(client *httpclient.EnhancedClient, cfg models.SwitchConfig) *TokenCache {
	return &TokenCache{client: client, cfg: cfg, now: time.Now}
}

// Enabled reports whether the switch requires a bearer token
func (c *TokenCache) Enabled() bool {
	return c.cfg.TokenURL != "" && c.cfg.ClientID != ""
}

// Token returns the cached token, fetching a new one when it is missing or
// inside the safety margin
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiresAt) {
		return c.token, nil
	}

	token, lifetime, err := c.fetch(ctx)
	if err != nil {
		return "", err
	}

	c.token = token
	c.expiresAt = c.now().Add(lifetime - c.cfg.TokenSafetyDelta)
	logger.Debug("Switch token refreshed", logger.Duration("lifetime", lifetime))
	return c.token, nil
}

// Invalidate drops the cached token
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	c.token = ""
	c.expiresAt = time.Time{}
	c.mu.Unlock()
}

func (c *TokenCache) fetch(ctx context.Context) (string, time.Duration, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	if c.cfg.Scope != "" {
		form.Set("scope", c.cfg.Scope)
	}

	resp, err := c.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		URL:    c.cfg.TokenURL,
		Form:   form,
		Retry:  true,
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to obtain switch token: %w", err)
	}
	if !resp.IsSuccess() {
		return "", 0, fmt.Errorf("token endpoint returned HTTP %d", resp.StatusCode)
	}

	var body tokenResponse
	if err := resp.DecodeJSON(&body); err != nil {
		return "", 0, fmt.Errorf("failed to decode token response: %w", err)
	}
	if body.AccessToken == "" {
		return "", 0, errors.New("token endpoint returned no access_token")
	}

	if body.ExpiresIn > 0 {
		return body.AccessToken, time.Duration(body.ExpiresIn) * time.Second, nil
	}
	if exp, err := jwtpkg.ExpiresAt(body.AccessToken); err == nil {
		return body.AccessToken, exp.Sub(c.now()), nil
	}
	return body.AccessToken, defaultTokenLifetime, nil
}
