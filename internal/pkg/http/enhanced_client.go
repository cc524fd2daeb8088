package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/arcbank/transactions-service/internal/pkg/circuitbreaker"
	"github.com/arcbank/transactions-service/internal/pkg/logger"
	nrpkg "github.com/arcbank/transactions-service/internal/pkg/newrelic"
	"github.com/arcbank/transactions-service/internal/pkg/retry"
)

const (
	// DefaultTimeout for HTTP requests
	DefaultTimeout = 30 * time.Second
	// APIKeyHeader is the header name for API key
	APIKeyHeader = "X-API-Key"
	// TraceIDHeader correlates a call across banks
	TraceIDHeader = "X-Trace-ID"
)

// Config configures an EnhancedClient
type Config struct {
	Name    string
	Timeout time.Duration
	TLS     *tls.Config
	Headers map[string]string
	Retry   *retry.Config
	Breaker *circuitbreaker.Config
}

// EnhancedClient wraps http.Client with retry and circuit breaker functionality
type EnhancedClient struct {
	client  *http.Client
	retrier *retry.Retrier
	breaker *circuitbreaker.CircuitBreaker
	logger  *logger.ZapLogger
	headers map[string]string
}

// Request describes one call. Body is sent as JSON, Form as urlencoded
type Request struct {
	Method  string
	URL     string
	Body    interface{}
	Form    url.Values
	Headers map[string]string
	// Retry enables backoff retries; leave it off for non-idempotent calls
	Retry bool
}

// Response is a fully read HTTP response
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IsSuccess reports a 2xx status
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// DecodeJSON unmarshals the body into v
func (r *Response) DecodeJSON(v interface{}) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return io.EOF
	}
	return json.Unmarshal(r.Body, v)
}

// HTTPError is returned for 5xx answers
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// HTTPStatus lets the retrier tell server errors from client errors
func (e *HTTPError) HTTPStatus() int {
	return e.StatusCode
}

// NewEnhancedClient creates a new enhanced HTTP client
func NewEnhancedClient(log *logger.ZapLogger, cfg Config) *EnhancedClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.TLS != nil {
		transport.TLSClientConfig = cfg.TLS
	}

	retryCfg := retry.DefaultConfig()
	if cfg.Retry != nil {
		retryCfg = *cfg.Retry
	}

	breakerCfg := circuitbreaker.DefaultConfig(cfg.Name)
	if cfg.Breaker != nil {
		breakerCfg = *cfg.Breaker
		breakerCfg.Name = cfg.Name
	}
	breakerCfg.IsFailure = func(err error) bool {
		return err != nil && !errors.Is(err, context.Canceled)
	}

	return &EnhancedClient{
		client:  &http.Client{Timeout: cfg.Timeout, Transport: transport},
		retrier: retry.New(retryCfg, log),
		breaker: circuitbreaker.New(breakerCfg, log),
		logger:  log,
		headers: cfg.Headers,
	}
}

// Do executes req behind the circuit breaker, retrying when req.Retry is set.
// Any answer below 500 is returned as a Response for the caller to interpret
func (c *EnhancedClient) Do(ctx context.Context, req Request) (*Response, error) {
	payload, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	var resp *Response
	attempt := func(ctx context.Context) error {
		r, err := c.send(ctx, req, payload, contentType)
		if err != nil {
			return err
		}
		resp = r
		return nil
	}

	err = c.breaker.Execute(ctx, func(ctx context.Context) error {
		if req.Retry {
			return c.retrier.Execute(ctx, attempt)
		}
		return attempt(ctx)
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *EnhancedClient) send(ctx context.Context, req Request, payload []byte, contentType string) (*Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := nrpkg.InstrumentHTTPRequest(ctx, httpReq, func() (*http.Response, error) {
		return c.client.Do(httpReq)
	})
	if err != nil {
		c.logger.Warn("HTTP request failed",
			logger.String("remote", c.breaker.Name()),
			logger.String("method", req.Method),
			logger.String("url", req.URL),
			logger.Err(err))
		return nil, err
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if httpResp.StatusCode >= 500 {
		return nil, &HTTPError{StatusCode: httpResp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	return &Response{StatusCode: httpResp.StatusCode, Header: httpResp.Header, Body: data}, nil
}

func encodeBody(req Request) ([]byte, string, error) {
	switch {
	case req.Form != nil:
		return []byte(req.Form.Encode()), "application/x-www-form-urlencoded", nil
	case req.Body != nil:
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal request body: %w", err)
		}
		return payload, "application/json", nil
	default:
		return nil, "", nil
	}
}

// BreakerStats reports the circuit breaker of this client
func (c *EnhancedClient) BreakerStats() circuitbreaker.Stats {
	return c.breaker.Stats()
}
