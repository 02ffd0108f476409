// Package transport performs the single control-plane RPC primitive: one
// form-encoded POST, one parsed JSON envelope. It holds no business logic —
// callers interpret Envelope.Success/Code/Data themselves.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/agentbay/agentbay-go/internal/metrics"
	"github.com/agentbay/agentbay-go/internal/ratelimit"
)

// APIVersion is the control-plane wire version this client speaks.
const APIVersion = "2025-05-06"

// Config holds the transport's immutable settings. A Config is shared
// safely across concurrent calls; Client itself carries no other mutable
// state besides the rate limiter's internal bucket.
type Config struct {
	Endpoint         string
	RegionID         string
	ReadTimeout      time.Duration
	ConnectTimeout   time.Duration
	SignatureAlgo    string // "v2"
}

// Error represents a network/timeout/non-2xx failure, as distinct from an
// API-level business failure (which is returned as a normal Envelope with
// Success=false).
type Error struct {
	HTTPStatus int
	Err        error
}

func (e *Error) Error() string {
	if e.HTTPStatus != 0 {
		return fmt.Sprintf("transport: http %d: %v", e.HTTPStatus, e.Err)
	}
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Envelope is the uniform control-plane response shape.
type Envelope struct {
	RequestID      string          `json:"RequestId"`
	Success        bool            `json:"Success"`
	Code           string          `json:"Code"`
	Message        string          `json:"Message"`
	HTTPStatusCode int             `json:"HttpStatusCode"`
	Data           json.RawMessage `json:"Data"`
}

// Client sends RPCs against the control-plane. Safe for concurrent use.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *ratelimit.Limiter
}

// New creates a transport Client. limiter may be nil to disable
// client-side throttling.
func New(cfg Config, limiter *ratelimit.Limiter) *Client {
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 60 * time.Second
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	if cfg.SignatureAlgo == "" {
		cfg.SignatureAlgo = "v2"
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.ReadTimeout + cfg.ConnectTimeout,
		},
		limiter: limiter,
	}
}

// Invoke performs one Action RPC. apiKey is sent as a Bearer token in the
// Authorization form field; params carries the action-specific fields.
// Invoke never interprets Envelope.Success — that is left to the caller.
func (c *Client) Invoke(ctx context.Context, action, apiKey string, params map[string]string) (resultEnv *Envelope, resultErr error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		if resultErr != nil {
			outcome = "error"
		}
		metrics.RecordRPC(action, outcome, start)
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &Error{Err: fmt.Errorf("rate limit wait: %w", err)}
		}
	}

	form := url.Values{}
	form.Set("Action", action)
	form.Set("Version", APIVersion)
	form.Set("Authorization", "Bearer "+apiKey)
	if c.cfg.RegionID != "" {
		form.Set("RegionId", c.cfg.RegionID)
	}
	for k, v := range params {
		form.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	slog.Debug("transport: sending rpc", "action", action, "authorization", MaskAuth("Bearer "+apiKey))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("%s: %w", action, err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{HTTPStatus: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{HTTPStatus: resp.StatusCode, Err: fmt.Errorf("%s: non-2xx response: %s", action, string(body))}
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &Error{HTTPStatus: resp.StatusCode, Err: fmt.Errorf("%s: malformed body: %w", action, err)}
	}
	if env.HTTPStatusCode == 0 {
		env.HTTPStatusCode = resp.StatusCode
	}

	return &env, nil
}

// MaskAuth masks a bearer token for logging: <first6>***<last4>, or
// <first2>****<last2> when shorter than 12 characters, or just "****" when
// 4 characters or fewer.
func MaskAuth(value string) string {
	token := strings.TrimPrefix(value, "Bearer ")
	if len(token) >= 12 {
		return token[:6] + "***" + token[len(token)-4:]
	}
	if len(token) <= 4 {
		return "****"
	}
	return token[:2] + "****" + token[len(token)-2:]
}
