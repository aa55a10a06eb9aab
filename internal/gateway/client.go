// Package gateway is the single choke point for every call the client
// makes against the Sallaty service. It owns the session cookie, the
// JSON envelope, and the error normalization the screens rely on.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/sallaty-client/pkg/config"
	pkgerrors "github.com/angelmondragon/sallaty-client/pkg/errors"
	"github.com/angelmondragon/sallaty-client/pkg/logger"
)

var (
	errBaseURLRequired = errors.New("api base url is required")
	errLoggerRequired  = errors.New("gateway logger is required")
)

// Client talks to the Sallaty service with centralized credentials,
// logging, and error mapping.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logg       *logger.Logger
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client. A cookie jar is
// attached when the supplied client has none, since the session
// credential lives in a cookie.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured service base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the service gateway from configuration.
func NewClient(cfg config.APIConfig, logg *logger.Logger, opts ...Option) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}

	client := &Client{
		baseURL: strings.TrimSpace(cfg.BaseURL),
		logg:    logg,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.baseURL == "" {
		return nil, errBaseURLRequired
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if client.httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("build cookie jar: %w", err)
		}
		client.httpClient.Jar = jar
	}

	return client, nil
}

// do executes one request against the service. Bodies are serialized as
// JSON, responses decoded as JSON, and every failure is logged here once
// so callers only surface the returned error.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	url := c.buildURL(endpoint)
	requestID := uuid.NewString()
	ctx = c.logg.WithFields(ctx, map[string]any{
		"method":     method,
		"endpoint":   endpoint,
		"request_id": requestID,
	})

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			apiErr := pkgerrors.Wrap(pkgerrors.CodeTransport, err, err.Error())
			c.logg.Error(ctx, "marshal request body", apiErr)
			return apiErr
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		apiErr := pkgerrors.Wrap(pkgerrors.CodeTransport, err, err.Error())
		c.logg.Error(ctx, "build request", apiErr)
		return apiErr
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	c.logg.Debug(ctx, "request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := pkgerrors.Wrap(pkgerrors.CodeTransport, err, err.Error())
		c.logg.Error(ctx, "execute request", apiErr)
		return apiErr
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr := pkgerrors.Wrap(pkgerrors.CodeTransport, err, err.Error())
		c.logg.Error(ctx, "read response body", apiErr)
		return apiErr
	}

	ctx = c.logg.WithField(ctx, "status", resp.StatusCode)

	if resp.StatusCode >= 400 {
		apiErr := pkgerrors.New(pkgerrors.CodeForHTTPStatus(resp.StatusCode), serverMessage(raw))
		c.logg.Error(ctx, "service reported failure", apiErr)
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			apiErr := pkgerrors.Wrap(pkgerrors.CodeTransport, err, err.Error())
			ctx = c.logg.WithField(ctx, "error_dump", pkgerrors.Dump(apiErr))
			c.logg.Error(ctx, "decode response body", apiErr)
			return apiErr
		}
	}

	c.logg.Debug(ctx, "response")
	return nil
}

// serverMessage pulls the service's message field out of a failure body,
// falling back to the generic text when the body carries none.
func serverMessage(raw []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Message); msg != "" {
			return msg
		}
	}
	return pkgerrors.GenericServerMessage
}

func (c *Client) buildURL(endpoint string) string {
	trimmed := strings.TrimRight(c.baseURL, "/")
	endpoint = strings.TrimLeft(endpoint, "/")
	return fmt.Sprintf("%s/%s", trimmed, endpoint)
}
