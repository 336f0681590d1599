package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request id sent with every upload
const RequestIDHeader = "X-Request-ID"

// ClientConfig represents HTTP client configuration
type ClientConfig struct {
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	UserAgent      string
	Headers        map[string]string
}

// DefaultConfig returns default HTTP client configuration
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		ConnectTimeout: 30 * time.Second,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		UserAgent:      "recipe-forge/1.0",
		Headers:        make(map[string]string),
	}
}

// Client wraps a configured *http.Client. Requests are issued exactly once.
type Client struct {
	client *http.Client
	config *ClientConfig
}

// NewClient creates a new HTTP client with the given configuration
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	dialer := &net.Dialer{Timeout: config.ConnectTimeout}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   config.ConnectTimeout,
		ResponseHeaderTimeout: config.WriteTimeout + config.ReadTimeout,
	}

	return &Client{
		client: &http.Client{
			Transport: transport,
			Timeout:   config.ConnectTimeout + config.WriteTimeout + config.ReadTimeout,
		},
		config: config,
	}
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
	RequestID  string
}

// PostWithContext performs a single HTTP POST and reads the whole body.
// A non-nil error means the exchange itself failed; status codes are left to the caller.
func (c *Client) PostWithContext(ctx context.Context, url string, contentType string, body io.Reader) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create POST request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	return c.do(req)
}

// PostMultipart encodes form and POSTs it to url.
func (c *Client) PostMultipart(ctx context.Context, url string, form *Form) (*Response, error) {
	body, contentType, err := form.Encode()
	if err != nil {
		return nil, err
	}
	return c.PostWithContext(ctx, url, contentType, body)
}

func (c *Client) do(req *http.Request) (*Response, error) {
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	for key, value := range c.config.Headers {
		req.Header.Set(key, value)
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		logCall(req.URL.String(), requestID, time.Since(start), 0, err)
		return nil, err
	}

	data, err := ReadResponseBody(resp)
	if err != nil {
		logCall(req.URL.String(), requestID, time.Since(start), resp.StatusCode, err)
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	logCall(req.URL.String(), requestID, time.Since(start), resp.StatusCode, nil)
	return &Response{
		StatusCode: resp.StatusCode,
		Body:       data,
		RequestID:  requestID,
	}, nil
}

// logCall logs API call statistics
func logCall(url, requestID string, duration time.Duration, statusCode int, err error) {
	fields := []any{
		"url", url,
		"request_id", requestID,
		"duration", duration,
		"status", statusCode,
	}

	if err != nil {
		fields = append(fields, "error", err)
		slog.Warn("API call failed", fields...)
		return
	}

	if !IsSuccess(statusCode) {
		slog.Warn("API call failed", fields...)
		return
	}

	slog.Debug("API call completed", fields...)
}
