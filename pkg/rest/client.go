package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/autopeer-io/fleetconsole/pkg/log"
)

// RequestIDHeader carries a per-request id the API can echo in its own logs.
const RequestIDHeader = "X-Request-ID"

// maxDrain bounds how much of an error body is read before closing the connection.
const maxDrain = 64 << 10

type httpClient struct {
	cfg     *ClientConfig
	baseURL string
	http    *http.Client
}

var _ Client = (*httpClient)(nil)

// NewClient creates a new JSON-over-HTTP Client.
func NewClient(cfg *ClientConfig) (Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("rest config is required")
	}

	setDefaultConfig(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rest config: %w", err)
	}

	return &httpClient{
		cfg:     cfg,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Transport: cfg.Transport,
			Timeout:   cfg.Timeout,
		},
	}, nil
}

func (c *httpClient) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, isSuccess)
}

func (c *httpClient) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, isSuccess)
}

func (c *httpClient) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out, isSuccess)
}

func (c *httpClient) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, isDeleted)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// isDeleted accepts 404: the entity is gone either way.
func isDeleted(status int) bool {
	return isSuccess(status) || status == http.StatusNoContent || status == http.StatusNotFound
}

func (c *httpClient) do(ctx context.Context, method, path string, body, out any, accept func(int) bool) error {
	requestID := uuid.NewString()
	logger := log.FromContext(ctx).WithValues("method", method, "path", path, "requestID", requestID)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			logger.Warn("Request body is not encodable", "error", err)
			return &TransportError{Method: method, Path: path, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		terr := &TransportError{Method: method, Path: path, Err: err}
		logger.Warn("Request did not complete", "error", err, "elapsed", time.Since(start))
		return terr
	}
	defer resp.Body.Close()

	if !accept(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))
		logger.Warn("Request rejected", "status", resp.StatusCode, "elapsed", time.Since(start))
		return &RequestFailedError{Method: method, Path: path, StatusCode: resp.StatusCode}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))
		logger.Debug("Request succeeded", "status", resp.StatusCode, "elapsed", time.Since(start))
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		logger.Warn("Response body is not valid JSON", "status", resp.StatusCode, "error", err)
		return &DecodeError{Method: method, Path: path, Err: err}
	}

	logger.Debug("Request succeeded", "status", resp.StatusCode, "elapsed", time.Since(start))
	return nil
}
