// Package elastic is a thin HTTP adapter for the full-text/vector search
// engine. The engine is a black box: this package only knows the JSON
// request/response contract, never the ranking semantics.
package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mediquery/mediquery/internal/domain"
)

const defaultTimeout = 30 * time.Second

// Config holds engine connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client issues search requests against the engine over HTTP.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	logger  *zap.Logger
}

// NewClient creates an engine client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

// Search posts a search body against the given indices. Engine failures are
// wrapped as SearchFailureError; context cancellation is propagated as-is.
func (c *Client) Search(ctx context.Context, indices []string, body map[string]any) (*SearchResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal search body: %w", err)
	}

	url := fmt.Sprintf("%s/%s/_search", c.baseURL, strings.Join(indices, ","))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "ApiKey "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("engine call aborted: %w", err)
		}
		return nil, domain.NewSearchFailure(err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewSearchFailure("read response: " + err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Engine returned error",
			zap.Int("status", resp.StatusCode),
			zap.String("url", url),
		)
		return nil, domain.NewSearchFailure(engineErrorMessage(resp.StatusCode, data))
	}

	var sr SearchResponse
	if err := json.Unmarshal(data, &sr); err != nil {
		return nil, domain.NewSearchFailure("decode response: " + err.Error())
	}
	return &sr, nil
}

// Ping checks engine reachability.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("build ping request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "ApiKey "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.NewSearchFailure(err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return domain.NewSearchFailure(fmt.Sprintf("ping status %d", resp.StatusCode))
	}
	return nil
}

// engineErrorMessage pulls the engine's error reason out of the response
// body when it has the standard error envelope.
func engineErrorMessage(status int, body []byte) string {
	var envelope struct {
		Error struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Reason != "" {
		return fmt.Sprintf("%s: %s", envelope.Error.Type, envelope.Error.Reason)
	}
	return fmt.Sprintf("engine status %d", status)
}
