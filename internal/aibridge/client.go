// Package aibridge is the outbound HTTP client for the external AI service.
// The contract is a single POST of {task, data, context?} answered by
// {success, response?, confidence?, processing_time?, suggestions?, error?}.
package aibridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/altan/schoolhub/internal/app/models/dto"
	"github.com/altan/schoolhub/internal/pkg/apperrors"
	"github.com/altan/schoolhub/internal/pkg/logger"
)

// Config holds the bridge connection settings.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// Client forwards structured task requests to the AI service.
type Client struct {
	baseURL       string
	retryAttempts int
	retryDelay    time.Duration
	httpClient    *http.Client
}

// NewClient creates a new bridge client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:       cfg.BaseURL,
		retryAttempts: cfg.RetryAttempts,
		retryDelay:    cfg.RetryDelay,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Analyze sends one task to the AI service. Transport errors and 5xx answers
// are retried up to the configured attempt count with a fixed delay; context
// cancellation aborts both the in-flight request and the retry loop.
func (c *Client) Analyze(ctx context.Context, request dto.AnalyzeRequest) (*dto.AnalyzeResult, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analyze request: %w", err)
	}

	attempts := c.retryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		result, retryable, err := c.doAnalyze(ctx, body)
		if err == nil {
			return result, nil
		}

		lastErr = err
		if !retryable {
			return nil, err
		}

		logger.Warn().Err(err).Int("attempt", attempt).Msg("AI bridge request failed, retrying")
	}

	return nil, fmt.Errorf("%w: %v", apperrors.ErrAIBridgeUnavailable, lastErr)
}

func (c *Client) doAnalyze(ctx context.Context, body []byte) (result *dto.AnalyzeResult, retryable bool, err error) {
	url := fmt.Sprintf("%s/api/v1/analyze", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, true, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("ai service returned status %d", resp.StatusCode)
	}

	var decoded dto.AnalyzeResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, false, fmt.Errorf("failed to decode response: %w", err)
	}

	// Non-5xx failures are reported back to the caller as-is, not retried
	return &decoded, false, nil
}
