// Package ocr is a thin client for a multimodal OCR model served behind an
// OpenAI-compatible chat/completions endpoint. One call submits one raster
// image with a fixed transcription prompt and returns the extracted text.
package ocr

import (
	"context"

	"github.com/casevault/ocrbatch/errx"
	"github.com/casevault/ocrbatch/logx"
)

// Provider performs a single extraction attempt against the endpoint.
// Implementations classify their failures through this package's error codes
// so the Client can decide what is worth retrying.
type Provider interface {
	ExtractText(ctx context.Context, imageData []byte, opts ...Option) (Result, error)
}

// Result represents the output of an OCR operation
type Result struct {
	// Text is the extracted text
	Text string

	// Usage contains token/resource usage statistics
	Usage Usage
}

// Usage represents resource usage statistics for OCR operations
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	ProcessingTime   int // in milliseconds
}

// Client wraps a Provider with retry, backoff and a per-attempt temperature
// schedule.
type Client struct {
	provider    Provider
	maxAttempts int
	backoff     Backoff
	sleep       SleepFunc
	schedule    []float64
	logger      *logx.Logger
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithMaxAttempts sets the total attempt budget (first try included)
func WithMaxAttempts(n int) ClientOption {
	return func(c *Client) {
		if n >= 1 {
			c.maxAttempts = n
		}
	}
}

// WithBackoff sets the retry delay policy
func WithBackoff(b Backoff) ClientOption {
	return func(c *Client) {
		c.backoff = b
	}
}

// WithSleep injects the sleep implementation, used by tests to observe delays
// without waiting for them
func WithSleep(s SleepFunc) ClientOption {
	return func(c *Client) {
		c.sleep = s
	}
}

// WithTemperatureSchedule sets the per-attempt sampling temperatures
func WithTemperatureSchedule(schedule []float64) ClientOption {
	return func(c *Client) {
		if len(schedule) > 0 {
			c.schedule = schedule
		}
	}
}

// WithLogger sets the logger used for retry diagnostics
func WithLogger(l *logx.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates an OCR client around a provider
func NewClient(provider Provider, opts ...ClientOption) *Client {
	c := &Client{
		provider:    provider,
		maxAttempts: 3,
		backoff:     DefaultBackoff,
		sleep:       sleepContext,
		schedule:    defaultTemperatureSchedule,
		logger:      logx.GetLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ExtractText submits one image and returns the transcription. Transient
// failures are retried with exponential backoff until the attempt budget is
// spent; authentication failures and other permanent rejections surface
// immediately.
func (c *Client) ExtractText(ctx context.Context, imageData []byte) (Result, error) {
	var lastErr error

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			delay := c.backoff(attempt)
			c.logger.Warn("transient OCR failure (%s), retry %d/%d in %s",
				errx.Wrap(lastErr, "attempt failed", errx.TypeUnavailable).Error(),
				attempt, c.maxAttempts-1, delay)
			if err := c.sleep(ctx, delay); err != nil {
				return Result{}, ocrErrors.NewWithCause(ErrCallFailed, err).
					WithDetail("attempts", attempt)
			}
		}

		result, err := c.provider.ExtractText(ctx, imageData,
			WithTemperature(c.temperatureFor(attempt)))
		if err == nil {
			return result, nil
		}
		if !IsRetryable(err) {
			return Result{}, err
		}

		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}

	return Result{}, ocrErrors.NewWithCause(ErrCallFailed, lastErr).
		WithDetail("attempts", c.maxAttempts)
}

func (c *Client) temperatureFor(attempt int) float64 {
	if attempt >= len(c.schedule) {
		return c.schedule[len(c.schedule)-1]
	}
	return c.schedule[attempt]
}
