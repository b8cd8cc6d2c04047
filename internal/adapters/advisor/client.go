// Package advisor talks to an OpenAI-compatible generative-text endpoint.
// The default base URL is Gemini's OpenAI-compatible API.
package advisor

import (
	"context"
	crand "crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"golang.org/x/time/rate"

	"snowland_hotels/internal/adapters/observability"
	"snowland_hotels/internal/domain"
)

const maxAttempts = 3

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	RPS     int
	Timeout time.Duration // per attempt
}

type Client struct {
	llm     llms.Model
	rl      *rate.Limiter
	timeout time.Duration
}

// New builds a client for cfg. Without an API key it returns
// domain.ErrNoCredential; callers treat that as "advice disabled".
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, domain.ErrNoCredential
	}
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
		openai.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("init llm client: %w", err)
	}
	return NewWithModel(llm, cfg.RPS, cfg.Timeout), nil
}

// NewWithModel wraps an existing model; tests pass a fake here.
func NewWithModel(m llms.Model, rps int, timeout time.Duration) *Client {
	if rps <= 0 {
		rps = 2
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{llm: m, rl: rate.NewLimiter(rate.Limit(rps), rps), timeout: timeout}
}

// Generate sends prompt as a single user message and returns the first choice.
// Transport errors are retried with backoff; an empty answer is not an error.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	// client-side rate limiting
	if err := c.rl.Wait(ctx); err != nil {
		return "", err
	}
	msgs := []llms.MessageContent{llms.TextParts(schema.ChatMessageTypeHuman, prompt)}

	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		start := time.Now()
		actx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.llm.GenerateContent(actx, msgs)
		cancel()
		if err == nil {
			observability.ObserveExternal("advisor", "generate", http.StatusOK, time.Since(start))
			if resp == nil || len(resp.Choices) == 0 {
				return "", nil
			}
			return resp.Choices[0].Content, nil
		}
		observability.ObserveExternal("advisor", "generate", 0, time.Since(start))
		observability.ObserveExternalErr("advisor", err)
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		lastErr = err
		if !retryable(err) {
			return "", err
		}
		if i < maxAttempts-1 && !sleepCtx(ctx, backoff(i)) {
			return "", ctx.Err()
		}
	}
	return "", lastErr
}

// retryable treats auth and request-shape failures as final.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	low := strings.ToLower(err.Error())
	for _, s := range []string{"401", "403", "unauthorized", "forbidden", "invalid api key", "400", "bad request"} {
		if strings.Contains(low, s) {
			return false
		}
	}
	return true
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// backoff returns an exponential backoff delay (200ms, 400ms, ...) with up to
// +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
