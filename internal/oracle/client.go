package oracle

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Config wires the client to an OpenAI-compatible completion endpoint.
// An empty APIKey is the supported "oracle unavailable" mode: every query
// answers not-ok and the engine runs on rules alone.
type Config struct {
	APIKey            string
	Model             string
	BaseURL           string
	RequestsPerWindow int
	Window            time.Duration
	MaxRetries        int
	BackoffStep       time.Duration
	CeilingRPS        float64
}

// Client is a rate-limited wrapper around the external text-completion
// service. Callers must treat a not-ok answer as "fall back to a
// conservative default", never as fatal.
type Client struct {
	llm        llms.Model
	limiter    *WindowLimiter
	maxRetries int
	backoff    time.Duration
	sleep      func(time.Duration)
	log        *slog.Logger
}

func New(cfg Config, log *slog.Logger) (*Client, error) {
	c := &Client{
		limiter:    NewWindowLimiter(cfg.RequestsPerWindow, cfg.Window, log),
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.BackoffStep,
		sleep:      time.Sleep,
		log:        log,
	}

	if cfg.APIKey == "" {
		log.Info("no oracle credential configured, running rule-only")
		return c, nil
	}

	model, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithHTTPClient(newHTTPClient(cfg.CeilingRPS)),
	)
	if err != nil {
		return nil, err
	}
	c.llm = model
	return c, nil
}

// Available reports whether a credential is configured.
func (c *Client) Available() bool { return c.llm != nil }

// Query sends one prompt and returns the raw completion text. Transient
// failures retry with linearly increasing backoff; after the retries are
// exhausted the answer is not-ok.
func (c *Client) Query(ctx context.Context, prompt string, maxTokens int) (string, bool) {
	if c.llm == nil {
		return "", false
	}

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		c.limiter.Acquire()

		out, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt,
			llms.WithMaxTokens(maxTokens),
			llms.WithTemperature(0),
		)
		if err == nil {
			return strings.TrimSpace(out), true
		}

		c.log.Warn("oracle query failed", "attempt", attempt, "error", err)
		if attempt < c.maxRetries {
			c.sleep(c.backoff * time.Duration(attempt))
		}
	}
	return "", false
}
