package answer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/masjidlabs/minbar/internal/log"
)

// GeminiConfig configures the Gemini-backed Generator.
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration // per-call budget, retries included
}

// retry tuning for transient Gemini failures.
const (
	maxRetries      = 2
	initialInterval = 500 * time.Millisecond
	maxInterval     = 5 * time.Second
)

// Gemini generates answers via the Gemini API. Calls are paced with a
// token bucket so a burst of webhook traffic cannot blow the quota.
type Gemini struct {
	client  *genai.Client
	cfg     GeminiConfig
	limiter *rate.Limiter
	logger  log.Logger
}

// NewGemini creates a Gemini generator. The API key must be non-empty;
// the caller decides demo mode before getting here.
func NewGemini(ctx context.Context, cfg GeminiConfig, logger log.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Gemini{
		client:  client,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(1), 3), // 1 call/sec, burst 3
		logger:  logger,
	}, nil
}

// Generate asks the model to answer the question from the given
// context only. Transient failures are retried with exponential
// backoff inside the configured timeout.
func (g *Gemini) Generate(ctx context.Context, system, contextText, question string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	prompt := fmt.Sprintf("CONTEXT:\n%s\n\nQUESTION:\n%s", contextText, question)
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr(g.cfg.Temperature),
		MaxOutputTokens:   int32(g.cfg.MaxTokens),
	}

	var lastErr error
	delay := initialInterval
	start := time.Now()

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}

		resp, err := g.client.Models.GenerateContent(ctx, g.cfg.Model, contents, genCfg)
		if err == nil {
			text := responseText(resp)
			g.logger.Debug("generator call succeeded",
				"attempts", attempt+1,
				"elapsed", time.Since(start),
			)
			return text, nil
		}
		lastErr = err

		if !retryableError(err) {
			return "", fmt.Errorf("generate content: %w", err)
		}
		if attempt == maxRetries {
			break
		}

		g.logger.Debug("retrying generator call", "attempt", attempt+1, "delay", delay, "error", err)
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("generate canceled during retry: %w", ctx.Err())
		case <-time.After(delay):
			delay = min(delay*2, maxInterval)
		}
	}

	return "", fmt.Errorf("generate content after %d retries: %w", maxRetries, lastErr)
}

// responseText flattens the first candidate's text parts.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

// retryablePatterns groups error substrings by category, matched
// case-insensitively. String matching is the only option: the Gemini
// SDK does not expose typed errors for transient failures.
var retryablePatterns = [][]string{
	{"rate limit", "quota", "429"},
	{"500", "502", "503", "504", "unavailable"},
	{"connection reset", "timeout", "temporary"},
}

// retryableError reports whether err is transient.
func retryableError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, group := range retryablePatterns {
		for _, pattern := range group {
			if strings.Contains(msg, pattern) {
				return true
			}
		}
	}
	return false
}
