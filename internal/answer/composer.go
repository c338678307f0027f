package answer

import (
	"context"
	"strings"
	"time"

	"github.com/masjidlabs/minbar/internal/diag"
	"github.com/masjidlabs/minbar/internal/kb"
	"github.com/masjidlabs/minbar/internal/log"
	"github.com/masjidlabs/minbar/internal/schedule"
)

// Composer turns an inbound message into reply text.
//
// Chain: schedule short-circuit → keyword retrieval → generator (or
// local deterministic composition). Compose never returns an error;
// the worst outcomes are the fixed fallback or an apology handled by
// the HTTP layer.
type Composer struct {
	kb          *kb.Store
	schedule    *schedule.Store
	generator   Generator // nil = demo mode
	defaultYear int
	logger      log.Logger
	errors      *diag.Recorder

	// now is injectable for tests; "tomorrow" must be re-evaluated
	// at call time, never cached.
	now func() time.Time
}

// New creates a Composer. generator may be nil (demo mode).
func New(kbStore *kb.Store, schedStore *schedule.Store, generator Generator, defaultYear int, logger log.Logger, errors *diag.Recorder) *Composer {
	if errors == nil {
		errors = &diag.Recorder{}
	}
	return &Composer{
		kb:          kbStore,
		schedule:    schedStore,
		generator:   generator,
		defaultYear: defaultYear,
		logger:      logger,
		errors:      errors,
		now:         time.Now,
	}
}

// Generating reports whether an external generator is configured.
func (c *Composer) Generating() bool {
	return c.generator != nil
}

// Compose produces the reply for one inbound message.
func (c *Composer) Compose(ctx context.Context, message string) string {
	message = strings.TrimSpace(message)
	now := c.now()

	// 1. Deterministic schedule lookup short-circuits everything.
	if m, ok := c.schedule.Snapshot().Match(message, now, c.defaultYear); ok {
		c.logger.Debug("schedule match", "date", m.Date, "key", m.Key)
		return clamp(m.Reply(now))
	}

	// 2. Keyword retrieval; no context means the fixed fallback.
	contextText := c.kb.Snapshot().Retrieve(message, maxContextChars)
	if contextText == "" {
		return Fallback
	}

	// 3. Demo mode: deterministic composition from context.
	if c.generator == nil {
		return clamp(demoPreamble + snippet(contextText))
	}

	// 4. Grounded generation; any failure degrades locally.
	text, err := c.generator.Generate(ctx, systemPrompt, contextText, message)
	if err != nil {
		c.errors.Record("generator", err)
		c.logger.Warn("generator failed, degrading to local composition", "error", err)
		return clamp(unavailablePreamble + snippet(contextText))
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Fallback
	}
	return clamp(text)
}

// snippet returns the first snippetChars runes of the context.
func snippet(contextText string) string {
	runes := []rune(contextText)
	if len(runes) <= snippetChars {
		return contextText
	}
	return string(runes[:snippetChars])
}

// clamp bounds a reply to maxReplyChars runes, appending an ellipsis
// marker sized so the total still fits the limit.
func clamp(s string) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= maxReplyChars {
		return s
	}
	return string(runes[:maxReplyChars-len(ellipsis)]) + ellipsis
}
