// Package api provides the HTTP surface for minbar.
//
// Routes:
//
//	POST /whatsapp  →  webhook; always answers with a TwiML envelope
//	GET  /health    →  liveness probe
//	GET  /debug     →  diagnostics (corpus size, schedule rows, last error)
//
// Middleware order (outermost first): recovery → requestID → logging →
// rate limit. Health probes sit outside the middleware stack.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/masjidlabs/minbar/internal/diag"
	"github.com/masjidlabs/minbar/internal/kb"
	"github.com/masjidlabs/minbar/internal/log"
	"github.com/masjidlabs/minbar/internal/schedule"
)

// Responder composes a reply for one inbound message.
// Implemented by answer.Composer; the interface lives here because
// this package is its consumer.
type Responder interface {
	Compose(ctx context.Context, message string) string
}

// ServerConfig contains configuration for creating the API server.
type ServerConfig struct {
	Logger    log.Logger
	Responder Responder       // Required
	KB        *kb.Store       // Required: /debug corpus stats
	Schedule  *schedule.Store // Required: /debug row count
	Errors    *diag.Recorder  // Optional: /debug last error

	// GeneratorConfigured is surfaced on /debug so operators can tell
	// demo mode from a misconfigured credential.
	GeneratorConfigured bool

	TrustProxy bool // trust X-Real-IP/X-Forwarded-For (behind reverse proxy)
	RateBurst  int  // rate limiter burst per IP (0 = default 60)
}

// Server is the webhook HTTP server.
type Server struct {
	mux *http.ServeMux
}

// NewServer creates a server with all routes configured.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Responder == nil {
		return nil, errors.New("responder is required")
	}
	if cfg.KB == nil || cfg.Schedule == nil {
		return nil, errors.New("kb and schedule stores are required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}
	if cfg.Errors == nil {
		cfg.Errors = &diag.Recorder{}
	}

	wh := &webhookHandler{
		responder: cfg.Responder,
		logger:    logger,
		errors:    cfg.Errors,
	}
	dh := &debugHandler{
		kb:        cfg.KB,
		schedule:  cfg.Schedule,
		errors:    cfg.Errors,
		generator: cfg.GeneratorConfigured,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /whatsapp", wh.receive)
	mux.HandleFunc("GET /debug", dh.status)

	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 60
	}
	rl := newRateLimiter(1.0, burst)

	var handler http.Handler = mux
	handler = rateLimitMiddleware(rl, cfg.TrustProxy, logger)(handler)
	handler = loggingMiddleware(logger)(handler)
	handler = requestIDMiddleware()(handler)
	handler = recoveryMiddleware(logger)(handler)

	// Health sits outside the middleware stack so probes never hit
	// the rate limiter.
	topMux := http.NewServeMux()
	topMux.HandleFunc("GET /health", health)
	topMux.Handle("/", handler)

	return &Server{mux: topMux}, nil
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}
