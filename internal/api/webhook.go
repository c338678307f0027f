package api

import (
	"fmt"
	"net/http"

	"github.com/masjidlabs/minbar/internal/answer"
	"github.com/masjidlabs/minbar/internal/diag"
	"github.com/masjidlabs/minbar/internal/log"
)

// webhookHandler answers Twilio WhatsApp webhooks.
type webhookHandler struct {
	responder Responder
	logger    log.Logger
	errors    *diag.Recorder
}

// receive handles one inbound message. Twilio posts form-encoded
// fields (Body, From, To); the reply is always a valid TwiML envelope,
// even when the composition chain fails — Twilio treats any non-TwiML
// response as a delivery error the user would see.
func (h *webhookHandler) receive(w http.ResponseWriter, r *http.Request) {
	reply := h.compose(r)
	writeTwiML(w, reply, h.logger)
}

// compose parses the form and runs the composer, converting every
// failure mode into the apology reply.
func (h *webhookHandler) compose(r *http.Request) (reply string) {
	defer func() {
		if rec := recover(); rec != nil {
			h.errors.Record("webhook", fmt.Errorf("panic: %v", rec))
			h.logger.Error("webhook panic recovered",
				"error", rec,
				"request_id", requestIDFromContext(r.Context()),
			)
			reply = answer.Apology
		}
	}()

	if err := r.ParseForm(); err != nil {
		h.errors.Record("webhook", err)
		h.logger.Warn("malformed webhook form", "error", err)
		return answer.Apology
	}

	// An empty Body is not an error; it flows through the chain and
	// lands on the fixed fallback.
	body := r.PostFormValue("Body")
	return h.responder.Compose(r.Context(), body)
}
