package api

import (
	"encoding/xml"
	"net/http"

	"github.com/masjidlabs/minbar/internal/log"
)

// messagingResponse is the Twilio TwiML reply envelope. The webhook
// returns exactly one <Message> per inbound message.
type messagingResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// writeTwiML writes a 200 TwiML envelope carrying the reply text.
// Encoding a flat struct of strings cannot fail in practice; should it
// ever, a hand-assembled empty envelope still goes out so the
// transport never sees a broken response.
func writeTwiML(w http.ResponseWriter, reply string, logger log.Logger) {
	body, err := xml.Marshal(messagingResponse{Message: reply})
	if err != nil {
		logger.Error("failed to encode TwiML response", "error", err)
		body = []byte("<Response><Message></Message></Response>")
	}

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(append([]byte(xml.Header), body...)); err != nil {
		logger.Debug("failed to write response body", "error", err)
	}
}
