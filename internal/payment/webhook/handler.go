package webhook

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"legalpay-be/internal/logger"
	"legalpay-be/internal/order"
	"legalpay-be/internal/payment"

	"go.uber.org/zap"
)

// Handler terminates the acquirer's callback endpoint.
type Handler struct {
	processor *Processor
}

func NewHandler(p *Processor) *Handler {
	return &Handler{processor: p}
}

// WebhookHandler is the actual route handler. Response semantics are the
// acquirer's, not REST's: 200 + literal "OK" stops redelivery, any other
// status makes the acquirer retry.
func (h *Handler) WebhookHandler(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// UseNumber keeps numeric literals verbatim for token recomputation.
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		log.Warn("webhook body is not valid JSON", zap.Error(err))
		http.Error(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	ack, err := h.processor.Process(r.Context(), raw)
	if err != nil {
		http.Error(w, err.Error(), webhookStatus(err))
		return
	}

	w.WriteHeader(http.StatusOK)
	io.WriteString(w, ack)
}

// webhookStatus maps each processing error kind to the response status that
// drives the acquirer's retry behavior.
func webhookStatus(err error) int {
	switch {
	case errors.Is(err, payment.ErrInvalidSignature):
		return http.StatusForbidden
	case errors.Is(err, ErrMalformedPayload):
		return http.StatusBadRequest
	case errors.Is(err, order.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, payment.ErrUnknownStatus):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
