package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/nikolayk812/storefront/internal/logging"
	"github.com/nikolayk812/storefront/internal/metrics"
	"github.com/nikolayk812/storefront/internal/service"
)

const (
	signatureHeader = "Stripe-Signature"
	maxWebhookBody  = 1 << 20
)

type WebhookResponse struct {
	Received bool `json:"received"`
}

// PaymentWebhook verifies the raw body against the signature header before anything
// else. Authenticated deliveries are acknowledged even when they change nothing.
func (h *Handler) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logging.FromCtx(ctx)

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		metrics.ObserveWebhook(string(service.OutcomeRejected))
		respondError(w, http.StatusBadRequest, "invalid_body", "cannot read request body")
		return
	}

	outcome, err := h.reconciler.Handle(ctx, payload, r.Header.Get(signatureHeader))
	metrics.ObserveWebhook(string(outcome))

	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, WebhookResponse{Received: true})

	case errors.Is(err, service.ErrInvalidSignature):
		log.Warn("webhook rejected", "err", err)
		respondError(w, http.StatusBadRequest, "invalid_signature", "webhook signature verification failed")

	case h.opts.RetryOnFailure:
		log.Error("webhook processing failed, asking for redelivery", "outcome", outcome, "err", err)
		respondError(w, http.StatusInternalServerError, "processing_failed", "webhook processing failed")

	default:
		log.Error("webhook processing failed, acknowledging", "outcome", outcome, "err", err)
		respondJSON(w, http.StatusOK, WebhookResponse{Received: true})
	}
}
