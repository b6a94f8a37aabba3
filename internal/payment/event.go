package payment

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// verifyEvent checks the Stripe-Signature header against secret and reduces
// the event to a domain.PaymentEvent. Only checkout session payloads are decoded,
// other event types come back with just ID and Type set.
func verifyEvent(payload []byte, header, secret string) (domain.PaymentEvent, error) {
	var e domain.PaymentEvent

	event, err := webhook.ConstructEventWithOptions(payload, header, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return e, fmt.Errorf("webhook.ConstructEvent: %w: %w", port.ErrSignature, err)
	}

	e.ID = event.ID
	e.Type = string(event.Type)

	if e.Type != domain.EventTypeCheckoutCompleted || event.Data == nil {
		return e, nil
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		// a signed but unreadable object carries no token, reconciliation treats it as malformed
		return e, nil
	}

	e.CorrelationToken = correlationToken(cs)
	e.AmountMinor = cs.AmountTotal
	e.Currency = strings.ToUpper(string(cs.Currency))
	if cs.PaymentIntent != nil {
		e.ProviderPaymentID = cs.PaymentIntent.ID
	}

	return e, nil
}

// client_reference_id is preferred, metadata.order_id is the fallback.
func correlationToken(cs stripe.CheckoutSession) string {
	if cs.ClientReferenceID != "" {
		return cs.ClientReferenceID
	}
	return cs.Metadata[metadataOrderID]
}

// CheckoutCompletedPayload encodes a checkout.session.completed event the way Stripe delivers it.
func CheckoutCompletedPayload(event domain.PaymentEvent) ([]byte, error) {
	object := map[string]any{
		"id":                  "cs_" + event.ID,
		"object":              "checkout.session",
		"client_reference_id": event.CorrelationToken,
		"amount_total":        event.AmountMinor,
		"currency":            strings.ToLower(event.Currency),
		"payment_intent":      event.ProviderPaymentID,
		"metadata":            map[string]string{metadataOrderID: event.CorrelationToken},
	}

	eventType := event.Type
	if eventType == "" {
		eventType = domain.EventTypeCheckoutCompleted
	}

	data, err := json.Marshal(map[string]any{
		"id":          event.ID,
		"object":      "event",
		"type":        eventType,
		"api_version": stripe.APIVersion,
		"data":        map[string]any{"object": object},
	})
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return data, nil
}

// SignPayload produces a Stripe-Signature header value for payload.
func SignPayload(payload []byte, secret string, at time.Time) string {
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: at,
	})
	return signed.Header
}
