package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logging"
	"github.com/nikolayk812/storefront/internal/port"
	"golang.org/x/text/currency"
)

// Outcome says what happened to an authenticated webhook delivery.
type Outcome string

const (
	OutcomeProcessed     Outcome = "processed"
	OutcomeIgnored       Outcome = "ignored"
	OutcomeMalformed     Outcome = "malformed"
	OutcomeOrderNotFound Outcome = "order_not_found"
	OutcomeDuplicate     Outcome = "duplicate"
	OutcomeRejected      Outcome = "rejected"
	OutcomeFailed        Outcome = "failed"
)

// Reconciler applies provider confirmations to local orders.
type Reconciler struct {
	provider         port.PaymentProvider
	payments         port.PaymentRepository
	dedup            port.EventDeduplicator
	fallbackCurrency currency.Unit
}

// NewReconciler wires the reconciler, dedup may be nil.
func NewReconciler(provider port.PaymentProvider, payments port.PaymentRepository, dedup port.EventDeduplicator, fallbackCurrency currency.Unit) *Reconciler {
	return &Reconciler{
		provider:         provider,
		payments:         payments,
		dedup:            dedup,
		fallbackCurrency: fallbackCurrency,
	}
}

// Handle verifies and applies one webhook delivery.
//
// Only a signature failure (ErrInvalidSignature) and a storage failure (ErrProcessing)
// return an error. Foreign event types, unusable correlation tokens and unknown orders are
// reported through the Outcome and change nothing. Applying the same confirmation twice
// leaves the order paid with a single payment row.
func (r *Reconciler) Handle(ctx context.Context, payload []byte, signature string) (Outcome, error) {
	log := logging.FromCtx(ctx)

	event, err := r.provider.VerifyWebhook(payload, signature)
	if err != nil {
		return OutcomeRejected, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	log = log.With("event_id", event.ID, "event_type", event.Type)

	if event.Type != domain.EventTypeCheckoutCompleted {
		log.Debug("ignoring webhook event")
		return OutcomeIgnored, nil
	}

	orderID, err := event.OrderID()
	if err != nil {
		log.Warn("webhook event has no usable correlation token", "token", event.CorrelationToken, "err", err)
		return OutcomeMalformed, nil
	}

	log = log.With("order_id", orderID)

	if r.dedup != nil && event.ID != "" {
		seen, err := r.dedup.Seen(ctx, event.ID)
		if err != nil {
			log.Warn("dedup lookup failed, processing anyway", "err", err)
		} else if seen {
			log.Info("webhook event already processed")
			return OutcomeDuplicate, nil
		}
	}

	_, err = r.payments.MarkPaid(ctx, domain.Payment{
		OrderID:           orderID,
		ProviderPaymentID: event.ProviderPaymentID,
		Amount:            domain.MoneyFromMinor(event.AmountMinor, r.eventCurrency(event)),
		Status:            domain.PaymentStatusCompleted,
	})
	if err != nil {
		if errors.Is(err, port.ErrOrderNotFound) {
			log.Warn("webhook refers to unknown order")
			return OutcomeOrderNotFound, nil
		}
		return OutcomeFailed, fmt.Errorf("%w: payments.MarkPaid: %w", ErrProcessing, err)
	}

	if r.dedup != nil && event.ID != "" {
		if err := r.dedup.Remember(ctx, event.ID); err != nil {
			log.Warn("dedup remember failed", "err", err)
		}
	}

	log.Info("order marked paid", "amount_minor", event.AmountMinor, "currency", event.Currency)

	return OutcomeProcessed, nil
}

func (r *Reconciler) eventCurrency(event domain.PaymentEvent) currency.Unit {
	unit, err := domain.ParseCurrency(event.Currency)
	if err != nil {
		return r.fallbackCurrency
	}
	return unit
}
