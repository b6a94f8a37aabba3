package port

import (
	"context"
	"errors"

	"github.com/nikolayk812/storefront/internal/domain"
)

type PaymentRepository interface {
	GetPayment(ctx context.Context, orderID int64) (domain.Payment, error)

	// MarkPaid moves the order to paid and upserts its payment row in one transaction.
	MarkPaid(ctx context.Context, payment domain.Payment) (domain.Payment, error)
}

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrSignature       = errors.New("webhook signature verification failed")
)

type CheckoutLineItem struct {
	Name        string
	Description string
	UnitAmount  int64 // minor units
	Currency    string
	Quantity    int64
}

type CheckoutSessionRequest struct {
	LineItems        []CheckoutLineItem
	SuccessURL       string
	CancelURL        string
	CorrelationToken string
	CustomerEmail    string
}

type CheckoutSession struct {
	ID          string
	RedirectURL string
}

type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (CheckoutSession, error)

	// VerifyWebhook authenticates the raw payload, failures wrap ErrSignature.
	VerifyWebhook(payload []byte, signatureHeader string) (domain.PaymentEvent, error)
}

// EventDeduplicator remembers provider event ids that were fully processed.
type EventDeduplicator interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Remember(ctx context.Context, eventID string) error
}
