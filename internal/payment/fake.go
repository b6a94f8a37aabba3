package payment

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

// FakeProvider never leaves the process: sessions redirect straight to the
// success URL and webhooks use the Stripe signature scheme with a local secret.
// It backs local runs and tests.
type FakeProvider struct {
	webhookSecret string

	mu       sync.Mutex
	requests []port.CheckoutSessionRequest
	failWith error
}

var _ port.PaymentProvider = (*FakeProvider)(nil)

func NewFakeProvider(webhookSecret string) *FakeProvider {
	return &FakeProvider{webhookSecret: webhookSecret}
}

func (p *FakeProvider) CreateCheckoutSession(_ context.Context, req port.CheckoutSessionRequest) (port.CheckoutSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.failWith != nil {
		return port.CheckoutSession{}, p.failWith
	}
	if len(req.LineItems) == 0 {
		return port.CheckoutSession{}, errors.New("no line items")
	}

	p.requests = append(p.requests, req)

	return port.CheckoutSession{
		ID:          "cs_fake_" + uuid.NewString(),
		RedirectURL: req.SuccessURL,
	}, nil
}

func (p *FakeProvider) VerifyWebhook(payload []byte, signatureHeader string) (domain.PaymentEvent, error) {
	return verifyEvent(payload, signatureHeader, p.webhookSecret)
}

// FailWith makes subsequent session creations return err, nil restores normal behaviour.
func (p *FakeProvider) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failWith = err
}

func (p *FakeProvider) Requests() []port.CheckoutSessionRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]port.CheckoutSessionRequest(nil), p.requests...)
}

// SignedEvent returns a delivery the provider would accept for event.
func (p *FakeProvider) SignedEvent(event domain.PaymentEvent) (payload []byte, header string, err error) {
	payload, err = CheckoutCompletedPayload(event)
	if err != nil {
		return nil, "", err
	}
	return payload, SignPayload(payload, p.webhookSecret, time.Now()), nil
}
