package payment

import (
	"context"
	"log/slog"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/sony/gobreaker/v2"
)

type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// BreakerProvider stops calling a failing provider for Timeout after
// FailureThreshold consecutive failures. Webhook verification is local and
// bypasses the breaker.
type BreakerProvider struct {
	next port.PaymentProvider
	cb   *gobreaker.CircuitBreaker[port.CheckoutSession]
}

var _ port.PaymentProvider = (*BreakerProvider)(nil)

func NewBreakerProvider(next port.PaymentProvider, cfg BreakerConfig) *BreakerProvider {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("payment provider breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}

	return &BreakerProvider{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[port.CheckoutSession](settings),
	}
}

func (p *BreakerProvider) CreateCheckoutSession(ctx context.Context, req port.CheckoutSessionRequest) (port.CheckoutSession, error) {
	return p.cb.Execute(func() (port.CheckoutSession, error) {
		return p.next.CreateCheckoutSession(ctx, req)
	})
}

func (p *BreakerProvider) VerifyWebhook(payload []byte, signatureHeader string) (domain.PaymentEvent, error) {
	return p.next.VerifyWebhook(payload, signatureHeader)
}

func (p *BreakerProvider) State() gobreaker.State {
	return p.cb.State()
}
