package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

const metadataOrderID = "order_id"

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string

	// BackendURL overrides the Stripe API endpoint, empty means api.stripe.com.
	BackendURL string
}

type StripeProvider struct {
	sessions      *session.Client
	webhookSecret string
}

var _ port.PaymentProvider = (*StripeProvider)(nil)

func NewStripeProvider(cfg StripeConfig) (*StripeProvider, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("stripe secret key is empty")
	}
	if cfg.WebhookSecret == "" {
		return nil, errors.New("stripe webhook secret is empty")
	}

	backendCfg := &stripe.BackendConfig{
		LeveledLogger: &stripe.LeveledLogger{Level: stripe.LevelWarn},
	}
	if cfg.BackendURL != "" {
		backendCfg.URL = stripe.String(cfg.BackendURL)
	}

	return &StripeProvider{
		sessions: &session.Client{
			B:   stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
			Key: cfg.SecretKey,
		},
		webhookSecret: cfg.WebhookSecret,
	}, nil
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, req port.CheckoutSessionRequest) (port.CheckoutSession, error) {
	var cs port.CheckoutSession

	if len(req.LineItems) == 0 {
		return cs, errors.New("no line items")
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(req.CorrelationToken),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
		LineItems: lo.Map(req.LineItems, func(item port.CheckoutLineItem, _ int) *stripe.CheckoutSessionLineItemParams {
			return &stripe.CheckoutSessionLineItemParams{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(item.Currency)),
					UnitAmount: stripe.Int64(item.UnitAmount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(item.Name),
						Description: descriptionParam(item.Description),
					},
				},
				Quantity: stripe.Int64(item.Quantity),
			}
		}),
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	params.Context = ctx
	params.AddMetadata(metadataOrderID, req.CorrelationToken)

	s, err := p.sessions.New(params)
	if err != nil {
		return cs, fmt.Errorf("sessions.New: %w", err)
	}

	return port.CheckoutSession{
		ID:          s.ID,
		RedirectURL: s.URL,
	}, nil
}

func (p *StripeProvider) VerifyWebhook(payload []byte, signatureHeader string) (domain.PaymentEvent, error) {
	return verifyEvent(payload, signatureHeader, p.webhookSecret)
}

// Stripe rejects empty descriptions.
func descriptionParam(description string) *string {
	if strings.TrimSpace(description) == "" {
		return nil
	}
	return stripe.String(description)
}
