package httpapi

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/nikolayk812/storefront/internal/view"
)

type CheckoutService interface {
	Quote(ctx context.Context, cart domain.Cart) (service.Quote, error)
	Checkout(ctx context.Context, req service.CheckoutRequest) (service.CheckoutResult, error)
	GetOrder(ctx context.Context, orderID int64) (domain.Order, error)
}

type WebhookReconciler interface {
	Handle(ctx context.Context, payload []byte, signature string) (service.Outcome, error)
}

type Options struct {
	// BaseURL is the public origin used to build provider callback URLs.
	BaseURL        string
	SecureCookies  bool
	RetryOnFailure bool
}

type Handler struct {
	carts      port.CartStore
	checkout   CheckoutService
	reconciler WebhookReconciler
	views      *view.Engine
	opts       Options
}

func NewHandler(carts port.CartStore, checkout CheckoutService, reconciler WebhookReconciler, views *view.Engine, opts Options) *Handler {
	return &Handler{
		carts:      carts,
		checkout:   checkout,
		reconciler: reconciler,
		views:      views,
		opts:       opts,
	}
}
