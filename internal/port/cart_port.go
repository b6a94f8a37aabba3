package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

type CartStore interface {
	GetCart(ctx context.Context, sessionID string) (domain.Cart, error)

	// UpdateCart applies fn atomically relative to other updates of the same session.
	UpdateCart(ctx context.Context, sessionID string, fn func(cart *domain.Cart)) (domain.Cart, error)

	ClearCart(ctx context.Context, sessionID string) error
}
