package port

import (
	"context"
	"errors"

	"github.com/nikolayk812/storefront/internal/domain"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository interface {
	GetOrder(ctx context.Context, orderID int64) (domain.Order, error)

	// CreateOrder inserts the order and all of its lines atomically.
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
}
