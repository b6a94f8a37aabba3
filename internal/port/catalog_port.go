package port

import (
	"context"
	"errors"

	"github.com/nikolayk812/storefront/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

type Catalog interface {
	GetProduct(ctx context.Context, productID int64) (domain.Product, error)

	// GetProducts returns the products that exist, missing ids are omitted.
	GetProducts(ctx context.Context, productIDs []int64) (map[int64]domain.Product, error)
}

// ProductRepository extends Catalog with the writes used for seeding.
type ProductRepository interface {
	Catalog

	InsertProduct(ctx context.Context, product domain.Product) (int64, error)
	DeleteProduct(ctx context.Context, productID int64) error
}
