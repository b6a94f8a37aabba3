package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
)

var (
	ErrProductNotFound = port.ErrProductNotFound
)

type productRepository struct {
	q *db.Queries
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{
		q: db.New(pool),
	}
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{
		q: db.New(tx),
	}
}

func (r *productRepository) GetProduct(ctx context.Context, productID int64) (domain.Product, error) {
	var p domain.Product

	row, err := r.q.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, fmt.Errorf("q.GetProduct: %w", ErrProductNotFound)
		}
		return p, fmt.Errorf("q.GetProduct: %w", err)
	}

	p, err = mapGetProductRowToDomain(db.GetProductsRow(row))
	if err != nil {
		return p, fmt.Errorf("mapGetProductRowToDomain: %w", err)
	}

	return p, nil
}

func (r *productRepository) GetProducts(ctx context.Context, productIDs []int64) (map[int64]domain.Product, error) {
	result := make(map[int64]domain.Product, len(productIDs))

	if len(productIDs) == 0 {
		return result, nil
	}

	rows, err := r.q.GetProducts(ctx, lo.Uniq(productIDs))
	if err != nil {
		return nil, fmt.Errorf("q.GetProducts: %w", err)
	}

	for _, row := range rows {
		p, err := mapGetProductRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapGetProductRowToDomain: %w", err)
		}
		result[p.ID] = p
	}

	return result, nil
}

func (r *productRepository) InsertProduct(ctx context.Context, product domain.Product) (int64, error) {
	if product.Name == "" {
		return 0, errors.New("product name is empty")
	}

	id, err := r.q.InsertProduct(ctx, db.InsertProductParams{
		Name:          product.Name,
		Description:   product.Description,
		PriceAmount:   product.Price.Amount,
		PriceCurrency: product.Price.Currency.String(),
		Stock:         int32(product.Stock),
	})
	if err != nil {
		return 0, fmt.Errorf("q.InsertProduct: %w", err)
	}

	return id, nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, productID int64) error {
	cmdTag, err := r.q.DeleteProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("q.DeleteProduct: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.DeleteProduct: %w", ErrProductNotFound)
	}

	return nil
}

func mapGetProductRowToDomain(row db.GetProductsRow) (domain.Product, error) {
	unit, err := domain.ParseCurrency(row.PriceCurrency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("domain.ParseCurrency: %w", err)
	}

	return domain.Product{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Price:       domain.NewMoney(row.PriceAmount, unit),
		Stock:       int(row.Stock),
	}, nil
}
