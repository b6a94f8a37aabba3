package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/migrations"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/text/currency"
)

// startPostgres runs a throwaway postgres with the schema applied.
func startPostgres(ctx context.Context) (testcontainers.Container, *pgxpool.Pool, error) {
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("storefront"),
		postgres.WithUsername("storefront"),
		postgres.WithPassword("storefront"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, nil, fmt.Errorf("container.ConnectionString: %w", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return container, nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := migrations.Up(pool); err != nil {
		return container, pool, fmt.Errorf("migrations.Up: %w", err)
	}

	return container, pool, nil
}

func truncateAll(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, "TRUNCATE TABLE payments, order_items, orders, products RESTART IDENTITY CASCADE")
	return err
}

func usd(amount string) domain.Money {
	return domain.NewMoney(decimal.RequireFromString(amount), currency.USD)
}

func randomCurrency() currency.Unit {
	units := []currency.Unit{currency.USD, currency.EUR, currency.GBP, currency.CHF}
	return units[gofakeit.Number(0, len(units)-1)]
}

func randomMoney(unit currency.Unit) domain.Money {
	return domain.NewMoney(decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2), unit)
}

func randomProduct() domain.Product {
	return domain.Product{
		Name:        gofakeit.ProductName(),
		Description: gofakeit.ProductDescription(),
		Price:       randomMoney(randomCurrency()),
		Stock:       gofakeit.Number(0, 50),
	}
}

func randomCustomer() domain.Customer {
	return domain.NewCustomer(
		gofakeit.Name(),
		gofakeit.Email(),
		gofakeit.Phone(),
		gofakeit.Street()+", "+gofakeit.City(),
	)
}

func randomOrder() domain.Order {
	unit := randomCurrency() // has to be the same for all lines
	total := domain.NewMoney(decimal.Zero, unit)

	var lines []domain.OrderLine
	for i := 0; i < gofakeit.Number(1, 5); i++ {
		line := domain.OrderLine{
			ProductID: int64(i + 1),
			Name:      gofakeit.ProductName(),
			Quantity:  gofakeit.Number(1, 4),
			UnitPrice: randomMoney(unit),
		}
		total, _ = total.Add(line.Subtotal())
		lines = append(lines, line)
	}

	return domain.Order{
		UserID:   lo.ToPtr(int64(gofakeit.Number(1, 1000))),
		Customer: randomCustomer(),
		Total:    total.Round(),
		Status:   domain.OrderStatusPending,
		Lines:    lines,
	}
}

var currencyComparer = cmp.Comparer(func(x, y currency.Unit) bool {
	return x.String() == y.String()
})

func assertOrder(t *testing.T, expected, actual domain.Order) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.Order{}, "CreatedAt", "UpdatedAt"),
		cmpopts.EquateEmpty(),
		currencyComparer,
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	assert.False(t, actual.CreatedAt.IsZero())
	assert.False(t, actual.UpdatedAt.IsZero())
	assert.Positive(t, actual.ID)
}
