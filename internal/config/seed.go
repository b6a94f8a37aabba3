package config

import (
	"errors"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

type seedProduct struct {
	Name        string `koanf:"name"`
	Description string `koanf:"description"`
	Price       string `koanf:"price"`
	Currency    string `koanf:"currency"`
	Stock       int    `koanf:"stock"`
}

// LoadSeed reads the catalog fixture at path, a yaml document with a top-level products list.
func LoadSeed(path string) ([]domain.Product, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("k.Load: %w", err)
	}

	var raw []seedProduct
	if err := k.Unmarshal("products", &raw); err != nil {
		return nil, fmt.Errorf("k.Unmarshal: %w", err)
	}

	if len(raw) == 0 {
		return nil, errors.New("no products in seed file")
	}

	products := make([]domain.Product, 0, len(raw))

	for i, r := range raw {
		amount, err := decimal.NewFromString(r.Price)
		if err != nil {
			return nil, fmt.Errorf("products[%d].price: %w", i, err)
		}

		unit, err := domain.ParseCurrency(r.Currency)
		if err != nil {
			return nil, fmt.Errorf("products[%d].currency: %w", i, err)
		}

		products = append(products, domain.Product{
			Name:        r.Name,
			Description: r.Description,
			Price:       domain.NewMoney(amount, unit),
			Stock:       r.Stock,
		})
	}

	return products, nil
}
