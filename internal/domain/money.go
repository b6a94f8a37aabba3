package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, unit currency.Unit) Money {
	return Money{Amount: amount, Currency: unit}
}

// Scale is the number of fraction digits of the currency, i.e. 2 for USD, 0 for JPY.
func (m Money) Scale() int32 {
	scale, _ := currency.Standard.Rounding(m.Currency)
	return int32(scale)
}

// Round rounds the amount half away from zero to the currency precision.
func (m Money) Round() Money {
	return Money{Amount: m.Amount.Round(m.Scale()), Currency: m.Currency}
}

func (m Money) Mul(quantity int) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(int64(quantity))), Currency: m.Currency}
}

func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return m, fmt.Errorf("currency mismatch: %s vs %s", m.Currency, other.Currency)
	}

	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// MinorUnits converts the amount into the smallest currency unit, e.g. cents.
func (m Money) MinorUnits() int64 {
	return m.Amount.Shift(m.Scale()).Round(0).IntPart()
}

// MoneyFromMinor is the inverse of MinorUnits.
func MoneyFromMinor(minor int64, unit currency.Unit) Money {
	m := Money{Currency: unit}
	m.Amount = decimal.New(minor, -m.Scale())
	return m
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(m.Scale()), m.Currency)
}

func ParseCurrency(s string) (currency.Unit, error) {
	if s == "" {
		return currency.Unit{}, errors.New("currency is empty")
	}

	unit, err := currency.ParseISO(strings.ToUpper(s))
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", s, err)
	}

	return unit, nil
}
