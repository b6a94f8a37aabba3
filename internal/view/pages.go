package view

import (
	"github.com/nikolayk812/storefront/internal/domain"
	"golang.org/x/text/currency"
)

const (
	PageCart     = "cart"
	PageCheckout = "checkout"
	PageSuccess  = "success"
	PageCancel   = "cancel"
	PageError    = "error"
)

type CartPage struct {
	Lines   []domain.OrderLine
	Total   domain.Money
	Count   int
	Dropped []int64
	Error   string
}

// Priced is false when the lines could not be totalled, e.g. mixed currencies.
func (p CartPage) Priced() bool {
	return priced(p.Total)
}

type CheckoutForm struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type CheckoutPage struct {
	Lines   []domain.OrderLine
	Total   domain.Money
	Form    CheckoutForm
	Dropped []int64
	Error   string
}

func (p CheckoutPage) Priced() bool {
	return priced(p.Total)
}

// SuccessPage renders Order when it is known, otherwise a generic confirmation.
type SuccessPage struct {
	Order *domain.Order
}

func (p SuccessPage) Paid() bool {
	return p.Order != nil && p.Order.Status == domain.OrderStatusPaid
}

type CancelPage struct {
	OrderID string
}

type ErrorPage struct {
	Status  int
	Message string
}

func priced(total domain.Money) bool {
	return total.Currency != currency.Unit{}
}
