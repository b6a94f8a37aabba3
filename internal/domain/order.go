package domain

import (
	"time"
)

type Order struct {
	ID       int64
	UserID   *int64
	Customer Customer
	Total    Money
	Status   OrderStatus
	Lines    []OrderLine

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderLine captures the unit price at order creation, it is never re-read from the catalog.
type OrderLine struct {
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice Money

	// Description is shown on the hosted payment page only, it is not stored with the order.
	Description string
}

func (l OrderLine) Subtotal() Money {
	return l.UnitPrice.Mul(l.Quantity)
}
