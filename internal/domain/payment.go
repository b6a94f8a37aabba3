package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type PaymentStatus string

const PaymentStatusCompleted PaymentStatus = "completed"

// Payment is the 1:1 satellite of an Order, written only by reconciliation.
type Payment struct {
	ID                int64
	OrderID           int64
	ProviderPaymentID string
	Amount            Money
	Status            PaymentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

const EventTypeCheckoutCompleted = "checkout.session.completed"

// PaymentEvent is a signature-verified provider event reduced to what reconciliation needs.
type PaymentEvent struct {
	ID                string
	Type              string
	CorrelationToken  string
	ProviderPaymentID string
	AmountMinor       int64
	Currency          string
}

var ErrMalformedToken = errors.New("correlation token is malformed")

// OrderID parses the correlation token, which is the decimal order id.
func (e PaymentEvent) OrderID() (int64, error) {
	token := strings.TrimSpace(e.CorrelationToken)
	if token == "" {
		return 0, fmt.Errorf("empty: %w", ErrMalformedToken)
	}

	id, err := strconv.ParseInt(token, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("token[%s]: %w", token, ErrMalformedToken)
	}

	return id, nil
}

func CorrelationToken(orderID int64) string {
	return strconv.FormatInt(orderID, 10)
}
