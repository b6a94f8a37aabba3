package domain

import (
	"errors"
	"slices"
)

type OrderStatus string

// remember to add new statuses to the validOrderStatuses map
const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
)

var validOrderStatuses = map[OrderStatus]struct{}{
	OrderStatusPending: {},
	OrderStatusPaid:    {},
}

// allowed transitions; paid -> paid keeps redelivered confirmations harmless
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusPaid},
	OrderStatusPaid:    {OrderStatusPaid},
}

func ToOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := validOrderStatuses[status]; ok {
		return status, nil
	}

	return "", errors.New("invalid order status")
}

func OrderStatuses() []OrderStatus {
	result := make([]OrderStatus, 0, len(validOrderStatuses))
	for status := range validOrderStatuses {
		result = append(result, status)
	}
	return result
}

func CanTransitionTo(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionSources lists the statuses from which to is reachable, sorted.
func TransitionSources(to OrderStatus) []OrderStatus {
	var result []OrderStatus
	for _, from := range OrderStatuses() {
		if CanTransitionTo(from, to) {
			result = append(result, from)
		}
	}
	slices.Sort(result)
	return result
}
