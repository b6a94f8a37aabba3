package service

import "errors"

var (
	ErrEmptyCart        = errors.New("cart is empty, nothing to checkout")
	ErrMixedCurrency    = errors.New("cart mixes currencies")
	ErrInvalidCustomer  = errors.New("customer details are invalid")
	ErrPaymentProvider  = errors.New("payment provider failed")
	ErrInvalidSignature = errors.New("webhook signature is invalid")
	ErrProcessing       = errors.New("webhook processing failed")
)
