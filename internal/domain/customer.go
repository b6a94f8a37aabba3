package domain

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Customer holds the contact and shipping fields submitted at checkout.
type Customer struct {
	Name    string  `validate:"required,max=255"`
	Email   string  `validate:"required,email,max=255"`
	Phone   *string `validate:"omitempty,max=50"`
	Address string  `validate:"required,max=1000"`
}

// NewCustomer trims the submitted fields, an empty phone becomes nil.
func NewCustomer(name, email, phone, address string) Customer {
	c := Customer{
		Name:    strings.TrimSpace(name),
		Email:   strings.ToLower(strings.TrimSpace(email)),
		Address: strings.TrimSpace(address),
	}

	if p := strings.TrimSpace(phone); p != "" {
		c.Phone = &p
	}

	return c
}

func (c Customer) Validate() error {
	return validate.Struct(c)
}
