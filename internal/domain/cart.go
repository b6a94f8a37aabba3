package domain

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// MaxQuantity caps a single cart entry, larger requests are clamped to it.
const MaxQuantity = 9999

// Cart maps product id to quantity. Every stored quantity is in [1, MaxQuantity].
// The zero value is an empty cart ready to use.
type Cart struct {
	Items map[int64]int `json:"items"`
}

type CartItem struct {
	ProductID int64
	Quantity  int
}

func NewCart() Cart {
	return Cart{Items: make(map[int64]int)}
}

// Add increments the quantity of productID, inserting it when absent.
// Non-positive quantities are coerced to 1, the sum is capped at MaxQuantity.
func (c *Cart) Add(productID int64, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}
	c.init()
	c.Items[productID] = capQuantity(capQuantity(c.Items[productID]) + capQuantity(quantity))
}

// Set overwrites the quantity; quantity <= 0 removes the entry.
func (c *Cart) Set(productID int64, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	c.init()
	c.Items[productID] = capQuantity(quantity)
}

func (c *Cart) Remove(productID int64) {
	delete(c.Items, productID)
}

func (c *Cart) Clear() {
	c.Items = make(map[int64]int)
}

// Total is the number of units in the cart.
func (c Cart) Total() int {
	return lo.Sum(lo.Values(c.Items))
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) Quantity(productID int64) int {
	return c.Items[productID]
}

// List returns entries ordered by product id.
func (c Cart) List() []CartItem {
	ids := lo.Keys(c.Items)
	slices.Sort(ids)

	return lo.Map(ids, func(id int64, _ int) CartItem {
		return CartItem{ProductID: id, Quantity: c.Items[id]}
	})
}

func (c Cart) ProductIDs() []int64 {
	return lo.Map(c.List(), func(item CartItem, _ int) int64 {
		return item.ProductID
	})
}

func (c Cart) Clone() Cart {
	clone := NewCart()
	for id, qty := range c.Items {
		clone.Items[id] = qty
	}
	return clone
}

// Normalize drops non-positive entries and caps oversized ones,
// e.g. ones decoded from a tampered session payload.
func (c *Cart) Normalize() {
	c.init()
	for id, qty := range c.Items {
		switch {
		case qty <= 0:
			delete(c.Items, id)
		case qty > MaxQuantity:
			c.Items[id] = MaxQuantity
		}
	}
}

func (c *Cart) init() {
	if c.Items == nil {
		c.Items = make(map[int64]int)
	}
}

// ParseQuantity reads a submitted quantity, 1 when absent or not a positive integer.
// Values above MaxQuantity, including ones that overflow int, become MaxQuantity.
func ParseQuantity(s string) int {
	qty, err := strconv.Atoi(strings.TrimSpace(s))
	if errors.Is(err, strconv.ErrRange) && qty > 0 {
		return MaxQuantity
	}
	if err != nil || qty <= 0 {
		return 1
	}
	return capQuantity(qty)
}

// ParseSetQuantity reads a quantity for Set: absent or malformed means 1,
// explicit zero or negative values are kept so the entry gets removed.
func ParseSetQuantity(s string) int {
	qty, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 1
	}
	return capQuantity(qty)
}

func capQuantity(qty int) int {
	return min(qty, MaxQuantity)
}
