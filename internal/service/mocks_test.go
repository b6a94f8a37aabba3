package service_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

// fakeCatalog implements port.Catalog over a fixed product set.
type fakeCatalog struct {
	products map[int64]domain.Product
	err      error
}

func (c *fakeCatalog) GetProduct(_ context.Context, productID int64) (domain.Product, error) {
	if c.err != nil {
		return domain.Product{}, c.err
	}
	p, ok := c.products[productID]
	if !ok {
		return p, port.ErrProductNotFound
	}
	return p, nil
}

func (c *fakeCatalog) GetProducts(_ context.Context, productIDs []int64) (map[int64]domain.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	result := make(map[int64]domain.Product)
	for _, id := range productIDs {
		if p, ok := c.products[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

// fakeStore implements port.OrderRepository and port.PaymentRepository in memory.
type fakeStore struct {
	mu       sync.Mutex
	nextID   int64
	orders   map[int64]domain.Order
	payments map[int64]domain.Payment

	createErr error
	markErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:   make(map[int64]domain.Order),
		payments: make(map[int64]domain.Payment),
	}
}

func (s *fakeStore) CreateOrder(_ context.Context, order domain.Order) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return domain.Order{}, s.createErr
	}

	s.nextID++
	order.ID = s.nextID
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	s.orders[order.ID] = order

	return order, nil
}

func (s *fakeStore) GetOrder(_ context.Context, orderID int64) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return o, port.ErrOrderNotFound
	}
	return o, nil
}

func (s *fakeStore) GetPayment(_ context.Context, orderID int64) (domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[orderID]
	if !ok {
		return p, port.ErrPaymentNotFound
	}
	return p, nil
}

func (s *fakeStore) MarkPaid(_ context.Context, payment domain.Payment) (domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.markErr != nil {
		return domain.Payment{}, s.markErr
	}

	o, ok := s.orders[payment.OrderID]
	if !ok {
		return domain.Payment{}, fmt.Errorf("q.UpdateOrderStatus: %w", port.ErrOrderNotFound)
	}
	if !domain.CanTransitionTo(o.Status, domain.OrderStatusPaid) {
		return domain.Payment{}, fmt.Errorf("order %d cannot be paid from %s", o.ID, o.Status)
	}
	o.Status = domain.OrderStatusPaid
	s.orders[o.ID] = o

	if existing, ok := s.payments[payment.OrderID]; ok {
		payment.ID = existing.ID
	} else {
		payment.ID = int64(len(s.payments) + 1)
	}
	s.payments[payment.OrderID] = payment

	return payment, nil
}

func (s *fakeStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *fakeStore) paymentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payments)
}

// fakeDedup implements port.EventDeduplicator.
type fakeDedup struct {
	mu   sync.Mutex
	seen map[string]bool
	err  error
}

func (d *fakeDedup) Seen(_ context.Context, eventID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return false, d.err
	}
	return d.seen[eventID], nil
}

func (d *fakeDedup) Remember(_ context.Context, eventID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seen == nil {
		d.seen = make(map[string]bool)
	}
	d.seen[eventID] = true
	return nil
}
