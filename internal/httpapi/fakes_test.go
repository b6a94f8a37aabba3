package httpapi_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type fakeCatalog struct {
	products map[int64]domain.Product
}

func (c *fakeCatalog) GetProduct(_ context.Context, productID int64) (domain.Product, error) {
	p, ok := c.products[productID]
	if !ok {
		return p, port.ErrProductNotFound
	}
	return p, nil
}

func (c *fakeCatalog) GetProducts(_ context.Context, productIDs []int64) (map[int64]domain.Product, error) {
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
	markErr  error
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
	o.Status = domain.OrderStatusPaid
	s.orders[o.ID] = o

	payment.ID = o.ID
	s.payments[payment.OrderID] = payment

	return payment, nil
}

func (s *fakeStore) setMarkErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markErr = err
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
