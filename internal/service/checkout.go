package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logging"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Checkout turns a session cart into a persisted pending order and opens
// a hosted payment session for it.
type Checkout struct {
	catalog  port.Catalog
	orders   port.OrderRepository
	provider port.PaymentProvider
}

func NewCheckout(catalog port.Catalog, orders port.OrderRepository, provider port.PaymentProvider) *Checkout {
	return &Checkout{
		catalog:  catalog,
		orders:   orders,
		provider: provider,
	}
}

// Quote is a cart resolved against the current catalog.
type Quote struct {
	Lines []domain.OrderLine
	// Total is the zero Money when Lines is empty.
	Total domain.Money
	// Dropped lists cart product ids the catalog no longer knows.
	Dropped []int64
}

type Assembly struct {
	Order   domain.Order
	Dropped []int64
}

type CheckoutRequest struct {
	Cart     domain.Cart
	Customer domain.Customer
	UserID   *int64
	BaseURL  string
}

type CheckoutResult struct {
	Order   domain.Order
	Session port.CheckoutSession
	Dropped []int64
}

// Quote prices the cart with catalog prices, skipping unknown products.
// Lines come out ordered by product id.
func (s *Checkout) Quote(ctx context.Context, cart domain.Cart) (Quote, error) {
	var q Quote

	if cart.IsEmpty() {
		return q, nil
	}

	products, err := s.catalog.GetProducts(ctx, cart.ProductIDs())
	if err != nil {
		return q, fmt.Errorf("catalog.GetProducts: %w", err)
	}

	for _, item := range cart.List() {
		p, ok := products[item.ProductID]
		if !ok {
			q.Dropped = append(q.Dropped, item.ProductID)
			continue
		}

		q.Lines = append(q.Lines, domain.OrderLine{
			ProductID:   p.ID,
			Name:        p.Name,
			Quantity:    item.Quantity,
			UnitPrice:   p.Price,
			Description: p.Description,
		})
	}

	if len(q.Lines) == 0 {
		return q, nil
	}

	total := domain.NewMoney(decimal.Zero, q.Lines[0].UnitPrice.Currency)
	for _, line := range q.Lines {
		total, err = total.Add(line.Subtotal())
		if err != nil {
			return q, fmt.Errorf("%w: %w", ErrMixedCurrency, err)
		}
	}
	q.Total = total.Round()

	return q, nil
}

// Assemble validates the customer, prices the cart and persists a pending order.
// Products missing from the catalog are left out and reported in Assembly.Dropped.
// Nothing is written when no line survives.
func (s *Checkout) Assemble(ctx context.Context, cart domain.Cart, customer domain.Customer, userID *int64) (Assembly, error) {
	var a Assembly

	if err := customer.Validate(); err != nil {
		return a, fmt.Errorf("%w: %w", ErrInvalidCustomer, err)
	}

	if cart.IsEmpty() {
		return a, ErrEmptyCart
	}

	quote, err := s.Quote(ctx, cart)
	if err != nil {
		return a, fmt.Errorf("s.Quote: %w", err)
	}

	a.Dropped = quote.Dropped

	if len(quote.Dropped) > 0 {
		logging.FromCtx(ctx).Warn("dropping unknown products from checkout", "product_ids", quote.Dropped)
	}

	if len(quote.Lines) == 0 {
		return a, ErrEmptyCart
	}

	order, err := s.orders.CreateOrder(ctx, domain.Order{
		UserID:   userID,
		Customer: customer,
		Total:    quote.Total,
		Status:   domain.OrderStatusPending,
		Lines:    quote.Lines,
	})
	if err != nil {
		return a, fmt.Errorf("orders.CreateOrder: %w", err)
	}

	a.Order = order

	return a, nil
}

// OpenPaymentSession asks the provider for a hosted checkout of order.
// It changes no local state, a failure leaves the pending order as it is.
func (s *Checkout) OpenPaymentSession(ctx context.Context, order domain.Order, baseURL string) (port.CheckoutSession, error) {
	var cs port.CheckoutSession

	if order.ID <= 0 {
		return cs, errors.New("order is not persisted")
	}

	token := domain.CorrelationToken(order.ID)

	req := port.CheckoutSessionRequest{
		LineItems: lo.Map(order.Lines, func(line domain.OrderLine, _ int) port.CheckoutLineItem {
			return port.CheckoutLineItem{
				Name:        line.Name,
				Description: line.Description,
				UnitAmount:  line.UnitPrice.MinorUnits(),
				Currency:    line.UnitPrice.Currency.String(),
				Quantity:    int64(line.Quantity),
			}
		}),
		SuccessURL:       callbackURL(baseURL, "/checkout/success", token),
		CancelURL:        callbackURL(baseURL, "/checkout/cancel", token),
		CorrelationToken: token,
		CustomerEmail:    order.Customer.Email,
	}

	cs, err := s.provider.CreateCheckoutSession(ctx, req)
	if err != nil {
		return cs, fmt.Errorf("%w: %w", ErrPaymentProvider, err)
	}

	if cs.RedirectURL == "" {
		return cs, fmt.Errorf("%w: session[%s] has no redirect url", ErrPaymentProvider, cs.ID)
	}

	return cs, nil
}

// Checkout assembles the order and opens its payment session. When the provider
// fails, the result still carries the pending order.
func (s *Checkout) Checkout(ctx context.Context, req CheckoutRequest) (CheckoutResult, error) {
	var r CheckoutResult

	assembly, err := s.Assemble(ctx, req.Cart, req.Customer, req.UserID)
	if err != nil {
		return r, fmt.Errorf("s.Assemble: %w", err)
	}

	r.Order = assembly.Order
	r.Dropped = assembly.Dropped

	session, err := s.OpenPaymentSession(ctx, assembly.Order, req.BaseURL)
	if err != nil {
		logging.FromCtx(ctx).Error("payment session failed, order stays pending",
			"order_id", assembly.Order.ID, "err", err)
		return r, fmt.Errorf("s.OpenPaymentSession: %w", err)
	}

	r.Session = session

	return r, nil
}

func (s *Checkout) GetOrder(ctx context.Context, orderID int64) (domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return order, fmt.Errorf("orders.GetOrder: %w", err)
	}
	return order, nil
}

func callbackURL(baseURL, path, token string) string {
	return strings.TrimRight(baseURL, "/") + path + "?" + url.Values{"orderId": {token}}.Encode()
}
