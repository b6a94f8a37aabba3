package payment_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/nikolayk812/storefront/internal/payment"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stripeStub struct {
	mu     sync.Mutex
	form   url.Values
	path   string
	status int
	body   string
}

func (s *stripeStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = r.ParseForm()
	s.form = r.PostForm
	s.path = r.URL.Path

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(s.status)
	_, _ = w.Write([]byte(s.body))
}

func newStripeProvider(t *testing.T, stub *stripeStub) *payment.StripeProvider {
	t.Helper()

	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	provider, err := payment.NewStripeProvider(payment.StripeConfig{
		SecretKey:     "sk_test_123",
		WebhookSecret: testSecret,
		BackendURL:    srv.URL,
	})
	require.NoError(t, err)

	return provider
}

func checkoutRequest() port.CheckoutSessionRequest {
	return port.CheckoutSessionRequest{
		LineItems: []port.CheckoutLineItem{
			{Name: "Mug", Description: "Ceramic", UnitAmount: 999, Currency: "USD", Quantity: 2},
			{Name: "Poster", UnitAmount: 1999, Currency: "USD", Quantity: 1},
		},
		SuccessURL:       "http://shop.test/checkout/success?orderId=42",
		CancelURL:        "http://shop.test/checkout/cancel?orderId=42",
		CorrelationToken: "42",
		CustomerEmail:    "ada@example.com",
	}
}

func TestStripeProvider_CreateCheckoutSession(t *testing.T) {
	stub := &stripeStub{
		status: http.StatusOK,
		body:   `{"id":"cs_test_1","object":"checkout.session","url":"https://checkout.stripe.test/pay/cs_test_1"}`,
	}
	provider := newStripeProvider(t, stub)

	session, err := provider.CreateCheckoutSession(t.Context(), checkoutRequest())
	require.NoError(t, err)

	assert.Equal(t, "cs_test_1", session.ID)
	assert.Equal(t, "https://checkout.stripe.test/pay/cs_test_1", session.RedirectURL)

	stub.mu.Lock()
	defer stub.mu.Unlock()

	assert.Equal(t, "/v1/checkout/sessions", stub.path)
	assert.Equal(t, "payment", stub.form.Get("mode"))
	assert.Equal(t, "42", stub.form.Get("client_reference_id"))
	assert.Equal(t, "42", stub.form.Get("metadata[order_id]"))
	assert.Equal(t, "ada@example.com", stub.form.Get("customer_email"))
	assert.Equal(t, "http://shop.test/checkout/success?orderId=42", stub.form.Get("success_url"))
	assert.Equal(t, "999", stub.form.Get("line_items[0][price_data][unit_amount]"))
	assert.Equal(t, "usd", stub.form.Get("line_items[0][price_data][currency]"))
	assert.Equal(t, "2", stub.form.Get("line_items[0][quantity]"))
	assert.Equal(t, "Mug", stub.form.Get("line_items[0][price_data][product_data][name]"))
	assert.Equal(t, "1999", stub.form.Get("line_items[1][price_data][unit_amount]"))
	assert.False(t, stub.form.Has("line_items[1][price_data][product_data][description]"))
}

func TestStripeProvider_CreateCheckoutSessionRejected(t *testing.T) {
	stub := &stripeStub{
		status: http.StatusBadRequest,
		body:   `{"error":{"type":"invalid_request_error","message":"No such price"}}`,
	}
	provider := newStripeProvider(t, stub)

	_, err := provider.CreateCheckoutSession(t.Context(), checkoutRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sessions.New")
}

func TestNewStripeProvider_MissingKeys(t *testing.T) {
	_, err := payment.NewStripeProvider(payment.StripeConfig{WebhookSecret: testSecret})
	require.EqualError(t, err, "stripe secret key is empty")

	_, err = payment.NewStripeProvider(payment.StripeConfig{SecretKey: "sk_test_123"})
	require.EqualError(t, err, "stripe webhook secret is empty")
}
