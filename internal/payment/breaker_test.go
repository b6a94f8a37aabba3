package payment_test

import (
	"errors"
	"testing"
	"time"

	"github.com/nikolayk812/storefront/internal/payment"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakerProvider(t *testing.T) {
	fake := payment.NewFakeProvider(testSecret)
	provider := payment.NewBreakerProvider(fake, payment.BreakerConfig{
		Name:             "payment",
		Timeout:          time.Minute,
		FailureThreshold: 2,
	})

	session, err := provider.CreateCheckoutSession(t.Context(), checkoutRequest())
	require.NoError(t, err)
	assert.Equal(t, checkoutRequest().SuccessURL, session.RedirectURL)

	outage := errors.New("provider down")
	fake.FailWith(outage)

	for range 2 {
		_, err = provider.CreateCheckoutSession(t.Context(), checkoutRequest())
		require.ErrorIs(t, err, outage)
	}

	assert.Equal(t, gobreaker.StateOpen, provider.State())

	fake.FailWith(nil)

	_, err = provider.CreateCheckoutSession(t.Context(), checkoutRequest())
	require.ErrorIs(t, err, gobreaker.ErrOpenState)

	// only the first request reached the provider
	assert.Len(t, fake.Requests(), 1)
}

func TestBreakerProvider_VerifyBypassesBreaker(t *testing.T) {
	fake := payment.NewFakeProvider(testSecret)
	provider := payment.NewBreakerProvider(fake, payment.BreakerConfig{FailureThreshold: 1, Timeout: time.Minute})

	fake.FailWith(errors.New("provider down"))
	_, err := provider.CreateCheckoutSession(t.Context(), checkoutRequest())
	require.Error(t, err)
	assert.Equal(t, gobreaker.StateOpen, provider.State())

	payload := []byte(`{"id":"evt_9","object":"event","type":"charge.succeeded","data":{"object":{}}}`)
	event, err := provider.VerifyWebhook(payload, payment.SignPayload(payload, testSecret, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, "evt_9", event.ID)
}
