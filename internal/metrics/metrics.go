package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_ms",
			Help:    "Duration of HTTP requests in ms",
			Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600},
		},
		[]string{"method", "path"},
	)

	CheckoutOrders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_orders_total",
			Help: "Checkout attempts by outcome",
		},
		[]string{"outcome"},
	)

	WebhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Payment webhook deliveries by outcome",
		},
		[]string{"outcome"},
	)
)

func ObserveCheckout(outcome string) {
	CheckoutOrders.WithLabelValues(outcome).Inc()
}

func ObserveWebhook(outcome string) {
	WebhookEvents.WithLabelValues(outcome).Inc()
}
