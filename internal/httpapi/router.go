package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(h *Handler, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.ShowCart)
		r.Get("/count", h.CartCount)
		r.Post("/add/{id}", h.AddItem)
		r.Post("/update/{id}", h.UpdateItem)
		r.Post("/remove/{id}", h.RemoveItem)
		r.Post("/clear", h.ClearCart)
	})

	r.Route("/checkout", func(r chi.Router) {
		r.Get("/", h.ShowCheckout)
		r.Post("/", h.SubmitCheckout)
		r.Get("/success", h.CheckoutSuccess)
		r.Get("/cancel", h.CheckoutCancel)
	})

	r.Post("/webhook/payment", h.PaymentWebhook)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.renderError(w, r, http.StatusNotFound, "Page not found")
	})

	return r
}
