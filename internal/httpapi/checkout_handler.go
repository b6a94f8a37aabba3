package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logging"
	"github.com/nikolayk812/storefront/internal/metrics"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/nikolayk812/storefront/internal/view"
)

const (
	msgInvalidCustomer = "Please check your details: name, a valid email and address are required."
	msgProviderFailed  = "Payment is temporarily unavailable, please try again."
)

func (h *Handler) ShowCheckout(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.GetCart(r.Context(), h.sessionID(w, r, false))
	if err != nil {
		h.fail(w, r, "carts.GetCart", err)
		return
	}

	if cart.IsEmpty() {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	h.renderCheckout(w, r, http.StatusOK, cart, view.CheckoutForm{}, "")
}

func (h *Handler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cart, err := h.carts.GetCart(ctx, h.sessionID(w, r, false))
	if err != nil {
		h.fail(w, r, "carts.GetCart", err)
		return
	}

	if cart.IsEmpty() {
		metrics.ObserveCheckout("empty_cart")
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	form := view.CheckoutForm{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Phone:   r.PostFormValue("phone"),
		Address: r.PostFormValue("address"),
	}

	result, err := h.checkout.Checkout(ctx, service.CheckoutRequest{
		Cart:     cart,
		Customer: domain.NewCustomer(form.Name, form.Email, form.Phone, form.Address),
		UserID:   userIDFromCtx(ctx),
		BaseURL:  h.opts.BaseURL,
	})

	switch {
	case err == nil:
		metrics.ObserveCheckout("redirected")
		logging.FromCtx(ctx).Info("checkout started", "order_id", result.Order.ID, "session_id", result.Session.ID)
		http.Redirect(w, r, result.Session.RedirectURL, http.StatusSeeOther)

	case errors.Is(err, service.ErrInvalidCustomer):
		metrics.ObserveCheckout("invalid_customer")
		h.renderCheckout(w, r, http.StatusUnprocessableEntity, cart, form, msgInvalidCustomer)

	case errors.Is(err, service.ErrEmptyCart):
		metrics.ObserveCheckout("empty_cart")
		http.Redirect(w, r, "/cart", http.StatusSeeOther)

	case errors.Is(err, service.ErrMixedCurrency):
		metrics.ObserveCheckout("mixed_currency")
		h.renderCheckout(w, r, http.StatusUnprocessableEntity, cart, form, msgMixedCurrency)

	case errors.Is(err, service.ErrPaymentProvider):
		metrics.ObserveCheckout("provider_failed")
		h.renderCheckout(w, r, http.StatusBadGateway, cart, form, msgProviderFailed)

	default:
		metrics.ObserveCheckout("failed")
		h.fail(w, r, "checkout.Checkout", err)
	}
}

func (h *Handler) renderCheckout(w http.ResponseWriter, r *http.Request, status int, cart domain.Cart, form view.CheckoutForm, message string) {
	quote, err := h.checkout.Quote(r.Context(), cart)
	if err != nil && !errors.Is(err, service.ErrMixedCurrency) {
		h.fail(w, r, "checkout.Quote", err)
		return
	}

	if err != nil && message == "" {
		message = msgMixedCurrency
	}

	h.render(w, r, status, view.PageCheckout, view.CheckoutPage{
		Lines:   quote.Lines,
		Total:   quote.Total,
		Form:    form,
		Dropped: quote.Dropped,
		Error:   message,
	})
}

// CheckoutSuccess is where the provider sends the shopper back. The order is usually
// still pending here, the webhook marks it paid.
func (h *Handler) CheckoutSuccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logging.FromCtx(ctx)

	if sid := h.sessionID(w, r, false); sid != "" {
		if err := h.carts.ClearCart(ctx, sid); err != nil {
			log.Warn("carts.ClearCart", "err", err)
		}
	}

	var page view.SuccessPage

	if orderID, err := strconv.ParseInt(r.URL.Query().Get("orderId"), 10, 64); err == nil && orderID > 0 {
		order, err := h.checkout.GetOrder(ctx, orderID)
		switch {
		case err == nil:
			page.Order = &order
		case errors.Is(err, port.ErrOrderNotFound):
			log.Info("success page for unknown order", "order_id", orderID)
		default:
			log.Warn("checkout.GetOrder", "order_id", orderID, "err", err)
		}
	}

	h.render(w, r, http.StatusOK, view.PageSuccess, page)
}

func (h *Handler) CheckoutCancel(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageCancel, view.CancelPage{OrderID: r.URL.Query().Get("orderId")})
}
