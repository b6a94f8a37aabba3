package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logging"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/nikolayk812/storefront/internal/view"
)

const msgMixedCurrency = "Your cart mixes currencies and cannot be priced. Please remove some items."

type CartResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	CartCount int    `json:"cartCount"`
}

type CountResponse struct {
	Count int `json:"count"`
}

func (h *Handler) ShowCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cart, err := h.carts.GetCart(ctx, h.sessionID(w, r, false))
	if err != nil {
		h.fail(w, r, "carts.GetCart", err)
		return
	}

	quote, err := h.checkout.Quote(ctx, cart)
	if err != nil && !errors.Is(err, service.ErrMixedCurrency) {
		h.fail(w, r, "checkout.Quote", err)
		return
	}

	page := view.CartPage{
		Lines:   quote.Lines,
		Total:   quote.Total,
		Count:   cart.Total(),
		Dropped: quote.Dropped,
	}
	if err != nil {
		page.Error = msgMixedCurrency
	}

	h.render(w, r, http.StatusOK, view.PageCart, page)
}

func (h *Handler) CartCount(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.GetCart(r.Context(), h.sessionID(w, r, false))
	if err != nil {
		logging.FromCtx(r.Context()).Error("carts.GetCart", "err", err)
		respondError(w, http.StatusInternalServerError, "internal", "cannot load cart")
		return
	}

	respondJSON(w, http.StatusOK, CountResponse{Count: cart.Total()})
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productID(w, r)
	if !ok {
		return
	}

	qty := domain.ParseQuantity(r.FormValue("quantity"))

	h.updateCart(w, r, "Added to cart", func(cart *domain.Cart) {
		cart.Add(productID, qty)
	})
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productID(w, r)
	if !ok {
		return
	}

	qty := domain.ParseSetQuantity(r.FormValue("quantity"))

	h.updateCart(w, r, "Cart updated", func(cart *domain.Cart) {
		cart.Set(productID, qty)
	})
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productID(w, r)
	if !ok {
		return
	}

	h.updateCart(w, r, "Removed from cart", func(cart *domain.Cart) {
		cart.Remove(productID)
	})
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if sid := h.sessionID(w, r, false); sid != "" {
		if err := h.carts.ClearCart(r.Context(), sid); err != nil {
			h.fail(w, r, "carts.ClearCart", err)
			return
		}
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *Handler) updateCart(w http.ResponseWriter, r *http.Request, message string, fn func(cart *domain.Cart)) {
	sid := h.sessionID(w, r, true)

	cart, err := h.carts.UpdateCart(r.Context(), sid, fn)
	if err != nil {
		logging.FromCtx(r.Context()).Error("carts.UpdateCart", "err", err)

		if wantsJSON(r) {
			respondJSON(w, http.StatusInternalServerError, CartResponse{Success: false, Message: "Error updating cart"})
			return
		}
		h.renderError(w, r, http.StatusInternalServerError, "Error updating cart")
		return
	}

	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, CartResponse{Success: true, Message: message, CartCount: cart.Total()})
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *Handler) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err == nil && id > 0 {
		return id, true
	}

	if wantsJSON(r) {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id must be a positive integer")
	} else {
		h.renderError(w, r, http.StatusBadRequest, "Unknown product")
	}

	return 0, false
}
