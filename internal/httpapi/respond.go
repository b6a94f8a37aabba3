package httpapi

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nikolayk812/storefront/internal/logging"
	"github.com/nikolayk812/storefront/internal/view"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("json.Encode", "err", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// wantsJSON reports an XHR or JSON-accepting client.
func wantsJSON(r *http.Request) bool {
	return r.Header.Get("X-Requested-With") == "XMLHttpRequest" ||
		strings.Contains(r.Header.Get("Accept"), "json")
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	var buf bytes.Buffer
	if err := h.views.Render(&buf, page, data); err != nil {
		logging.FromCtx(r.Context()).Error("views.Render", "page", page, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromCtx(r.Context()).Warn("response write failed", "err", err)
	}
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.render(w, r, status, view.PageError, view.ErrorPage{Status: status, Message: message})
}

// fail logs the internal error and answers with a generic message.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	logging.FromCtx(r.Context()).Error(op, "err", err)

	if wantsJSON(r) {
		respondError(w, http.StatusInternalServerError, "internal", "something went wrong")
		return
	}
	h.renderError(w, r, http.StatusInternalServerError, "Something went wrong, please try again.")
}
