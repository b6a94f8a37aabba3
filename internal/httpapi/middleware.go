package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/logging"
	"github.com/nikolayk812/storefront/internal/metrics"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	userIDKey
)

const requestIDHeader = "X-Request-ID"

// requestID reuses an incoming X-Request-ID or generates one, and echoes it back.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestLogger puts a request-scoped logger into the context, then logs and
// counts the request once it is served.
func requestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			log := base.With(
				"req_id", RequestIDFromCtx(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
			)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(logging.WithCtx(r.Context(), log)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(start)
			route := routePattern(r)

			metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			metrics.HTTPDuration.WithLabelValues(r.Method, route).Observe(float64(elapsed.Milliseconds()))

			log.Info("request served", "status", status, "duration_ms", elapsed.Milliseconds())
		})
	}
}

// routePattern keeps metric labels bounded, unmatched paths share one label.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// WithUserID marks the request as coming from a signed-in user, orders placed
// with it carry the user id. Without it checkout runs as a guest.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func userIDFromCtx(ctx context.Context) *int64 {
	id, ok := ctx.Value(userIDKey).(int64)
	if !ok || id <= 0 {
		return nil
	}
	return &id
}
