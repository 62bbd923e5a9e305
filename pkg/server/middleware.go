package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/moneyflow/pkg/observability"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

type ctxKey struct{}

// RequestID returns the request ID stored by the server middleware, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// accessLog logs one line per request and reports it to the HTTP hooks.
func accessLog(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			id := RequestID(ctx)
			hooks := observability.HTTP()
			hooks.OnRequest(ctx, r.Method, r.URL.Path, id)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				route := r.URL.Path
				if rctx := chi.RouteContext(ctx); rctx != nil && rctx.RoutePattern() != "" {
					route = rctx.RoutePattern()
				}
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				took := time.Since(start)
				hooks.OnResponse(ctx, r.Method, route, status, took)
				logger.Info("request",
					"method", r.Method,
					"route", route,
					"status", status,
					"bytes", ww.BytesWritten(),
					"took", took,
					"id", id)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
