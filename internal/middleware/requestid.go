// Package middleware provides reusable HTTP middleware for the trip
// registration API server.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// requestIDKey is the context key under which the request id is stored.
// An unexported struct type cannot collide with keys from other packages.
type requestIDKey struct{}

// requestIDHeader is the response header echoing the generated id back to
// the caller so client-side logs can be correlated with server-side ones.
const requestIDHeader = "X-Request-ID"

// RequestID generates a UUID per request, stores it in the request context,
// and echoes it in the X-Request-ID response header.
// Wire it before the logging middleware so log lines carry the id.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(requestIDHeader, id)

		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext returns the request id stored by RequestID, or ""
// when the middleware did not run.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
