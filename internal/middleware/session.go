package middleware

import (
	"context"
	"net/http"
)

type sessionContextKey struct{}

// SessionHeader carries the caller's session identifier. Missing ids are
// minted downstream by the session store and echoed back in the response.
const SessionHeader = "X-Session-ID"

// Session copies the session header into the request context so handlers can
// resolve their ledger without touching the raw request.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), sessionContextKey{}, r.Header.Get(SessionHeader))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionIDFromContext returns the caller-supplied session id, "" when the
// header was absent.
func SessionIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(sessionContextKey{}).(string); ok {
		return v
	}
	return ""
}
