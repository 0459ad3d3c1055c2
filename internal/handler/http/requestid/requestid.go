// Package requestid tags each HTTP request with an id that follows it through
// logs, alerts and the response headers.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header is read from the request and echoed on the response.
const Header = "X-Request-ID"

// maxLen bounds ids accepted from callers.
const maxLen = 64

type ctxKey struct{}

// FromContext returns the id stored by Middleware or NewContext, or "".
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// Ensure returns ctx unchanged when it already carries an id, otherwise a
// child context with a fresh one. Background work such as alert fan-out
// calls it so every log line has an id to join on.
func Ensure(ctx context.Context) (context.Context, string) {
	if id := FromContext(ctx); id != "" {
		return ctx, id
	}
	id := uuid.NewString()
	return NewContext(ctx, id), id
}

// Valid reports whether id is safe to propagate: 1 to 64 characters drawn
// from letters, digits, '-', '_' and '.'.
func Valid(id string) bool {
	if id == "" || len(id) > maxLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}

// Middleware keeps a valid incoming X-Request-ID and replaces anything else
// (missing, oversized, or carrying log-unsafe bytes) with a new UUID.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if !Valid(id) {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), id)))
	})
}
