// Package middleware holds the HTTP middleware stack: request IDs,
// identity extraction, request logging, panic recovery, and CORS.
package middleware

import "net/http"

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain combines middleware into one. They apply in the order given:
// Chain(mw1, mw2)(h) is mw1(mw2(h)), so mw1 runs outermost.
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			final = mws[i](final)
		}
		return final
	}
}
