package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/emolog-backend/pkg/ctxutil"
)

// Identity reads the caller identity from the X-User-Id header set by
// the upstream gateway and puts it into the context. Requests without
// the header pass through unauthenticated; handlers that need an owner
// reject them via the service layer.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-User-Id")
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid X-User-Id header", http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctxutil.WithUserID(r.Context(), userID)))
	})
}
