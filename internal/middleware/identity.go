package middleware

import (
	"net/http"

	"github.com/vendora/vendora-commerce-service/internal/auth"
)

// Identity lifts the caller identity set by the upstream gateway out of
// headers and into the request context. Authentication itself happens at
// the gateway; this service only needs to know who is calling.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := auth.Actor{
			UserID:  r.Header.Get("X-User-ID"),
			StoreID: r.Header.Get("X-Store-ID"),
			Role:    r.Header.Get("X-Role"),
		}
		next.ServeHTTP(w, r.WithContext(auth.WithActor(r.Context(), actor)))
	})
}
