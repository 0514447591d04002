package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/vendora/vendora-commerce-service/pkg/logger"
	"github.com/vendora/vendora-commerce-service/pkg/response"
	"go.uber.org/zap"
)

// Recovery turns panics into 500 responses instead of dropped connections.
func Recovery(log logger.ZapLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("panic recovered",
						zap.Any("panic", rec),
						zap.String("path", r.URL.Path),
						zap.String("stack", string(debug.Stack())),
					)
					response.Err(w, errors.New("internal server error"))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
