package middleware

import (
	"context"
	"net/http"

	"github.com/Suleiman-Moraes/device-api/pkg/logger"
	"github.com/google/uuid"
)

type contextKey string

const (
	RequestIDHeader            = "X-Request-Id"
	RequestIDKey    contextKey = "requestID"
)

// RequestID assigns every request an ID, echoing an inbound one when
// present. The ID is stored under the logger's context key as well so
// access logs and handler logs carry it.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
			ctx = context.WithValue(ctx, logger.ContextKeyRequestID, requestID)
			w.Header().Set(RequestIDHeader, requestID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}

	return ""
}
