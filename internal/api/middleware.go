package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"bitsbay/internal/auth"
	"bitsbay/internal/metrics"
)

type ctxKey int

const identityKey ctxKey = iota

// authenticate resolves a bearer access token into an identity. Requests
// without an Authorization header pass through anonymously; a header that is
// present but unusable fails immediately, even on read-only endpoints.
func (a *API) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			respondFailure(w, authenticationError("authorization header must use the Bearer scheme"))
			return
		}

		userID, err := a.tokens.Parse(strings.TrimSpace(raw), auth.TokenTypeAccess)
		if err != nil {
			respondFailure(w, authenticationError("invalid or expired access token"))
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAuth rejects anonymous requests.
func (a *API) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identityFrom(r) == nil {
			respondFailure(w, authenticationError("authentication credentials were not provided"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// identityFrom returns the authenticated user identifier, or nil for an
// anonymous request. Handlers pass it onward explicitly; nothing below the
// HTTP layer reads the request context for identity.
func identityFrom(r *http.Request) *uuid.UUID {
	if id, ok := r.Context().Value(identityKey).(uuid.UUID); ok {
		return &id
	}
	return nil
}

// recordMetrics observes status code and latency for every request.
func recordMetrics(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			collector.RecordRequest(ww.Status(), time.Since(start))
		})
	}
}
