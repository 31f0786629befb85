package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"marketplace-ledger-service/internal/entity"
)

// CallerHeader carries the identity the gateway authenticated.
const CallerHeader = "X-Caller-Identity"

type callerKey struct{}

// CallerIdentity copies the authenticated caller from CallerHeader into the
// request context.
func CallerIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller := strings.TrimSpace(r.Header.Get(CallerHeader))
		if caller != "" {
			r = r.WithContext(context.WithValue(r.Context(), callerKey{}, entity.Identity(caller)))
		}
		next.ServeHTTP(w, r)
	})
}

// CallerFrom returns the caller identity or "" when the request had none.
func CallerFrom(ctx context.Context) entity.Identity {
	id, _ := ctx.Value(callerKey{}).(entity.Identity)
	return id
}

// RequestLogger writes one line per request once the handler returns.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		// set by middleware.RequestID
		reqID := middleware.GetReqID(r.Context())

		next.ServeHTTP(ww, r)

		slog.InfoContext(r.Context(), "[http] request",
			"req_id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"caller", string(CallerFrom(r.Context())),
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
