package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	errs "github.com/soliyanakewani/Project-Management-System/internal/platform/errors"
	"github.com/soliyanakewani/Project-Management-System/internal/services/tracker/domain"
)

type contextKey string

const identityKey contextKey = "identity"

// identityFrom returns the authenticated identity stored by requireAuth.
func identityFrom(ctx context.Context) (domain.Identity, bool) {
	value, ok := ctx.Value(identityKey).(domain.Identity)
	return value, ok
}

// mutationContext detaches the request context so a client disconnect cannot
// abort a mutation mid-write. The services apply their own timeouts.
func mutationContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

// requireAuth verifies the bearer token and stores its identity in the
// request context.
func (h *Handler) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			h.writeError(w, r, errs.New(errs.CodeUnauthenticated, "missing bearer token"))
			return
		}
		claims, err := h.issuer.Verify(strings.TrimSpace(token))
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		subject := domain.Identity{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     domain.Role(claims.Role),
		}
		next(w, r.WithContext(context.WithValue(r.Context(), identityKey, subject)))
	}
}

// withCORS answers preflight requests and stamps permissive CORS headers.
func (h *Handler) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withMetrics records request durations.
func (h *Handler) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.metrics == nil {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		next.ServeHTTP(w, r)
		h.metrics.RequestDuration.Record(r.Context(), time.Since(start).Seconds(),
			metric.WithAttributes(attribute.String("http.method", r.Method)))
	})
}

// withTracing wraps each request in a server span. The span is a no-op unless
// a tracer provider was registered at startup.
func (h *Handler) withTracing(next http.Handler) http.Handler {
	tracer := otel.Tracer("tracker/api")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			),
		)
		defer span.End()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
