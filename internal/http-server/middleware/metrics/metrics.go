package metrics

import (
	"net/http"
	"strconv"
	"time"

	"link-validator/internal/lib/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const unknownRoute = "unknown"

// New records request counts, latencies and in-flight requests labelled by
// the matched chi route pattern, so /relay?url=... collapses to one series.
func New() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			metrics.HTTPRequestsInFlight.Inc()
			defer metrics.HTTPRequestsInFlight.Dec()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				route := routePattern(r)
				status := strconv.Itoa(statusOf(ww))

				metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
				metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
			}()

			next.ServeHTTP(ww, r)
		}

		return http.HandlerFunc(fn)
	}
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.RoutePattern() == "" {
		return unknownRoute
	}
	return rctx.RoutePattern()
}

// statusOf treats a handler that never wrote a header as 200, like net/http.
func statusOf(ww middleware.WrapResponseWriter) int {
	if ww.Status() == 0 {
		return http.StatusOK
	}
	return ww.Status()
}
