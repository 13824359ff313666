package ratelimit

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	resp "link-validator/internal/lib/api/response"
	"link-validator/internal/lib/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const (
	limiterTTL     = 5 * time.Minute
	limiterCleanup = 10 * time.Minute
)

// New limits requests per client IP with a token bucket of rps and burst.
// Limiters of idle clients expire after limiterTTL.
func New(log *slog.Logger, rps float64, burst int) func(next http.Handler) http.Handler {
	limiters := cache.New(limiterTTL, limiterCleanup)

	return func(next http.Handler) http.Handler {
		const op = "middleware.ratelimit.New"

		log := log.With(
			slog.String("component", "middleware/ratelimit"),
		)

		log.Info("rate limit middleware enabled",
			slog.Float64("rps", rps),
			slog.Int("burst", burst),
		)

		fn := func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r.RemoteAddr)

			limiter := limiterFor(limiters, ip, rps, burst)

			if !limiter.Allow() {
				path := r.URL.Path
				if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
					path = rctx.RoutePattern()
				}
				metrics.HTTPRateLimitedTotal.WithLabelValues(path).Inc()

				log.Warn("rate limit exceeded",
					slog.String("op", op),
					slog.String("ip", ip),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)

				if err := resp.RenderJSON(w, http.StatusTooManyRequests, resp.Error("rate limit exceeded")); err != nil {
					log.Error("failed to render JSON response", slog.String("error", err.Error()))
				}
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}

// limiterFor returns the bucket for ip, creating it at most once. Every hit
// slides the entry's expiry, so only idle clients get a fresh bucket.
func limiterFor(limiters *cache.Cache, ip string, rps float64, burst int) *rate.Limiter {
	if val, found := limiters.Get(ip); found {
		limiters.SetDefault(ip, val)
		return val.(*rate.Limiter)
	}

	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	if err := limiters.Add(ip, limiter, cache.DefaultExpiration); err == nil {
		return limiter
	}

	// Lost the race to a concurrent first request from the same client.
	if val, found := limiters.Get(ip); found {
		return val.(*rate.Limiter)
	}
	return limiter
}

func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
