package ratelimit

import (
	"fmt"
	"net/http"

	"github.com/derob357/sisters-promise/internal/pkg/httputil"
	"github.com/derob357/sisters-promise/internal/pkg/logger"
)

// Middleware enforces the limiter on every request passing through it,
// keyed by client address. Limiter failures (e.g. Redis outage) fail
// open: availability wins over strictness for a marketing storefront.
func Middleware(l Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ClientIP(r)

			dec, err := l.Allow(r.Context(), key)
			if err != nil {
				logger.Warn("rate limiter unavailable, allowing request",
					"policy", l.Policy().Name,
					"err", err.Error(),
				)
				next.ServeHTTP(w, r)
				return
			}

			if !dec.Allowed {
				retry := int(dec.RetryAfter.Seconds())
				if retry < 1 {
					retry = 1
				}
				w.Header().Set("Retry-After", fmt.Sprintf("%d", retry))
				httputil.Error(w, http.StatusTooManyRequests,
					"too many requests, please try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
