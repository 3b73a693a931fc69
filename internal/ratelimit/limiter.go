package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"
)

// Policy names a window and the request budget inside it.
type Policy struct {
	Name   string
	Window time.Duration
	Max    int
}

// The three route policies. Counters are independent: exhausting one
// policy has no effect on the others.
var (
	GeneralPolicy  = Policy{Name: "general", Window: 15 * time.Minute, Max: 100}
	ContactPolicy  = Policy{Name: "contact", Window: 60 * time.Minute, Max: 5}
	CheckoutPolicy = Policy{Name: "checkout", Window: 60 * time.Second, Max: 10}
)

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter decides whether a keyed request fits its policy window and
// counts it when it does.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
	Policy() Policy
}

// ClientIP extracts the client network address used as the limiter key.
// The first X-Forwarded-For hop wins when present (the router's RealIP
// middleware already folds it into RemoteAddr, this is the fallback for
// direct use).
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
