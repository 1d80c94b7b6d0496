package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/angelmondragon/mandilink-backend/api/responses"
	pkgerrors "github.com/angelmondragon/mandilink-backend/pkg/errors"
	"github.com/angelmondragon/mandilink-backend/pkg/logger"
	pkgredis "github.com/angelmondragon/mandilink-backend/pkg/redis"
)

// RateLimitPolicy bounds requests per actor (falling back to client IP) over
// a fixed window.
type RateLimitPolicy struct {
	Name   string
	Window time.Duration
	Limit  int64
}

// RateLimit applies the policy via a Redis fixed window counter. A nil
// client disables the middleware, which keeps tests and local dev simple.
func RateLimit(policy RateLimitPolicy, limiter *pkgredis.Client, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil || policy.Limit <= 0 || policy.Window <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			subject := ActorIDFromContext(r.Context())
			if subject == "" {
				subject = clientIP(r)
			}
			scope := fmt.Sprintf("%s:%s", policy.Name, subject)

			allowed, _, err := limiter.FixedWindowAllow(r.Context(), scope, policy.Limit, policy.Window)
			if err != nil {
				// fail open: losing Redis should not take the API down.
				if logg != nil {
					logg.Warn(r.Context(), "rate limit check failed, allowing request")
				}
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeConflict, "too many requests, slow down"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
