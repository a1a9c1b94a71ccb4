package api

import (
	"net/http"

	"github.com/shopsavvy/catalog-server/internal/session"
)

// rateLimitMiddleware applies the per-session token bucket. Requests
// without a session (should not happen behind the session middleware)
// fall back to the remote address.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		key := session.FromRequest(r)
		if key == "" {
			key = r.RemoteAddr
		}

		if !s.limiter.Allow(key) {
			s.logger.Warn("request rate limited", "key", key, "path", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"code":"RATE_LIMITED","message":"too many requests"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
