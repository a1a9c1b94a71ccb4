// Package session carries the per-browser session identity that scopes
// cart and comparison state. Sessions are anonymous: a cookie holding a
// generated id, nothing more.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/shopsavvy/catalog-server/internal/id"
)

// CookieName is the session cookie issued to every client.
const CookieName = "ss_sid"

// cookieMaxAge keeps anonymous carts around for 90 days of inactivity.
const cookieMaxAge = 90 * 24 * time.Hour

type contextKey struct{}

// NewID generates a fresh session identifier.
func NewID() (string, error) {
	return id.Generate("sess")
}

// WithID returns a context carrying the session id.
func WithID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, contextKey{}, sessionID)
}

// FromContext returns the session id set by the session middleware, or ""
// when no session was established.
func FromContext(ctx context.Context) string {
	sid, _ := ctx.Value(contextKey{}).(string)
	return sid
}

// FromRequest reads the session id from the request context.
func FromRequest(r *http.Request) string {
	return FromContext(r.Context())
}

// NewCookie builds the session cookie for sessionID.
func NewCookie(sessionID string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Middleware ensures every request carries a session id, issuing a cookie
// on first contact. The id is placed on the request context for handlers.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := ""
		if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
			sid = c.Value
		}
		if sid == "" {
			generated, err := NewID()
			if err != nil {
				http.Error(w, "failed to establish session", http.StatusInternalServerError)
				return
			}
			sid = generated
			http.SetCookie(w, NewCookie(sid))
		}
		next.ServeHTTP(w, r.WithContext(WithID(r.Context(), sid)))
	})
}
