package middleware

import (
	"context"
	"net/http"
	"wastetrack/internal/common"
	"wastetrack/internal/domain/model"
	"wastetrack/internal/session"
)

type contextKey string

const principalCtxKey contextKey = "principal"

// SessionCookieName is the HTTP-only cookie carrying the session token.
const SessionCookieName = "wm_session"

// SessionAuthenticator resolves the session cookie against the store and, when
// valid, places the principal in the request context. Requests without a valid
// session pass through unauthenticated; the Require* guards enforce access.
func SessionAuthenticator(store session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err == nil && cookie.Value != "" {
				if principal, err := store.Resolve(r.Context(), cookie.Value); err == nil {
					ctx := context.WithValue(r.Context(), principalCtxKey, *principal)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireUser admits only sessions belonging to a regular user.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := GetPrincipalFromContext(r.Context())
		if !ok || principal.Kind != model.KindUser {
			common.RespondWithError(w, http.StatusUnauthorized, "Please login first")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin admits only administrator sessions.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := GetPrincipalFromContext(r.Context())
		if !ok || !principal.IsAdmin() {
			common.RespondWithError(w, http.StatusUnauthorized, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetPrincipalFromContext returns the authenticated principal, if any.
func GetPrincipalFromContext(ctx context.Context) (model.Principal, bool) {
	principal, ok := ctx.Value(principalCtxKey).(model.Principal)
	return principal, ok
}

// SessionToken returns the raw session token from the request cookie, or "".
func SessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
