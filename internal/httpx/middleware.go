package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/nobih83/bn-storefront/internal/accounts"
)

type ctxKey int

const (
	userKey ctxKey = iota
	tokenKey
)

// SessionMiddleware resolves the bearer token into the stored user and
// attaches both to the request context. Requests without a valid token
// pass through as guests.
type SessionMiddleware struct {
	Sessions *accounts.SessionStore
}

func (m *SessionMiddleware) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token != "" {
			if u, err := m.Sessions.Get(r.Context(), token); err == nil {
				ctx := context.WithValue(r.Context(), userKey, u)
				ctx = context.WithValue(ctx, tokenKey, token)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			writeErr(w, http.StatusUnauthorized, "sign in required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := CurrentUser(r)
		if !ok || u.Role != accounts.RoleAdmin {
			writeErr(w, http.StatusForbidden, "admin only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func CurrentUser(r *http.Request) (accounts.User, bool) {
	u, ok := r.Context().Value(userKey).(accounts.User)
	return u, ok
}

func sessionToken(r *http.Request) string {
	t, _ := r.Context().Value(tokenKey).(string)
	return t
}

// cartKey identifies the bag: the session token for signed-in users, a
// client-held cart token for guests.
func cartKey(r *http.Request) string {
	if t := sessionToken(r); t != "" {
		return t
	}
	return r.Header.Get("X-Cart-Token")
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
