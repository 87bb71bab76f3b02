package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/kaiwenlim/fintrack-be/internal/auth"
	"github.com/kaiwenlim/fintrack-be/internal/http/respond"
	"github.com/kaiwenlim/fintrack-be/internal/storage"
)

type contextKey int

const identityKey contextKey = iota

// Auth verifies the bearer credential on every request it wraps: signature
// and expiry via the token manager, then a live-user check against the store.
// Any failure is a 401; handlers behind this middleware can rely on
// IdentityFrom succeeding.
func Auth(tokens *auth.TokenManager, users storage.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				respond.Error(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			identity, err := tokens.Verify(strings.TrimSpace(raw))
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			// The subject must still resolve to a live user.
			if _, err := users.FindUserByID(r.Context(), identity.UserID); err != nil {
				respond.Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom extracts the verified identity stored by Auth.
func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(auth.Identity)
	return identity, ok
}
