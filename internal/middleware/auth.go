package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/AndreyZherdetskiy/balance-hub/internal/httputil"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey int

const identityKey contextKey = 0

// Identity is the authenticated caller extracted from the bearer token.
type Identity struct {
	UserID  uint64
	IsAdmin bool
}

// FromContext returns the caller identity set by Authenticated.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// Authenticated verifies the bearer JWT and stores the caller identity in the
// request context.
func Authenticated(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httputil.WriteError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				httputil.WriteError(w, http.StatusUnauthorized, "invalid authorization header")
				return
			}

			token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				httputil.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				httputil.WriteError(w, http.StatusUnauthorized, "invalid token claims")
				return
			}
			sub, ok := claims["sub"].(float64)
			if !ok {
				httputil.WriteError(w, http.StatusUnauthorized, "invalid token payload")
				return
			}
			isAdmin, _ := claims["admin"].(bool)

			identity := Identity{UserID: uint64(sub), IsAdmin: isAdmin}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects callers without the admin flag. Must run after
// Authenticated.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := FromContext(r.Context())
		if !ok {
			httputil.WriteError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		if !identity.IsAdmin {
			httputil.WriteError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
