package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/auth"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// verificationKeys returns the key candidates a bearer token may be signed
// with: the current vault key first, then every configured rotation key.
// A vault outage does not block verification as long as configured keys
// remain.
func (s *Server) verificationKeys(ctx context.Context) [][]byte {
	var keys [][]byte

	current, err := auth.KeyFromSecret(ctx, s.secrets)
	if err != nil {
		s.logger.Warn(ctx, "current signing key unavailable", "error", err)
	} else {
		keys = append(keys, current)
	}

	configured, err := auth.AllKeys(s.config)
	if err != nil {
		s.logger.Error(ctx, "configured signing keys unreadable", "error", err)
	} else {
		keys = append(keys, configured...)
	}

	return keys
}

// authenticate extracts and verifies the bearer token, storing its claims
// in the request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		claims, err := auth.Verify(token, s.verificationKeys(r.Context())...)
		if err != nil {
			s.logger.Info(r.Context(), "token rejected", "error", err)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin allows the request through only when the verified claims
// carry isadmin=true.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromContext(r.Context())
		if !ok || !auth.HasClaim(claims, models.AdminClaim.Type, models.AdminClaim.Value) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func claimsFromContext(ctx context.Context) (jwt.MapClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(jwt.MapClaims)
	return claims, ok
}
