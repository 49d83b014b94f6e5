package httpx

import (
	"net/http"
	"strings"

	"bookreview/internal/platform/crypto"
)

// TokenVerifier is satisfied by *crypto.TokenManager.
type TokenVerifier interface {
	Verify(token string) (*crypto.Claims, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// caller's identity in the request context.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token", nil)
				return
			}

			claims, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				msg := "Invalid token"
				if crypto.IsExpired(err) {
					msg = "Token expired"
				}
				JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", msg, nil)
				return
			}

			if rw, ok := w.(*responseWriter); ok {
				rw.userID = claims.Sub
			}
			ctx := ContextWithUser(r.Context(), claims.Sub, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
