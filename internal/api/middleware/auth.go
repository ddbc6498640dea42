package middleware

import (
	"context"
	"errors"
	"net/http"

	"blogapi/internal/common"
	"blogapi/internal/common/security"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	UserIDCtxKey contextKey = "userID"
)

// Authenticator turns the token the Verifier middleware parked in the request
// context into an authenticated user ID. A missing cookie is 401, a bad or
// revoked token is 403; that split is what the client relies on.
func Authenticator(tokens security.TokenRevoker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, rawClaims, err := jwtauth.FromContext(r.Context())
			if errors.Is(err, jwtauth.ErrNoTokenFound) {
				common.RespondWithError(w, http.StatusUnauthorized, "Not authenticated!")
				return
			}
			if err != nil || token == nil {
				common.RespondWithError(w, http.StatusForbidden, "Token is not valid!")
				return
			}

			claims := jwt.MapClaims(rawClaims)
			userID, err := security.GetUserIDFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusForbidden, "Token is not valid!")
				return
			}

			if jti, err := security.GetTokenIDFromClaims(claims); err == nil {
				revoked, err := tokens.IsRevoked(r.Context(), jti)
				if err != nil {
					common.RespondWithError(w, http.StatusInternalServerError, "Failed to check token state")
					return
				}
				if revoked {
					common.RespondWithError(w, http.StatusForbidden, "Token is not valid!")
					return
				}
			}

			ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Helper to get user ID from context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}
