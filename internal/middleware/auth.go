package middleware

import (
	"net/http"

	"storeadmin-be/internal/auth"
	"storeadmin-be/internal/logger"
	"storeadmin-be/internal/user"
	"storeadmin-be/internal/utils"

	"go.uber.org/zap"
)

// AuthMiddleware attaches the caller's email and role to the request context
// when a valid token is presented. Requests without one pass through untouched.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := user.ParseJWT(secret, tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Debug("ignoring invalid access token", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.Email, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
