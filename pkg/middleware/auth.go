package middleware

import (
	"net/http"
	"strings"

	"github.com/Arman2205/Knowledge_Network/pkg/auth"
	"github.com/Arman2205/Knowledge_Network/pkg/httperror"
	"github.com/Arman2205/Knowledge_Network/pkg/logger"
)

// AuthMiddleware verifies the bearer token on the Authorization header and
// attaches the resulting claims to the request context. Any failure ends
// the request with the invalid-token status; handlers are never reached.
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Log.Warn("Request without Authorization header")
				httperror.Write(w, httperror.NewInvalidToken("no value in auth header"))
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer") {
				logger.Log.Warn("Authorization header without Bearer scheme")
				httperror.Write(w, httperror.NewInvalidToken("not bearer in auth header"))
				return
			}

			tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))

			claims, err := auth.ParseToken(tokenString, jwtSecret)
			if err != nil {
				logger.Log.WithError(err).Warn("Token verification failed")
				httperror.Write(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), claims)))
		})
	}
}
