package middleware

import (
	"net/http"
	"os"
	"strings"

	"legalpay-be/internal/utils"

	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware parses an optional bearer token and stores the user identity in
// the request context. Requests without (or with invalid) tokens pass through
// anonymously; route handlers decide whether identity is required. The webhook
// route never consults this — callbacks are authenticated by gateway signature.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			next.ServeHTTP(w, r)
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			userID, _ := claims["user_id"].(string)
			role, _ := claims["role"].(string)
			if userID != "" {
				r = r.WithContext(utils.SetUserContext(r.Context(), userID, role))
			}
		}

		next.ServeHTTP(w, r)
	})
}
