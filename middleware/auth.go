package middleware

import (
	"errors"
	"net/http"
	"strings"

	"tourbook/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware requires a valid bearer token and loads the caller's session.
func JWTAuthMiddleware(store *SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Token is missing")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Token is missing")
			return
		}

		sess, err := store.Load(c.Request.Context(), tokenString)
		if err != nil {
			msg := ErrUnauthenticated.Error()
			if errors.Is(err, ErrTokenMismatch) {
				msg = ErrTokenMismatch.Error()
			}
			utils.JSONError(c, http.StatusUnauthorized, msg)
			return
		}
		WithSession(c, sess)
		c.Next()
	}
}

// RequireAdmin must run after JWTAuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := SessionFrom(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, ErrUnauthenticated.Error())
			return
		}
		if !sess.IsAdmin {
			utils.JSONError(c, http.StatusForbidden, "Admin privileges required")
			return
		}
		c.Next()
	}
}
