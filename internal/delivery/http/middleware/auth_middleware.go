package middleware

import (
	"net/http"
	"strings"

	"peer-backend/internal/delivery/http/response"
	"peer-backend/internal/domain"
	"peer-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the caller from a Bearer token or the auth_token
// cookie and stores the identity in the request context. Error messages
// match what the web client expects verbatim.
func AuthMiddleware(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Token is missing!", nil)
			c.Abort()
			return
		}

		claims, err := issuer.Parse(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Token is invalid!", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), claims.UserID)
		c.Set(string(domain.KeyUsername), claims.Username)
		c.Set(string(domain.KeyEmail), claims.Email)

		c.Next()
	}
}

// UserID reads the authenticated user id placed by AuthMiddleware.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(string(domain.KeyUserID))
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
