package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"peer-backend/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
)

const (
	CSRFTokenCookieName = "csrf_token"
	CSRFTokenHeaderName = "X-CSRF-Token"
	csrfTokenLength     = 32
	csrfTokenExpiry     = 24 * time.Hour
)

func generateCSRFToken() (string, error) {
	bytes := make([]byte, csrfTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// CSRFMiddleware implements the double-submit cookie pattern. It only
// applies to requests authenticated via the auth_token cookie; requests
// carrying a Bearer header are immune to CSRF by construction and skip
// validation.
//
// Signup and login are exempt because the caller has no session yet;
// those endpoints are guarded by rate limiting instead.
func CSRFMiddleware() gin.HandlerFunc {
	exemptPaths := map[string]bool{
		"/api/signup": true,
		"/api/login":  true,
		"/v1/health":  true,
	}

	return func(c *gin.Context) {
		// Ensure the cookie exists so the client can mirror it later.
		csrfCookie, err := c.Cookie(CSRFTokenCookieName)
		if err != nil || csrfCookie == "" {
			newToken, genErr := generateCSRFToken()
			if genErr != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to generate security token", nil)
				c.Abort()
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			// HttpOnly stays false so the client script can read and
			// echo the value in the header.
			c.SetCookie(CSRFTokenCookieName, newToken, int(csrfTokenExpiry.Seconds()), "/", "", true, false)
			csrfCookie = newToken
		}

		method := c.Request.Method
		if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
			c.Next()
			return
		}
		if exemptPaths[c.Request.URL.Path] {
			c.Next()
			return
		}
		if c.GetHeader("Authorization") != "" {
			c.Next()
			return
		}
		// Cookie-authenticated mutation: require the mirrored header.
		if _, err := c.Cookie("auth_token"); err != nil {
			c.Next()
			return
		}

		headerToken := c.GetHeader(CSRFTokenHeaderName)
		if headerToken == "" {
			response.Error(c, http.StatusForbidden, "Missing CSRF token", nil)
			c.Abort()
			return
		}
		if headerToken != csrfCookie {
			response.Error(c, http.StatusForbidden, "Invalid CSRF token", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
