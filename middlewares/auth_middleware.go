package middlewares

import (
	"strings"

	"github.com/Rajeshwar-203/fitness-ai-backend/apperrors"

	"github.com/gin-gonic/gin"
)

// TokenAuthenticator resolves a bearer token to an email.
type TokenAuthenticator interface {
	Authenticate(token string) (string, error)
}

// AuthMiddleware puts the token subject under "email". When required is
// false a request without an Authorization header passes through, but a
// header that is present must still carry a valid token.
func AuthMiddleware(auth TokenAuthenticator, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if required {
				_ = c.Error(apperrors.Unauthorized("Authorization header required"))
				c.Abort()
				return
			}
			c.Next()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			_ = c.Error(apperrors.Unauthorized("Authorization header must be a bearer token"))
			c.Abort()
			return
		}

		email, err := auth.Authenticate(strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")))
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set("email", email)
		c.Next()
	}
}
