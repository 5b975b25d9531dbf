package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"ignite-shop/internal/apperr"
)

// RequireSecret rejects requests whose header does not carry secret.
func RequireSecret(header, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(header)
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			Fail(c, apperr.New(apperr.KindUnauthorized, "Invalid token.", nil))
			return
		}
		c.Next()
	}
}
