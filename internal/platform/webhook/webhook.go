// Package webhook authenticates the internal call from the Fan-out
// Dispatcher to the ETL Projector's webhook endpoint. It deliberately does
// not reuse internal/platform/auth's JWT machinery: this is a single shared
// secret between two halves of the same process, not a user session.
package webhook

import (
	"crypto/subtle"
	"net/http"

	httpPlatform "github.com/seeg/recruiting-platform/internal/platform/http"
	"github.com/gin-gonic/gin"
)

const HeaderName = "X-Webhook-Token"

// VerifySharedSecret rejects any request whose X-Webhook-Token header does
// not match secret, in constant time. It bypasses AuthMiddleware entirely —
// the webhook route group never sees user auth.
func VerifySharedSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(HeaderName)
		if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			httpPlatform.RespondWithError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "invalid webhook token")
			c.Abort()
			return
		}
		c.Next()
	}
}
