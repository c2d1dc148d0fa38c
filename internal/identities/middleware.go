package identities

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mealhut/mealhut/pkg/models"
)

const identityKey = "identity"

// Middleware authenticates the request and attaches the caller's identity to
// the gin context. Requests without a valid Bearer token are rejected.
func Middleware(svc IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized: no user logged in"})
			return
		}
		token = strings.TrimPrefix(token, "Bearer ")

		identity, err := svc.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized: no user logged in"})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFromContext returns the authenticated identity attached by
// Middleware, if any.
func IdentityFromContext(c *gin.Context) (*models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*models.Identity)
	return identity, ok
}
