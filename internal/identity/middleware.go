package identity

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const contextKey = "caller_identity"

// Middleware resolves the caller identity via the provider and aborts with
// 401 when none is present.
func Middleware(provider Provider, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, err := provider.Identify(c.Request)
		if err != nil {
			log.Warn("Rejected unauthenticated request",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "valid caller identity required",
			})
			return
		}

		c.Set(contextKey, ident)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the caller holds one of the given roles.
// Must run after Middleware.
func RequireRole(roles ...Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := FromContext(c)
		if ident != nil {
			for _, role := range roles {
				if ident.Role == role {
					c.Next()
					return
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"message": "insufficient role",
		})
	}
}

// FromContext returns the identity attached by Middleware, or nil.
func FromContext(c *gin.Context) *Identity {
	value, ok := c.Get(contextKey)
	if !ok {
		return nil
	}
	ident, ok := value.(*Identity)
	if !ok {
		return nil
	}
	return ident
}
